package candidate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/llm"
	"github.com/spigell/recruiter/internal/logger"
)

const defaultMaxLogLength = 200

// Options tune a Workflow.
type Options struct {
	// Role is the position the skills step asks about. Defaults to DefaultRole.
	Role string
	// MaxLogLength caps prompt and response previews in debug logs.
	MaxLogLength int
}

// Workflow runs Start -> categorize -> evaluate -> route -> terminal -> End.
// It keeps nothing between runs and is safe for concurrent use when its Source is.
type Workflow struct {
	invoker    *invoker
	categorize Step
	evaluate   Step
	interview  Step
	recruiter  Step
	reject     Step
	logger     *zap.Logger
}

// NewWorkflow wires the five steps against source.
func NewWorkflow(source llm.Source, opts Options, log *zap.Logger) *Workflow {
	if log == nil {
		log = zap.NewNop()
	}

	role := strings.TrimSpace(opts.Role)
	if role == "" {
		role = DefaultRole
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	inv := &invoker{source: source, logger: log, maxLogLen: maxLogLen}

	return &Workflow{
		invoker:    inv,
		categorize: &categorizeExperience{invoker: inv},
		evaluate:   &evaluateSkills{invoker: inv, role: role},
		interview:  markEligible{},
		recruiter:  routeToRecruiter{},
		reject:     rejectCandidate{},
		logger:     log,
	}
}

// Run evaluates details and returns the final state. On error the state holds
// whatever the completed steps wrote.
func (w *Workflow) Run(ctx context.Context, details string) (State, error) {
	state := State{CandidateDetails: details}
	log := logger.WithRun(w.logger, uuid.NewString())

	log.Info("starting candidate evaluation")

	for _, step := range []Step{w.categorize, w.evaluate} {
		if err := w.apply(ctx, log, step, &state); err != nil {
			return state, err
		}
	}

	route := NextRoute(state)
	level, verdict := NormalizeLevel(state.LevelExperience), NormalizeVerdict(state.Match)

	routeLog := log.With(
		zap.String("route", string(route)),
		zap.String("level", string(level)),
		zap.String("verdict", string(verdict)),
	)
	if level == LevelUnknown || verdict == VerdictUnknown {
		routeLog.Warn("model answers are not strict labels, routing on substrings",
			zap.String("level_experience", state.LevelExperience),
			zap.String("match", state.Match),
		)
	} else {
		routeLog.Info("routing candidate")
	}

	var terminal Step
	switch route {
	case ToInterview:
		terminal = w.interview
	case ToRecruiter:
		terminal = w.recruiter
	default:
		terminal = w.reject
	}

	if err := w.apply(ctx, log, terminal, &state); err != nil {
		return state, err
	}

	log.Info("candidate evaluation finished", zap.String("outcome", state.Outcome))

	return state, nil
}

// Summarize condenses raw candidate details into one paragraph for evaluation.
func (w *Workflow) Summarize(ctx context.Context, details string) (string, error) {
	summary, err := w.invoker.invoke(ctx, stepSummarize, buildPrompt(summaryPrompt, details, ""))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

func (w *Workflow) apply(ctx context.Context, log *zap.Logger, step Step, state *State) error {
	log = log.With(zap.String(logger.FieldStep, step.Name()))
	log.Debug("running step")

	update, err := step.Apply(ctx, *state)
	if err != nil {
		log.Error("step failed", zap.Error(err))
		return err
	}

	if err := state.Apply(update); err != nil {
		return fmt.Errorf("%s: %w", step.Name(), err)
	}

	log.Debug("step completed")
	return nil
}
