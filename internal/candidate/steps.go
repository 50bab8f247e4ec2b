package candidate

import (
	"context"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/llm"
	"github.com/spigell/recruiter/internal/logger"
	"github.com/spigell/recruiter/internal/utils"
)

// Step names, also used as graph node ids.
const (
	StepCategorizeExperience = "categorize_experience"
	StepEvaluateSkills       = "evaluate_skills"
	StepMarkEligible         = "mark_eligible"
	StepRouteToRecruiter     = "route_to_recruiter"
	StepRejectCandidate      = "reject_candidate"

	stepSummarize = "summarize_details"
)

// Fixed outcome texts.
const (
	OutcomeInterview = "Selected for Interview"
	OutcomeRejected  = "Rejected because candidate does not meet the minimum requirements of the job description"

	recruiterOutcomePrefix = "The candidate requires further evaluation as its category is "
	recruiterOutcomeSuffix = " but seems they lack the skills for the role"
)

// Step is one workflow stage. It reads the state and returns the fields it sets.
type Step interface {
	Name() string
	Apply(ctx context.Context, s State) (Update, error)
}

// invoker performs the model call shared by the model-backed steps.
type invoker struct {
	source    llm.Source
	logger    *zap.Logger
	maxLogLen int
}

func (i *invoker) invoke(ctx context.Context, step, prompt string) (string, error) {
	gen, err := i.source.Acquire(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: acquire model: %w", step, err)
	}

	i.logger.Debug("model request",
		zap.String(logger.FieldStep, step),
		zap.String("model", gen.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, i.maxLogLen)),
	)

	raw, err := gen.Generate(ctx, prompt)
	if err != nil {
		return "", &llm.InvocationError{Step: step, Model: gen.Model(), Err: err}
	}

	i.logger.Debug("model response",
		zap.String(logger.FieldStep, step),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, i.maxLogLen)),
	)

	return raw, nil
}

type categorizeExperience struct {
	*invoker
}

func (s *categorizeExperience) Name() string { return StepCategorizeExperience }

func (s *categorizeExperience) Apply(ctx context.Context, st State) (Update, error) {
	raw, err := s.invoke(ctx, s.Name(), buildPrompt(experiencePrompt, st.CandidateDetails, ""))
	if err != nil {
		return Update{}, err
	}
	return Update{LevelExperience: &raw}, nil
}

type evaluateSkills struct {
	*invoker
	role string
}

func (s *evaluateSkills) Name() string { return StepEvaluateSkills }

func (s *evaluateSkills) Apply(ctx context.Context, st State) (Update, error) {
	raw, err := s.invoke(ctx, s.Name(), buildPrompt(skillsPrompt, st.CandidateDetails, s.role))
	if err != nil {
		return Update{}, err
	}
	return Update{Match: &raw}, nil
}

type markEligible struct{}

func (markEligible) Name() string { return StepMarkEligible }

func (markEligible) Apply(context.Context, State) (Update, error) {
	outcome := OutcomeInterview
	return Update{Outcome: &outcome}, nil
}

type routeToRecruiter struct{}

func (routeToRecruiter) Name() string { return StepRouteToRecruiter }

func (routeToRecruiter) Apply(_ context.Context, st State) (Update, error) {
	outcome := recruiterOutcomePrefix + st.LevelExperience + recruiterOutcomeSuffix
	return Update{Outcome: &outcome}, nil
}

type rejectCandidate struct{}

func (rejectCandidate) Name() string { return StepRejectCandidate }

func (rejectCandidate) Apply(context.Context, State) (Update, error) {
	outcome := OutcomeRejected
	return Update{Outcome: &outcome}, nil
}
