package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/candidate"
	"github.com/spigell/recruiter/internal/llm"
	"github.com/spigell/recruiter/internal/resume"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a candidate and print the application summary",
	Args:  cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{
			"evaluation.role":      "role",
			"evaluation.summarize": "summarize",
		})
	},
	Run: func(cmd *cobra.Command, _ []string) {
		evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().String("details", "", "candidate details as plain text")
	evaluateCmd.Flags().StringP("file", "f", "", "read candidate details from a pdf or text file")
	evaluateCmd.Flags().String("role", "", "position the candidate is evaluated for")
	evaluateCmd.Flags().Bool("summarize", false, "summarize the candidate details with the model before evaluation")
}

func evaluate(cmd *cobra.Command) {
	ctx := context.Background()

	logger, config, err := setup(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		if logger == nil {
			log.Fatal(err)
		}
		logger.Fatal("preparing evaluation", zap.Error(err))
	}
	defer logger.Sync()

	logger.Info("starting the recruiter", zap.String("version", version))

	details, err := readDetails(cmd)
	if err != nil {
		logger.Fatal("reading candidate details", zap.Error(err))
	}

	workflow, err := newWorkflow(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the workflow", zap.Error(err))
	}

	if config.Evaluation.Summarize {
		details, err = workflow.Summarize(ctx, details)
		if err != nil {
			fatalEvaluation(logger, "summarizing candidate details", err)
		}
		logger.Debug("candidate details summarized", zap.Int("length", len(details)))
	}

	state, err := workflow.Run(ctx, details)
	if err != nil {
		fatalEvaluation(logger, "evaluating candidate", err)
	}

	if err := candidate.WriteSummary(cmd.OutOrStdout(), state); err != nil {
		logger.Fatal("printing summary", zap.Error(err))
	}
}

// readDetails takes details from --details, then --file, then asks interactively.
func readDetails(cmd *cobra.Command) (string, error) {
	if details := strings.TrimSpace(cmd.Flag("details").Value.String()); details != "" {
		return details, nil
	}

	if path := strings.TrimSpace(cmd.Flag("file").Value.String()); path != "" {
		return resume.ExtractText(path)
	}

	if !stdinIsTerminal() {
		return "", errors.New("no candidate details provided, use --details or --file")
	}

	prompt := promptui.Prompt{
		Label: "Candidate details",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("candidate details must not be empty")
			}
			return nil
		},
	}

	details, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt candidate details: %w", err)
	}

	return details, nil
}

func fatalEvaluation(logger *zap.Logger, msg string, err error) {
	fields := []zap.Field{zap.Error(err)}
	if errors.Is(err, llm.ErrServiceUnavailable) {
		fields = append(fields, zap.String("hint", "start the model server with 'ollama serve' or set OLLAMA_HOST"))
	}
	logger.Fatal(msg, fields...)
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
