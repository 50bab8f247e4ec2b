package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/recruiter/internal/server"
	"github.com/spigell/recruiter/internal/utils"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve candidate evaluations over HTTP",
	Args:  cobra.NoArgs,
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindFlags(cmd, map[string]string{
			"serve.listen":    "listen",
			"evaluation.role": "role",
		})
	},
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", "", "address to listen on (default :8080)")
	serveCmd.Flags().String("role", "", "position candidates are evaluated for")
}

func serve() {
	ctx := context.Background()

	logger, config, err := setup(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		if logger == nil {
			log.Fatal(err)
		}
		logger.Fatal("preparing server", zap.Error(err))
	}
	defer logger.Sync()

	// One workflow, and so one endpoint resolver, is shared by all requests.
	workflow, err := newWorkflow(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the workflow", zap.Error(err))
	}

	if config.Serve == nil {
		config.Serve = &ServeConfig{}
	}
	listen := utils.FirstNonEmpty(config.Serve.Listen, ":8080")

	logger.Info("starting the recruiter server", zap.String("version", version), zap.String("listen", listen))

	if err := server.New(workflow, logger.Named("http")).Listen(listen); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
