package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/jobboard"
	"github.com/careerdev/jobagent/internal/logger"
	"github.com/careerdev/jobagent/internal/runner"
)

var maintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Run maintenance jobs against the stored data",
	Run: func(cmd *cobra.Command, _ []string) {
		maintain(cmd)
	},
}

func init() {
	rootCmd.AddCommand(maintainCmd)

	maintainCmd.Flags().Bool("cleanup-cvs", false, "remove inactive CVs past the retention window")
	maintainCmd.Flags().Bool("refresh-listings", false, "fetch the popular keyword set and store the listings")
}

func maintain(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	cleanupCVs := cmd.Flag("cleanup-cvs").Value.String() == "true"
	refreshListings := cmd.Flag("refresh-listings").Value.String() == "true"

	if !cleanupCVs && !refreshListings {
		logger.Fatal("nothing to do",
			zap.String("hint", "pass --cleanup-cvs and/or --refresh-listings"),
		)
	}

	st, err := openStore(config)
	if err != nil {
		logger.Fatal("opening the store", zap.Error(err))
	}
	defer st.Close()

	// The maintenance jobs never run workflows, so no engine is wired; the
	// refresh job needs only the aggregator.
	var aggregator *jobboard.Aggregator
	if refreshListings {
		aggregator, err = newAggregator(config, logger)
		if err != nil {
			logger.Fatal("building the job board aggregator", zap.Error(err))
		}
	}

	jobs := runner.New(nil, aggregator, st, logger)

	if cleanupCVs {
		removed, err := jobs.CleanupOldCVs()
		if err != nil {
			logger.Fatal("cleaning up old cvs", zap.Error(err))
		}
		logger.Info("cv cleanup finished", zap.Int64("removed", removed))
	}

	if refreshListings {
		saved, err := jobs.RefreshListings(ctx)
		if err != nil {
			logger.Fatal("refreshing listings", zap.Error(err))
		}
		logger.Info("listing refresh finished", zap.Int64("saved", saved))
	}
}
