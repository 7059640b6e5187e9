package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/ai"
	"github.com/careerdev/jobagent/internal/ai/gemini"
	"github.com/careerdev/jobagent/internal/ai/openai"
	"github.com/careerdev/jobagent/internal/jobboard"
	logging "github.com/careerdev/jobagent/internal/logger"
	"github.com/careerdev/jobagent/internal/research"
	"github.com/careerdev/jobagent/internal/secrets"
	"github.com/careerdev/jobagent/internal/store"
	"github.com/careerdev/jobagent/internal/tools"
	"github.com/careerdev/jobagent/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one workflow task and print the result envelope",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("task", "t", "", "task type to run (prompted interactively when omitted)")
	runCmd.Flags().StringP("user", "u", "", "user id the task runs for")
	runCmd.Flags().StringP("input", "i", "{}", "task input as a JSON object")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logging.New(viper.GetBool("json"), viper.GetBool("debug"))
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

	logger.Info("starting the jobagent", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	taskType, err := selectTask(cmd.Flag("task").Value.String())
	if err != nil {
		logger.Fatal("selecting a task", zap.Error(err))
	}

	var input map[string]any
	if err := json.Unmarshal([]byte(cmd.Flag("input").Value.String()), &input); err != nil {
		logger.Fatal("parsing task input",
			zap.Error(err),
			zap.String("hint", "pass a JSON object via --input"),
		)
	}

	engine, st, err := buildEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the workflow engine", zap.Error(err))
	}
	defer st.Close()

	out := engine.Run(ctx, cmd.Flag("user").Value.String(), taskType, input)

	result, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Fatal("encoding the result", zap.Error(err))
	}

	fmt.Println(string(result))
}

// selectTask resolves the task type from the flag, falling back to an
// interactive selection.
func selectTask(flagValue string) (workflow.TaskType, error) {
	if strings.TrimSpace(flagValue) != "" {
		return workflow.ParseTaskType(flagValue)
	}

	items := make([]string, 0, len(workflow.TaskTypes()))
	for _, taskType := range workflow.TaskTypes() {
		items = append(items, string(taskType))
	}

	prompt := promptui.Select{
		Label: "Choose a task to run",
		Items: items,
	}

	_, selected, err := prompt.Run()
	if err != nil {
		return "", err
	}

	return workflow.ParseTaskType(selected)
}

// buildEngine assembles the full collaborator graph from the config. The
// caller owns closing the returned store.
func buildEngine(ctx context.Context, config *Config, logger *zap.Logger) (*workflow.Engine, *store.Store, error) {
	st, err := openStore(config)
	if err != nil {
		return nil, nil, err
	}

	service, err := newAIService(ctx, config.AI, logger)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	aggregator, err := newAggregator(config, logger)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	engine := workflow.NewEngine(workflow.Deps{
		AI:       service,
		Searcher: aggregator,
		Tools:    newToolRegistry(config, aggregator, logger),
		Store:    st,
		Logger:   logger,
	})

	return engine, st, nil
}

func openStore(config *Config) (*store.Store, error) {
	path := defaultDBPath
	if config.Database != nil && strings.TrimSpace(config.Database.Path) != "" {
		path = config.Database.Path
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(); err != nil {
		st.Close()
		return nil, err
	}

	return st, nil
}

func newAIService(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (*ai.Service, error) {
	if cfg == nil {
		return nil, errors.New("ai configuration is required")
	}

	var completer ai.Completer
	var model string

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", "openai":
		provider = "openai"

		if cfg.OpenAI == nil {
			return nil, errors.New("openai configuration is required")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: cfg.OpenAI.APIKey,
			Env:   "OPENAI_API_KEY",
			File:  cfg.OpenAI.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.openai.api-key-file or OPENAI_API_KEY_FILE)", err)
		}

		client, err := openai.NewClient(apiKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL)
		if err != nil {
			return nil, err
		}
		completer, model = client, client.Model()

	case "gemini":
		if cfg.Gemini == nil {
			return nil, errors.New("gemini configuration is required")
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: cfg.Gemini.APIKey,
			Env:   "GEMINI_API_KEY",
			File:  cfg.Gemini.APIKeyFile,
		})
		if err != nil {
			return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
		}

		client, err := gemini.NewClient(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries,
			logging.WithAIFields(logger, "gemini", cfg.Gemini.Model))
		if err != nil {
			return nil, err
		}
		completer, model = client, client.Model()

	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	return ai.NewService(completer, logging.WithAIFields(logger, provider, model), cfg.MaxLogLength), nil
}

func newAggregator(config *Config, logger *zap.Logger) (*jobboard.Aggregator, error) {
	if len(config.JobBoards) == 0 {
		return nil, errors.New("at least one job board must be configured under job-boards")
	}

	providers := make([]jobboard.Provider, 0, len(config.JobBoards))
	for _, board := range config.JobBoards {
		if board == nil || board.Name == "" || board.BaseURL == "" {
			return nil, errors.New("every job board needs a name and a base-url")
		}

		token := board.Token
		if board.TokenFile != "" {
			loaded, err := secrets.Load(secrets.Source{
				Name: fmt.Sprintf("%s token", board.Name),
				File: board.TokenFile,
			})
			if err != nil {
				return nil, err
			}
			token = loaded
		}

		providers = append(providers, jobboard.NewProvider(board.Name, board.BaseURL, token, config.UserAgent, logger))
	}

	return jobboard.NewAggregator(providers, logger), nil
}

func newToolRegistry(config *Config, aggregator *jobboard.Aggregator, logger *zap.Logger) *tools.Registry {
	registry := tools.NewRegistry(logger)

	for _, name := range aggregator.Sources() {
		if provider, ok := aggregator.Provider(name); ok {
			registry.Register(tools.NewSearchJobsTool(provider))
		}
	}
	registry.Register(tools.NewAggregateJobsTool(aggregator))

	if config.Research != nil && config.Research.BaseURL != "" {
		registry.Register(tools.NewResearchCompanyTool(
			research.NewClient(config.Research.BaseURL, config.UserAgent, logger),
		))
	}

	return registry
}
