package di

import (
	"context"
	"fmt"

	"web-agent/internal/application/port/input"
	"web-agent/internal/application/port/output"
	"web-agent/internal/infrastructure/browser/rod"
	"web-agent/internal/infrastructure/llm/openrouter"
	"web-agent/internal/infrastructure/logger"
	"web-agent/internal/infrastructure/planner"
	"web-agent/internal/infrastructure/userinteraction"
	"web-agent/internal/usecase/evaluator"
	"web-agent/internal/usecase/runner"
)

// Container wires the browser agent: env/config values come in once through
// Config, nothing reads the environment after construction.
type Container struct {
	Browser    output.EnvironmentPort
	LLM        output.LLMPort
	Logger     output.LoggerPort
	TaskRunner input.TaskRunner
	Evaluator  *evaluator.Evaluator
}

type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string
	Task             string
	StepBudget       int
	BrowserHeadless  bool
	SendScreenshots  bool
	Interactive      bool
	LogHTTP          bool
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log, err := logger.NewZapAdapter(logger.DefaultConfig(cfg.Task))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	browserCfg := rod.DefaultConfig()
	browserCfg.Headless = cfg.BrowserHeadless
	browserCfg.CaptureScreenshots = cfg.SendScreenshots
	browser, err := rod.NewBrowserAdapter(ctx, browserCfg, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create browser: %w", err)
	}

	llmCfg := openrouter.DefaultConfig(cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	if cfg.LogHTTP {
		llmCfg.Logger = log
	}
	llm := openrouter.NewOpenRouterAdapter(llmCfg)

	oracle := planner.New(llm, log, planner.Config{
		StepBudget:      cfg.StepBudget,
		WithAskUser:     cfg.Interactive,
		SendScreenshots: cfg.SendScreenshots,
	})

	runnerCfg := runner.Config{StepBudget: cfg.StepBudget}
	if cfg.Interactive {
		runnerCfg.Interaction = userinteraction.NewConsoleUserInteraction()
	}

	return &Container{
		Browser:    browser,
		LLM:        llm,
		Logger:     log,
		TaskRunner: runner.New(browser, oracle, log, runnerCfg),
		Evaluator:  evaluator.New(llm, log),
	}, nil
}

func (c *Container) Close() {
	if c.Browser != nil {
		c.Browser.Close()
	}
	if c.Logger != nil {
		c.Logger.Close()
	}
}
