package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tmc/langchaingo/llms/openai"

	"web-agent/internal/adapter/tool"
	"web-agent/internal/application/service"
	"web-agent/internal/infrastructure/env"
	"web-agent/internal/infrastructure/logger"
	"web-agent/internal/usecase/chat"
)

func main() {
	envService := env.NewEnvService()

	model, err := openai.New(
		openai.WithToken(envService.MustGet("OPENROUTER_API_KEY")),
		openai.WithModel(envService.MustGet("OPENROUTER_MODEL_NAME")),
		openai.WithBaseURL(envService.GetWithDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")),
	)
	if err != nil {
		log.Fatalf("Ошибка создания LLM клиента: %v", err)
	}

	zapLog, err := logger.NewZapAdapter(logger.DefaultConfig("chat_demo"))
	if err != nil {
		log.Fatalf("Ошибка создания логгера: %v", err)
	}
	defer zapLog.Close()

	registry := service.NewToolRegistry()
	registry.Register(tool.NewWeatherTool())
	registry.Register(tool.NewClockTool())

	agent := chat.New(model, registry, zapLog, chat.Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	demos := []string{
		"What is the weather in San Francisco?",
		"Hi, my name is Bob.",
	}

	for i, question := range demos {
		fmt.Printf("\n%s\nДЕМО %d: %s\n%s\n", divider, i+1, question, divider)

		answer, err := agent.Ask(ctx, question)
		if err != nil {
			zapLog.Error("Chat failed", "question", question, "error", err)
			fmt.Printf("Ошибка: %v\n", err)
			continue
		}
		fmt.Println(answer)
	}
}

const divider = "=================================================="
