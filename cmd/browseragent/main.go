package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"web-agent/internal/di"
	"web-agent/internal/domain/entity"
	"web-agent/internal/infrastructure/env"
)

func main() {
	envService := env.NewEnvService()

	fmt.Println("\nВведите задачу для агента:")
	reader := bufio.NewReader(os.Stdin)
	task, err := reader.ReadString('\n')
	if err != nil {
		log.Fatal("Ошибка чтения ввода: ", err)
	}
	task = strings.TrimSpace(task)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	container, err := di.NewContainer(ctx, di.Config{
		OpenRouterAPIKey: envService.MustGet("OPENROUTER_API_KEY"),
		OpenRouterModel:  envService.MustGet("OPENROUTER_MODEL_NAME"),
		Task:             task,
		StepBudget:       envService.GetInt("STEP_BUDGET", 30),
		BrowserHeadless:  envService.GetBool("BROWSER_HEADLESS", false),
		SendScreenshots:  envService.GetBool("SEND_SCREENSHOTS", true),
		Interactive:      true,
		LogHTTP:          envService.GetBool("LOG_HTTP", false),
	})
	if err != nil {
		log.Fatalf("Ошибка инициализации: %v", err)
	}
	defer container.Close()

	container.Logger.Info("Task started", "task", task)
	fmt.Println("\nАгент начал работу...")

	report, err := container.TaskRunner.Run(ctx, task)
	if err != nil {
		container.Logger.Error("Task failed", "error", err)
		fmt.Printf("\nОшибка выполнения: %v\n", err)
		printHistory(report.State)
		os.Exit(1)
	}

	fmt.Println("\nФИНАЛЬНЫЙ ОТВЕТ:")
	fmt.Println(report.Result)
	fmt.Printf("(шагов: %d, успех: %v)\n", report.Steps, report.Success)

	if envService.GetBool("EVALUATE_RESULT", false) {
		verdict, err := container.Evaluator.Evaluate(ctx, entity.EvaluationCriteria{
			Task:        task,
			FinalResult: report.Result,
			Steps:       report.Steps,
		})
		if err != nil {
			container.Logger.Warn("Evaluation failed", "error", err)
		} else {
			fmt.Printf("\nОценка: success=%v confidence=%.2f\n", verdict.Success, verdict.Confidence)
			if verdict.Feedback != "" {
				fmt.Println("Feedback:", verdict.Feedback)
			}
		}
	}
}

func printHistory(state *entity.AgentState) {
	if state == nil || state.History.Len() == 0 {
		return
	}
	fmt.Println("\nИстория шагов:")
	fmt.Println(state.History.Summarize(0))
}
