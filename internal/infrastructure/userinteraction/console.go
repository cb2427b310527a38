package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"web-agent/internal/application/port/output"
	"web-agent/internal/domain/entity"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

// ConsoleUserInteraction handles the ask_user action and renders run
// progress in the terminal.
type ConsoleUserInteraction struct {
	reader *bufio.Reader
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(os.Stdin),
	}
}

func (u *ConsoleUserInteraction) AskQuestion(ctx context.Context, question string) (string, error) {
	fmt.Printf("\n[USER INPUT REQUIRED] %s\n> ", question)

	answer, err := u.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func (u *ConsoleUserInteraction) WaitForUserAction(ctx context.Context, message string) error {
	fmt.Printf("\n[USER ACTION REQUIRED] %s\n", message)
	fmt.Print("Press Enter when done...")

	if _, err := u.reader.ReadString('\n'); err != nil {
		return fmt.Errorf("failed to wait for user: %w", err)
	}
	return nil
}

func (u *ConsoleUserInteraction) ShowStep(ctx context.Context, step, stepBudget int) {
	cyan := color.New(color.FgCyan, color.Bold)
	cyan.Printf("\n━━━ Шаг %d/%d ━━━\n", step, stepBudget)
}

func (u *ConsoleUserInteraction) ShowActionStart(ctx context.Context, action entity.ActionName, args map[string]any) {
	icon, name := actionDisplay(action)

	yellow := color.New(color.FgYellow, color.Bold)
	yellow.Printf("%s %s\n", icon, name)

	if summary := formatArgs(args); summary != "" {
		dim := color.New(color.Faint)
		dim.Printf("   %s\n", summary)
	}
}

func (u *ConsoleUserInteraction) ShowActionResult(ctx context.Context, action entity.ActionName, result string, isError bool) {
	if isError {
		red := color.New(color.FgRed)
		red.Print("✗ ")
		dim := color.New(color.Faint)
		dim.Println(truncate(result, 300))
		return
	}

	green := color.New(color.FgGreen)
	green.Printf("✓ %s\n", truncate(result, 200))
}

func actionDisplay(action entity.ActionName) (string, string) {
	displays := map[entity.ActionName][2]string{
		entity.ActionNavigate:   {"🌐", "Навигация"},
		entity.ActionClick:      {"🖱️", "Клик"},
		entity.ActionInputText:  {"✏️", "Ввод текста"},
		entity.ActionExtract:    {"🔍", "Извлечение данных"},
		entity.ActionSendKeys:   {"⌨️", "Клавиши"},
		entity.ActionScroll:     {"📜", "Прокрутка"},
		entity.ActionScreenshot: {"📸", "Скриншот"},
		entity.ActionAskUser:    {"❓", "Вопрос пользователю"},
	}

	if display, ok := displays[action]; ok {
		return display[0], display[1]
	}
	return "🔧", string(action)
}

func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}

	parts := make([]string, 0, len(args))
	for k, v := range args {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return truncate(strings.Join(parts, " "), 160)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
