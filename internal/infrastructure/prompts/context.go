package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"web-agent/internal/domain/entity"
)

// stepContextTemplate is the per-step user message handed to the oracle. It
// mirrors the agent's perception model: step counter, history, current
// browser state, task.
const stepContextTemplate = `Step: {{.Step}}/{{.StepBudget}}

Agent History (what you did and what happened):
{{.History}}

Current Browser State:
- URL: {{.URL}}
- Title: {{.Title}}
- Interactive Elements:
{{.Elements}}

What should you do next to complete this task: {{.Task}}`

var stepTmpl = template.Must(template.New("step").Parse(stepContextTemplate))

type StepContextData struct {
	Step       int
	StepBudget int
	History    string
	URL        string
	Title      string
	Elements   string
	Task       string
}

func BuildStepContext(data StepContextData) (string, error) {
	var buf bytes.Buffer
	if err := stepTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render step context: %w", err)
	}
	return buf.String(), nil
}

// FormatElements renders the indexed element list the way the oracle is
// taught to read it: one "[idx] <tag attrs> text" line per element.
func FormatElements(elements []entity.ElementDescriptor) string {
	if len(elements) == 0 {
		return "(no interactive elements found)"
	}

	var sb strings.Builder
	for i, el := range elements {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%d] <%s", el.Index, el.Tag)
		if el.Role != "" {
			fmt.Fprintf(&sb, " role=%q", el.Role)
		}
		if el.AriaLabel != "" {
			fmt.Fprintf(&sb, " aria-label=%q", el.AriaLabel)
		}
		if el.Href != "" {
			fmt.Fprintf(&sb, " href=%q", el.Href)
		}
		sb.WriteString(">")
		if el.Text != "" {
			sb.WriteByte(' ')
			sb.WriteString(el.Text)
		}
	}
	return sb.String()
}
