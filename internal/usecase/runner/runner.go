package runner

import (
	"context"
	"fmt"

	"web-agent/internal/application/port/input"
	"web-agent/internal/application/port/output"
	"web-agent/internal/domain/entity"
)

const (
	defaultStepBudget = 30

	// historyWindow bounds the summary handed back to the oracle: the last
	// five steps are enough context without blowing up the prompt.
	historyWindow = 5
)

type phase int

const (
	phaseObserving phase = iota
	phasePlanning
	phaseActing
	phaseRecording
	phaseDone
)

type Config struct {
	StepBudget int

	// Interaction enables the ask_user action. When nil, ask_user is outside
	// the allowed action set.
	Interaction output.UserInteractionPort
}

func DefaultConfig() Config {
	return Config{StepBudget: defaultStepBudget}
}

var _ input.TaskRunner = (*Runner)(nil)

// Runner drives one task run through the observe -> plan -> act -> record
// loop. A run owns its AgentState exclusively and executes strictly
// sequentially; concurrent runs need separate Runner states only at the
// AgentState level, so a single Runner may serve them.
type Runner struct {
	env         output.EnvironmentPort
	oracle      output.OraclePort
	logger      output.LoggerPort
	interaction output.UserInteractionPort
	stepBudget  int
}

func New(env output.EnvironmentPort, oracle output.OraclePort, logger output.LoggerPort, cfg Config) *Runner {
	budget := cfg.StepBudget
	if budget <= 0 {
		budget = defaultStepBudget
	}
	return &Runner{
		env:         env,
		oracle:      oracle,
		logger:      logger,
		interaction: cfg.Interaction,
		stepBudget:  budget,
	}
}

func (r *Runner) Run(ctx context.Context, task string) (*input.Report, error) {
	state := entity.NewAgentState(task, r.stepBudget)
	log := r.logger.WithField("task", task)
	log.Info("Run started", "stepBudget", state.StepBudget)

	var (
		selection *entity.ActionSelection
		result    *entity.ActionResult
	)

	ph := phaseObserving
	for {
		switch ph {
		case phaseObserving:
			// Cancellation is cooperative: checked once per iteration, never
			// mid-action.
			if err := ctx.Err(); err != nil {
				return r.fail(state, newError(KindCancelled, "run cancelled", err))
			}
			if r.interaction != nil {
				r.interaction.ShowStep(ctx, state.StepNumber+1, state.StepBudget)
			}

			obs, err := r.env.Observe(ctx)
			if err != nil {
				return r.fail(state, newError(KindEnvironmentUnavailable, "observe failed", err))
			}
			state.Observation = obs
			log.Debug("Observed environment",
				"step", state.StepNumber,
				"url", obs.URL,
				"title", obs.Title,
				"elements", len(obs.Elements))
			ph = phasePlanning

		case phasePlanning:
			sel, err := r.oracle.Decide(ctx, state.Task, state.Observation, state.History.Summarize(historyWindow))
			if err != nil {
				return r.fail(state, newError(KindOracleProtocolViolation, "oracle decide failed", err))
			}
			if verr := r.validateSelection(sel); verr != nil {
				return r.fail(state, verr)
			}
			selection = sel
			log.Info("Action selected", "step", state.StepNumber, "action", sel.Name, "args", sel.Args)

			if sel.Name == entity.ActionDone {
				// done is not executed and not recorded; result and success
				// come straight from its arguments.
				res, success, derr := parseDoneArgs(sel.Args)
				if derr != nil {
					return r.fail(state, derr)
				}
				state.Result = res
				state.Success = success
				state.IsDone = true
				ph = phaseDone
				break
			}
			ph = phaseActing

		case phaseActing:
			if r.interaction != nil {
				r.interaction.ShowActionStart(ctx, selection.Name, selection.Args)
			}

			var err error
			if selection.Name == entity.ActionAskUser {
				result, err = r.askUser(ctx, selection.Args)
			} else {
				result, err = r.env.Execute(ctx, selection.Name, selection.Args)
			}
			if err != nil {
				return r.fail(state, newError(KindEnvironmentUnavailable,
					fmt.Sprintf("action %s could not be driven", selection.Name), err))
			}

			if result.Failed() {
				// Recoverable: the failure goes into the ledger and the
				// oracle sees it on the next planning call. The loop never
				// retries on its own.
				log.Warn("Action failed", "step", state.StepNumber, "action", selection.Name, "error", result.Error)
			}
			if r.interaction != nil {
				r.interaction.ShowActionResult(ctx, selection.Name, resultText(result), result.Failed())
			}
			ph = phaseRecording

		case phaseRecording:
			state.History.Append(entity.HistoryItem{
				Step:      state.StepNumber,
				Action:    selection.Name,
				Args:      selection.Args,
				Result:    resultText(result),
				Navigated: result.DidNavigate,
			})
			state.StepNumber++

			if state.StepNumber >= state.StepBudget {
				state.IsDone = true
				return r.fail(state, newError(KindStepBudgetExhausted,
					fmt.Sprintf("no done action after %d steps", state.StepBudget), nil))
			}
			ph = phaseObserving

		case phaseDone:
			log.Info("Run completed", "steps", state.StepNumber, "success", state.Success)
			return &input.Report{
				Status:  input.RunStatusDone,
				Result:  state.Result,
				Success: state.Success,
				Steps:   state.StepNumber,
				State:   state,
			}, nil
		}
	}
}

func (r *Runner) fail(state *entity.AgentState, err *Error) (*input.Report, error) {
	state.IsDone = true
	r.logger.Error("Run failed", "task", state.Task, "steps", state.StepNumber, "kind", err.Kind, "error", err.Error())
	return &input.Report{
		Status: input.RunStatusFailed,
		Steps:  state.StepNumber,
		State:  state,
	}, err
}

// validateSelection enforces the fixed action set. Anything outside it is a
// fatal protocol violation, not a recoverable action failure.
func (r *Runner) validateSelection(sel *entity.ActionSelection) *Error {
	if sel == nil {
		return newError(KindOracleProtocolViolation, "oracle returned no selection", nil)
	}
	switch {
	case sel.Name == entity.ActionDone:
		return nil
	case sel.Name == entity.ActionAskUser:
		if r.interaction == nil {
			return newError(KindOracleProtocolViolation, "ask_user selected but no user interaction is wired", nil)
		}
		return nil
	case entity.BrowserActions[sel.Name]:
		return nil
	default:
		return newError(KindOracleProtocolViolation,
			fmt.Sprintf("action %q is not in the action set", sel.Name), nil)
	}
}

func (r *Runner) askUser(ctx context.Context, args map[string]any) (*entity.ActionResult, error) {
	question, _ := args["question"].(string)
	if question == "" {
		return &entity.ActionResult{Error: "ask_user requires a non-empty 'question' argument"}, nil
	}

	answer, err := r.interaction.AskQuestion(ctx, question)
	if err != nil {
		return &entity.ActionResult{Error: fmt.Sprintf("ask_user failed: %v", err)}, nil
	}
	return &entity.ActionResult{Payload: "User responded: " + answer}, nil
}

func parseDoneArgs(args map[string]any) (string, bool, *Error) {
	result := ""
	if raw, ok := args["result"]; ok {
		s, ok := raw.(string)
		if !ok {
			return "", false, newError(KindOracleProtocolViolation, "done 'result' argument must be a string", nil)
		}
		result = s
	}

	success := true
	if raw, ok := args["success"]; ok {
		b, ok := raw.(bool)
		if !ok {
			return "", false, newError(KindOracleProtocolViolation, "done 'success' argument must be a boolean", nil)
		}
		success = b
	}
	return result, success, nil
}

func resultText(r *entity.ActionResult) string {
	if r.Failed() {
		return "Error: " + r.Error
	}
	return r.Payload
}
