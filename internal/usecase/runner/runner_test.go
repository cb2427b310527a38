package runner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-agent/internal/application/port/input"
	"web-agent/internal/application/port/output"
	"web-agent/internal/domain/entity"
)

// stubEnv is a deterministic environment: every Execute consumes the next
// scripted result.
type stubEnv struct {
	url        string
	title      string
	results    []*entity.ActionResult
	observeErr error
	executed   []entity.ActionName
}

func (e *stubEnv) Observe(ctx context.Context) (*entity.Observation, error) {
	if e.observeErr != nil {
		return nil, e.observeErr
	}
	return &entity.Observation{URL: e.url, Title: e.title}, nil
}

func (e *stubEnv) Execute(ctx context.Context, name entity.ActionName, args map[string]any) (*entity.ActionResult, error) {
	e.executed = append(e.executed, name)
	if len(e.results) == 0 {
		return &entity.ActionResult{Payload: "ok"}, nil
	}
	res := e.results[0]
	e.results = e.results[1:]
	if res.DidNavigate {
		e.url = "https://example.com/after"
	}
	return res, nil
}

func (e *stubEnv) Close() {}

// scriptedOracle returns selections in order and repeats the last one.
type scriptedOracle struct {
	selections []*entity.ActionSelection
	calls      int
	summaries  []string
}

func (o *scriptedOracle) Decide(ctx context.Context, task string, obs *entity.Observation, historySummary string) (*entity.ActionSelection, error) {
	o.summaries = append(o.summaries, historySummary)
	idx := o.calls
	if idx >= len(o.selections) {
		idx = len(o.selections) - 1
	}
	o.calls++
	return o.selections[idx], nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)                          {}
func (nopLogger) Info(string, ...any)                           {}
func (nopLogger) Warn(string, ...any)                           {}
func (nopLogger) Error(string, ...any)                          {}
func (l nopLogger) WithField(string, any) output.LoggerPort     { return l }
func (l nopLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (nopLogger) Close() error                                  { return nil }

func newTestRunner(env output.EnvironmentPort, oracle output.OraclePort, budget int) *Runner {
	return New(env, oracle, nopLogger{}, Config{StepBudget: budget})
}

func sel(name entity.ActionName, args map[string]any) *entity.ActionSelection {
	return &entity.ActionSelection{Name: name, Args: args}
}

func TestRun_StepBudgetExhausted(t *testing.T) {
	env := &stubEnv{url: "https://example.com"}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel(entity.ActionNavigate, map[string]any{"url": "https://example.com"}),
	}}

	report, err := newTestRunner(env, oracle, 3).Run(context.Background(), "loop forever")

	require.Error(t, err)
	assert.Equal(t, KindStepBudgetExhausted, KindOf(err))
	require.NotNil(t, report)
	assert.Equal(t, input.RunStatusFailed, report.Status)
	assert.Equal(t, 3, report.Steps)
	assert.Equal(t, 3, report.State.History.Len(), "one ledger entry per completed iteration")
	assert.Equal(t, report.Steps, report.State.History.Len())
}

func TestRun_ClickNavigatesThenDone(t *testing.T) {
	env := &stubEnv{
		url: "https://example.com",
		results: []*entity.ActionResult{
			{Payload: "Clicked element 5", DidNavigate: true},
		},
	}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel(entity.ActionClick, map[string]any{"index": 5}),
		sel(entity.ActionDone, map[string]any{"result": "ok", "success": true}),
	}}

	report, err := newTestRunner(env, oracle, 10).Run(context.Background(), "click something")

	require.NoError(t, err)
	assert.Equal(t, input.RunStatusDone, report.Status)
	assert.Equal(t, "ok", report.Result)
	assert.True(t, report.Success)
	assert.Equal(t, 1, report.Steps)

	items := report.State.History.Items()
	require.Len(t, items, 1, "done is not recorded as an executed action")
	assert.Equal(t, entity.ActionClick, items[0].Action)
	assert.True(t, items[0].Navigated)
	assert.Equal(t, 0, items[0].Step)
}

func TestRun_ActionFailureIsRecoverable(t *testing.T) {
	env := &stubEnv{
		url: "https://example.com",
		results: []*entity.ActionResult{
			{Error: "element index 999 out of range"},
		},
	}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel(entity.ActionClick, map[string]any{"index": 999}),
		sel(entity.ActionDone, map[string]any{"result": "gave up", "success": false}),
	}}

	report, err := newTestRunner(env, oracle, 10).Run(context.Background(), "click a ghost")

	require.NoError(t, err, "a failed action must not abort the run")
	assert.Equal(t, input.RunStatusDone, report.Status)
	assert.False(t, report.Success)

	items := report.State.History.Items()
	require.Len(t, items, 1)
	assert.Contains(t, items[0].Result, "element index 999 out of range")
	assert.False(t, items[0].Navigated)

	// The oracle saw the failure in the history summary of the next cycle.
	require.Len(t, oracle.summaries, 2)
	assert.Contains(t, oracle.summaries[1], "element index 999 out of range")
}

func TestRun_UnknownActionIsProtocolViolation(t *testing.T) {
	env := &stubEnv{url: "https://example.com"}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel("open_terminal", nil),
	}}

	report, err := newTestRunner(env, oracle, 10).Run(context.Background(), "misbehave")

	require.Error(t, err)
	assert.Equal(t, KindOracleProtocolViolation, KindOf(err))
	assert.Equal(t, input.RunStatusFailed, report.Status)
	assert.Empty(t, env.executed, "invalid action must never reach the environment")
}

func TestRun_AskUserWithoutInteractionIsViolation(t *testing.T) {
	env := &stubEnv{url: "https://example.com"}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel(entity.ActionAskUser, map[string]any{"question": "continue?"}),
	}}

	_, err := newTestRunner(env, oracle, 10).Run(context.Background(), "ask")

	require.Error(t, err)
	assert.Equal(t, KindOracleProtocolViolation, KindOf(err))
}

func TestRun_MalformedDoneArgs(t *testing.T) {
	env := &stubEnv{url: "https://example.com"}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel(entity.ActionDone, map[string]any{"result": 42}),
	}}

	report, err := newTestRunner(env, oracle, 10).Run(context.Background(), "bad done")

	require.Error(t, err)
	assert.Equal(t, KindOracleProtocolViolation, KindOf(err))
	assert.Equal(t, input.RunStatusFailed, report.Status)
}

func TestRun_DoneDefaultsSuccessTrue(t *testing.T) {
	env := &stubEnv{url: "https://example.com"}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel(entity.ActionDone, map[string]any{"result": "all good"}),
	}}

	report, err := newTestRunner(env, oracle, 10).Run(context.Background(), "quick")

	require.NoError(t, err)
	assert.True(t, report.Success)
	assert.Equal(t, "all good", report.Result)
	assert.Equal(t, 0, report.Steps)
	assert.Equal(t, 0, report.State.History.Len())
}

func TestRun_EnvironmentUnavailable(t *testing.T) {
	env := &stubEnv{observeErr: fmt.Errorf("browser process died")}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel(entity.ActionDone, nil),
	}}

	report, err := newTestRunner(env, oracle, 10).Run(context.Background(), "observe")

	require.Error(t, err)
	assert.Equal(t, KindEnvironmentUnavailable, KindOf(err))
	assert.Equal(t, input.RunStatusFailed, report.Status)
	assert.Equal(t, 0, report.State.History.Len())
}

func TestRun_Cancellation(t *testing.T) {
	env := &stubEnv{url: "https://example.com"}
	oracle := &scriptedOracle{selections: []*entity.ActionSelection{
		sel(entity.ActionNavigate, map[string]any{"url": "https://example.com"}),
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestRunner(env, oracle, 10).Run(ctx, "cancelled before start")

	require.Error(t, err)
	assert.Equal(t, KindCancelled, KindOf(err))
	assert.Equal(t, input.RunStatusFailed, report.Status)
	assert.Equal(t, 0, report.Steps)
}

func TestRun_StepNumberNeverExceedsBudget(t *testing.T) {
	for budget := 1; budget <= 5; budget++ {
		env := &stubEnv{url: "https://example.com"}
		oracle := &scriptedOracle{selections: []*entity.ActionSelection{
			sel(entity.ActionScroll, map[string]any{"down": true}),
		}}

		report, err := newTestRunner(env, oracle, budget).Run(context.Background(), "scroll away")

		require.Error(t, err)
		assert.Equal(t, KindStepBudgetExhausted, KindOf(err))
		assert.Equal(t, budget, report.Steps)
		assert.LessOrEqual(t, report.Steps, budget)
		assert.Equal(t, budget, report.State.History.Len())
	}
}
