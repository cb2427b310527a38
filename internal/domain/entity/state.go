package entity

// AgentState is the mutable state of one task run. It is owned exclusively
// by the interaction loop: single writer, single reader, no locking needed.
type AgentState struct {
	Task       string
	StepNumber int
	StepBudget int

	Observation *Observation
	History     *HistoryLedger

	IsDone  bool
	Result  string
	Success bool
}

func NewAgentState(task string, stepBudget int) *AgentState {
	return &AgentState{
		Task:       task,
		StepBudget: stepBudget,
		History:    NewHistoryLedger(),
	}
}
