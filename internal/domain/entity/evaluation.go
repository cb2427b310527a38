package entity

type EvaluationResult struct {
	Success    bool     `json:"success"`
	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues"`
	Feedback   string   `json:"feedback"`
}

type EvaluationCriteria struct {
	Task        string
	FinalResult string
	Steps       int
}
