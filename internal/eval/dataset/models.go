package dataset

// LabeledAnswer is one row of a follow-up evaluation dataset: a candidate
// answer plus the focus area and difficulty a reviewer labeled the ideal
// follow-up question with.
type LabeledAnswer struct {
	ID                 string `json:"id" parquet:"id"`
	Mode               string `json:"mode" parquet:"mode"`
	Answer             string `json:"answer" parquet:"answer"`
	QuestionContext    string `json:"question_context" parquet:"question_context"`
	ExpectedFocus      string `json:"expected_focus" parquet:"expected_focus"`
	ExpectedDifficulty string `json:"expected_difficulty" parquet:"expected_difficulty"`
}

// EffectiveMode returns the labeled mode, defaulting to easy.
func (a *LabeledAnswer) EffectiveMode() string {
	if a.Mode == "" {
		return "easy"
	}
	return a.Mode
}
