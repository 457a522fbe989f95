package dto

// SummaryOutput is what callers render. When generation fails, Failed is set
// and Text carries a user-facing message in Spanish; the flow never aborts a
// session over a missing summary.
type SummaryOutput struct {
	Text    string
	Backend string
	Failed  bool
}
