package dto

// SubmissionResponse acknowledges an accepted intake submission.
type SubmissionResponse struct {
	OK           bool   `json:"ok"`
	SubmissionID string `json:"submissionId"`
	Upstream     int    `json:"upstream"`
}

// RelayFailureResponse reports a failed handoff to the workflow system. The
// submission itself is well formed, so the caller should retry later.
type RelayFailureResponse struct {
	OK        bool   `json:"ok"`
	Retryable bool   `json:"retryable"`
	Error     string `json:"error"`
}
