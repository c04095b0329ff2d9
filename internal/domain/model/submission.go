package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SubmissionKind tags the public intake form variants.
type SubmissionKind string

const (
	SubmissionContact SubmissionKind = "contact"
	SubmissionQuote   SubmissionKind = "quote"
	SubmissionPickup  SubmissionKind = "pickup"
)

// Submission is a public intake request kept for audit after it has been
// relayed to the workflow system. Payload holds the validated request body.
type Submission struct {
	ID        uuid.UUID
	Kind      SubmissionKind
	Name      string
	Email     string
	Phone     string
	Payload   json.RawMessage
	CreatedAt time.Time
}
