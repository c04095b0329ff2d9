package repository

import (
	"context"

	"github.com/palletworks/portal/internal/domain/model"
)

// SubmissionRepository persists relayed intake submissions.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) (*model.Submission, error)
	ListRecent(ctx context.Context, limit int) ([]model.Submission, error)
}
