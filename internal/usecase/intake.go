package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/palletworks/portal/internal/adapter/workflow"
	domainerrors "github.com/palletworks/portal/internal/domain/errors"
	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/domain/repository"
)

// ContactRequest is a general enquiry from the public site.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// QuoteRequest asks for custom pallet pricing.
type QuoteRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PalletType string `json:"palletType"`
	Quantity   int64  `json:"quantity"`
	Location   string `json:"location"`
}

// PickupRequest offers used pallets for collection.
type PickupRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Condition string `json:"condition"`
	Quantity  int64  `json:"quantity"`
	Address   string `json:"address"`
}

func (r ContactRequest) validate() *domainerrors.ValidationError {
	verr := &domainerrors.ValidationError{}
	requireName(verr, r.Name)
	requireEmail(verr, r.Email)
	optionalPhone(verr, r.Phone)
	if strings.TrimSpace(r.Message) == "" {
		verr.Add("message", "must not be empty")
	}
	return verr
}

func (r QuoteRequest) validate() *domainerrors.ValidationError {
	verr := &domainerrors.ValidationError{}
	requireName(verr, r.Name)
	requireEmail(verr, r.Email)
	optionalPhone(verr, r.Phone)
	if strings.TrimSpace(r.PalletType) == "" {
		verr.Add("palletType", "must not be empty")
	}
	if r.Quantity <= 0 {
		verr.Add("quantity", "must be positive")
	}
	return verr
}

func (r PickupRequest) validate() *domainerrors.ValidationError {
	verr := &domainerrors.ValidationError{}
	requireName(verr, r.Name)
	requireEmail(verr, r.Email)
	optionalPhone(verr, r.Phone)
	if strings.TrimSpace(r.Condition) == "" {
		verr.Add("condition", "must not be empty")
	}
	if r.Quantity <= 0 {
		verr.Add("quantity", "must be positive")
	}
	if strings.TrimSpace(r.Address) == "" {
		verr.Add("address", "must not be empty")
	}
	return verr
}

func requireName(verr *domainerrors.ValidationError, name string) {
	if strings.TrimSpace(name) == "" {
		verr.Add("name", "must not be empty")
	}
}

func requireEmail(verr *domainerrors.ValidationError, email string) {
	if !ValidEmail(email) {
		verr.Add("email", "must be a valid email address")
	}
}

func optionalPhone(verr *domainerrors.ValidationError, phone string) {
	if phone != "" && !ValidPhone(phone) {
		verr.Add("phone", "must be a valid phone number")
	}
}

// SubmissionReceipt acknowledges an accepted intake submission.
type SubmissionReceipt struct {
	SubmissionID uuid.UUID
	Upstream     int
}

// IntakeUseCase validates public form submissions, keeps an audit record,
// and relays them to the workflow system.
type IntakeUseCase struct {
	submissions repository.SubmissionRepository
	relay       workflow.Client
}

func NewIntakeUseCase(submissions repository.SubmissionRepository, relay workflow.Client) *IntakeUseCase {
	return &IntakeUseCase{submissions: submissions, relay: relay}
}

func (uc *IntakeUseCase) SubmitContact(ctx context.Context, req ContactRequest) (*SubmissionReceipt, error) {
	if verr := req.validate(); !verr.Empty() {
		return nil, verr
	}
	return uc.submit(ctx, model.SubmissionContact, req.Name, req.Email, req.Phone, req)
}

func (uc *IntakeUseCase) SubmitQuote(ctx context.Context, req QuoteRequest) (*SubmissionReceipt, error) {
	if verr := req.validate(); !verr.Empty() {
		return nil, verr
	}
	return uc.submit(ctx, model.SubmissionQuote, req.Name, req.Email, req.Phone, req)
}

func (uc *IntakeUseCase) SubmitPickup(ctx context.Context, req PickupRequest) (*SubmissionReceipt, error) {
	if verr := req.validate(); !verr.Empty() {
		return nil, verr
	}
	return uc.submit(ctx, model.SubmissionPickup, req.Name, req.Email, req.Phone, req)
}

type relayEnvelope struct {
	Kind         model.SubmissionKind `json:"kind"`
	SubmissionID uuid.UUID            `json:"submissionId"`
	Payload      json.RawMessage      `json:"payload"`
}

// submit persists the audit record first, then relays. The submission id is
// the idempotency key, so a retried relay of the same record deduplicates
// upstream.
func (uc *IntakeUseCase) submit(ctx context.Context, kind model.SubmissionKind, name, email, phone string, payload any) (*SubmissionReceipt, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode submission payload: %w", err)
	}

	stored, err := uc.submissions.Create(ctx, &model.Submission{
		Kind:    kind,
		Name:    name,
		Email:   email,
		Phone:   phone,
		Payload: raw,
	})
	if err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	receipt, err := uc.relay.Relay(ctx, relayEnvelope{
		Kind:         kind,
		SubmissionID: stored.ID,
		Payload:      raw,
	}, stored.ID.String())
	if err != nil {
		return nil, err
	}

	return &SubmissionReceipt{SubmissionID: stored.ID, Upstream: receipt.UpstreamStatus}, nil
}
