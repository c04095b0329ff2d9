package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/palletworks/portal/internal/adapter/workflow"
	domainErrors "github.com/palletworks/portal/internal/domain/errors"
	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/test"
	"github.com/palletworks/portal/internal/usecase"
)

func validContact() usecase.ContactRequest {
	return usecase.ContactRequest{
		Name:    "Ada Supplier",
		Email:   "ada@example.com",
		Phone:   "+31 20 123 4567",
		Message: "Do you deliver to Rotterdam?",
	}
}

func validQuote() usecase.QuoteRequest {
	return usecase.QuoteRequest{
		Name:       "Ada Supplier",
		Email:      "ada@example.com",
		PalletType: "Euro 1200x800",
		Quantity:   40,
		Location:   "Rotterdam",
	}
}

func validPickup() usecase.PickupRequest {
	return usecase.PickupRequest{
		Name:      "Ada Supplier",
		Email:     "ada@example.com",
		Condition: "grade A",
		Quantity:  120,
		Address:   "12 Mill Rd, Rotterdam",
	}
}

func newIntake() (*usecase.IntakeUseCase, *test.SubmissionRepositoryStub, *test.RelayClientStub) {
	repo := &test.SubmissionRepositoryStub{}
	relay := &test.RelayClientStub{}
	return usecase.NewIntakeUseCase(repo, relay), repo, relay
}

// wireEnvelope mirrors the JSON shape the workflow system receives.
type wireEnvelope struct {
	Kind         model.SubmissionKind `json:"kind"`
	SubmissionID uuid.UUID            `json:"submissionId"`
	Payload      json.RawMessage      `json:"payload"`
}

func decodeEnvelope(t *testing.T, payload any) wireEnvelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("encode relayed payload: %v", err)
	}
	var envelope wireEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("decode relayed payload: %v", err)
	}
	return envelope
}

func TestSubmitContactPersistsAndRelays(t *testing.T) {
	uc, repo, relay := newIntake()

	receipt, err := uc.SubmitContact(context.Background(), validContact())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Upstream != http.StatusOK {
		t.Errorf("expected upstream 200, got %d", receipt.Upstream)
	}

	if len(repo.Submissions) != 1 {
		t.Fatalf("expected 1 stored submission, got %d", len(repo.Submissions))
	}
	stored := repo.Submissions[0]
	if stored.Kind != model.SubmissionContact {
		t.Errorf("expected contact kind, got %s", stored.Kind)
	}
	if receipt.SubmissionID != stored.ID {
		t.Errorf("receipt id %s does not match stored id %s", receipt.SubmissionID, stored.ID)
	}

	if len(relay.Keys) != 1 || relay.Keys[0] != stored.ID.String() {
		t.Fatalf("expected submission id as idempotency key, got %v", relay.Keys)
	}
	envelope := decodeEnvelope(t, relay.Payloads[0])
	if envelope.Kind != model.SubmissionContact || envelope.SubmissionID != stored.ID {
		t.Errorf("unexpected envelope: %+v", envelope)
	}
	var decoded usecase.ContactRequest
	if err := json.Unmarshal(envelope.Payload, &decoded); err != nil {
		t.Fatalf("decode relayed payload: %v", err)
	}
	if decoded.Message != "Do you deliver to Rotterdam?" {
		t.Errorf("payload lost data: %+v", decoded)
	}
}

func TestSubmitContactValidation(t *testing.T) {
	uc, repo, relay := newIntake()

	req := validContact()
	req.Email = "not-an-email"
	req.Message = "  "

	_, err := uc.SubmitContact(context.Background(), req)
	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Details) != 2 {
		t.Errorf("expected 2 details, got %+v", verr.Details)
	}
	if len(repo.Submissions) != 0 {
		t.Error("rejected submission must not be stored")
	}
	if len(relay.Payloads) != 0 {
		t.Error("rejected submission must not be relayed")
	}
}

func TestSubmitQuoteValidation(t *testing.T) {
	uc, _, _ := newIntake()

	req := validQuote()
	req.Quantity = 0
	req.PalletType = ""

	_, err := uc.SubmitQuote(context.Background(), req)
	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	fields := map[string]bool{}
	for _, d := range verr.Details {
		fields[d.Field] = true
	}
	if !fields["quantity"] || !fields["palletType"] {
		t.Errorf("expected quantity and palletType details, got %+v", verr.Details)
	}
}

func TestSubmitPickupValidation(t *testing.T) {
	uc, _, _ := newIntake()

	req := validPickup()
	req.Address = ""
	req.Phone = "abc"

	_, err := uc.SubmitPickup(context.Background(), req)
	var verr *domainErrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSubmitRelayFailurePropagates(t *testing.T) {
	uc, repo, relay := newIntake()
	relay.RelayFn = func(context.Context, any, string) (*workflow.Receipt, error) {
		return nil, &workflow.RelayError{Status: http.StatusBadGateway}
	}

	_, err := uc.SubmitQuote(context.Background(), validQuote())
	var relayErr *workflow.RelayError
	if !errors.As(err, &relayErr) {
		t.Fatalf("expected RelayError, got %v", err)
	}
	// The audit record survives the failed relay so the submission id can be
	// reused as the idempotency key on retry.
	if len(repo.Submissions) != 1 {
		t.Errorf("expected stored submission to survive relay failure, got %d", len(repo.Submissions))
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	uc, repo, relay := newIntake()
	repo.Err = errors.New("db down")

	if _, err := uc.SubmitPickup(context.Background(), validPickup()); err == nil {
		t.Fatal("expected storage error")
	}
	if len(relay.Payloads) != 0 {
		t.Error("nothing may be relayed when the audit record fails")
	}
}
