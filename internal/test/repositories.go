package test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/palletworks/portal/internal/domain/errors"
	"github.com/palletworks/portal/internal/domain/model"
	"github.com/palletworks/portal/internal/domain/repository"
)

// OrderRepositoryStub allows tests to customize behaviour per call.
type OrderRepositoryStub struct {
	CreateFn              func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn             func(context.Context, uuid.UUID) (*model.Order, error)
	GetByItemIDFn         func(context.Context, uuid.UUID) (*model.Order, error)
	ListByStatusFn        func(context.Context, model.OrderStatus, int) ([]model.Order, error)
	UpdateStatusFn        func(context.Context, uuid.UUID, model.OrderStatus, *time.Time, decimal.Decimal, int64) (*model.Order, error)
	UpdateDeliveryPriceFn func(context.Context, uuid.UUID, decimal.Decimal, decimal.Decimal, int64) (*model.Order, error)
	UpdateItemPriceFn     func(context.Context, uuid.UUID, decimal.Decimal, decimal.Decimal, int64) (*model.Order, error)
}

func (s OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	stored := *order
	stored.ID = uuid.New()
	stored.Version = 1
	for i := range stored.Items {
		stored.Items[i].ID = uuid.New()
		stored.Items[i].OrderID = stored.ID
	}
	return &stored, nil
}

func (s OrderRepositoryStub) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderRepositoryStub) GetByItemID(ctx context.Context, itemID uuid.UUID) (*model.Order, error) {
	if s.GetByItemIDFn != nil {
		return s.GetByItemIDFn(ctx, itemID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderRepositoryStub) ListByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error) {
	if s.ListByStatusFn != nil {
		return s.ListByStatusFn(ctx, status, limit)
	}
	return nil, nil
}

func (s OrderRepositoryStub) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, deliveryDate *time.Time, total decimal.Decimal, version int64) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, id, status, deliveryDate, total, version)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderRepositoryStub) UpdateDeliveryPrice(ctx context.Context, id uuid.UUID, price, total decimal.Decimal, version int64) (*model.Order, error) {
	if s.UpdateDeliveryPriceFn != nil {
		return s.UpdateDeliveryPriceFn(ctx, id, price, total, version)
	}
	return nil, domainErrors.ErrNotFound
}

func (s OrderRepositoryStub) UpdateItemPrice(ctx context.Context, itemID uuid.UUID, price, total decimal.Decimal, version int64) (*model.Order, error) {
	if s.UpdateItemPriceFn != nil {
		return s.UpdateItemPriceFn(ctx, itemID, price, total, version)
	}
	return nil, domainErrors.ErrNotFound
}

// SubmissionRepositoryStub keeps submissions in-memory for tests.
type SubmissionRepositoryStub struct {
	Submissions []model.Submission
	Err         error
}

func (s *SubmissionRepositoryStub) Create(ctx context.Context, submission *model.Submission) (*model.Submission, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *submission
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	s.Submissions = append(s.Submissions, stored)
	return &stored, nil
}

func (s *SubmissionRepositoryStub) ListRecent(ctx context.Context, limit int) ([]model.Submission, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if limit > len(s.Submissions) {
		limit = len(s.Submissions)
	}
	out := make([]model.Submission, limit)
	copy(out, s.Submissions[len(s.Submissions)-limit:])
	return out, nil
}

// FactoryStub bundles repository stubs behind the factory interface.
type FactoryStub struct {
	OrderRepo      OrderRepositoryStub
	SubmissionRepo *SubmissionRepositoryStub
}

func (f FactoryStub) Orders() repository.OrderRepository { return f.OrderRepo }

func (f FactoryStub) Submissions() repository.SubmissionRepository { return f.SubmissionRepo }
