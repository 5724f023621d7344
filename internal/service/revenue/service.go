package revenue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/revenue"
	"github.com/google/uuid"
)

type RevenueServiceImpl struct {
	repo revenue.Repository
}

func NewRevenueService(repo revenue.Repository) revenue.Service {
	return &RevenueServiceImpl{repo: repo}
}

// AllocateShares implements revenue.Service. Shares are created once, at
// invoice-line creation time; afterwards they are a historical record and the
// only permitted mutation is a payment-status update.
func (s *RevenueServiceImpl) AllocateShares(ctx context.Context, invoiceLineID string) (revenue.AllocationResponse, error) {
	line, err := s.repo.GetInvoiceLine(ctx, invoiceLineID)
	if err != nil {
		if errors.Is(err, revenue.ErrInvoiceLineNotFound) {
			return revenue.AllocationResponse{}, revenue.ErrInvoiceLineNotFound
		}
		return revenue.AllocationResponse{}, fmt.Errorf("failed to load invoice line: %w", err)
	}

	existing, err := s.repo.ListSharesByInvoiceLine(ctx, invoiceLineID)
	if err != nil {
		return revenue.AllocationResponse{}, fmt.Errorf("failed to check existing shares: %w", err)
	}
	if len(existing) > 0 {
		return revenue.AllocationResponse{}, revenue.ErrAlreadyAllocated
	}

	templates, err := s.repo.ListTemplatesByService(ctx, line.ServiceID)
	if err != nil {
		return revenue.AllocationResponse{}, fmt.Errorf("failed to load share templates: %w", err)
	}
	if len(templates) == 0 {
		return revenue.AllocationResponse{}, revenue.ErrNoTemplatesForService
	}

	// A template referencing an unknown stakeholder is fatal to this line's
	// allocation, not to the wider system.
	for _, tpl := range templates {
		if _, err := s.repo.GetStakeholder(ctx, tpl.StakeholderID); err != nil {
			if errors.Is(err, revenue.ErrStakeholderNotFound) {
				return revenue.AllocationResponse{}, fmt.Errorf("template %s references unknown stakeholder %s: %w",
					tpl.ID, tpl.StakeholderID, revenue.ErrStakeholderNotFound)
			}
			return revenue.AllocationResponse{}, fmt.Errorf("failed to load stakeholder: %w", err)
		}
	}

	shares, warnings := Allocate(line, templates)
	for i := range shares {
		shares[i].ID = uuid.NewString()
	}
	for _, w := range warnings {
		slog.Warn("revenue share configuration warning",
			"service_id", w.ServiceID,
			"code", w.Code,
			"message", w.Message)
	}

	created, err := s.repo.CreateShares(ctx, shares)
	if err != nil {
		return revenue.AllocationResponse{}, fmt.Errorf("failed to create invoice shares: %w", err)
	}

	return revenue.AllocationResponse{
		InvoiceLineID: line.ID,
		LineTotal:     line.LineTotal,
		Shares:        mapSharesToResponses(created),
		Warnings:      mapWarningsToResponses(warnings),
	}, nil
}

// ListShares implements revenue.Service.
func (s *RevenueServiceImpl) ListShares(ctx context.Context, invoiceLineID string) ([]revenue.ShareResponse, error) {
	if _, err := s.repo.GetInvoiceLine(ctx, invoiceLineID); err != nil {
		return nil, err
	}

	shares, err := s.repo.ListSharesByInvoiceLine(ctx, invoiceLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice shares: %w", err)
	}
	return mapSharesToResponses(shares), nil
}

// UpdateSharePayment implements revenue.Service.
func (s *RevenueServiceImpl) UpdateSharePayment(ctx context.Context, req revenue.UpdateSharePaymentRequest) (revenue.ShareResponse, error) {
	if err := req.Validate(); err != nil {
		return revenue.ShareResponse{}, err
	}

	share, err := s.repo.GetShare(ctx, req.ID)
	if err != nil {
		return revenue.ShareResponse{}, err
	}

	amountPaid := share.AmountPaid
	if req.AmountPaid != nil {
		amountPaid = *req.AmountPaid
	}
	status := revenue.PaymentStatus(req.Status)
	if status == revenue.PaymentPaid && req.AmountPaid == nil {
		amountPaid = share.Amount
	}

	if amountPaid.GreaterThan(share.Amount) {
		return revenue.ShareResponse{}, revenue.ErrInvalidPaymentAmount
	}

	if err := s.repo.UpdateSharePayment(ctx, req.ID, status, amountPaid); err != nil {
		return revenue.ShareResponse{}, fmt.Errorf("failed to update share payment: %w", err)
	}

	share.PaymentStatus = status
	share.AmountPaid = amountPaid
	return mapShareToResponse(share), nil
}

func mapShareToResponse(share revenue.InvoiceShare) revenue.ShareResponse {
	return revenue.ShareResponse{
		ID:              share.ID,
		InvoiceID:       share.InvoiceID,
		InvoiceLineID:   share.InvoiceLineID,
		StakeholderID:   share.StakeholderID,
		StakeholderName: share.StakeholderName,
		ShareType:       string(share.ShareType),
		Amount:          share.Amount,
		AmountPaid:      share.AmountPaid,
		PaymentStatus:   string(share.PaymentStatus),
	}
}

func mapSharesToResponses(shares []revenue.InvoiceShare) []revenue.ShareResponse {
	responses := make([]revenue.ShareResponse, 0, len(shares))
	for _, share := range shares {
		responses = append(responses, mapShareToResponse(share))
	}
	return responses
}

func mapWarningsToResponses(warnings []revenue.Warning) []revenue.WarningResponse {
	if len(warnings) == 0 {
		return nil
	}
	responses := make([]revenue.WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		responses = append(responses, revenue.WarningResponse{
			ServiceID: w.ServiceID,
			Code:      w.Code,
			Message:   w.Message,
		})
	}
	return responses
}
