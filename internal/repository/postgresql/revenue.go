package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/revenue"
	"github.com/SanorSmith/Tibba-sub001/internal/pkg/database"
)

type revenueRepository struct {
	db *database.DB
}

func NewRevenueRepository(db *database.DB) revenue.Repository {
	return &revenueRepository{db: db}
}

// GetInvoiceLine implements revenue.Repository.
func (r *revenueRepository) GetInvoiceLine(ctx context.Context, id string) (revenue.InvoiceLine, error) {
	q := GetQuerier(ctx, r.db)

	var line revenue.InvoiceLine
	err := q.QueryRow(ctx, `
		SELECT id, invoice_id, service_id, quantity, unit_price, line_total, created_at
		FROM invoice_lines
		WHERE id = $1
	`, id).Scan(&line.ID, &line.InvoiceID, &line.ServiceID, &line.Quantity, &line.UnitPrice, &line.LineTotal, &line.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return revenue.InvoiceLine{}, revenue.ErrInvoiceLineNotFound
		}
		return revenue.InvoiceLine{}, fmt.Errorf("failed to get invoice line: %w", err)
	}

	return line, nil
}

// ListTemplatesByService implements revenue.Repository.
func (r *revenueRepository) ListTemplatesByService(ctx context.Context, serviceID string) ([]revenue.ShareTemplate, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, service_id, stakeholder_id, share_type, value, created_at
		FROM share_templates
		WHERE service_id = $1
		ORDER BY created_at ASC
	`, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share templates: %w", err)
	}
	defer rows.Close()

	var templates []revenue.ShareTemplate
	for rows.Next() {
		var t revenue.ShareTemplate
		if err := rows.Scan(&t.ID, &t.ServiceID, &t.StakeholderID, &t.ShareType, &t.Value, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan share template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate share templates: %w", err)
	}

	return templates, nil
}

// GetStakeholder implements revenue.Repository.
func (r *revenueRepository) GetStakeholder(ctx context.Context, id string) (revenue.Stakeholder, error) {
	q := GetQuerier(ctx, r.db)

	var s revenue.Stakeholder
	err := q.QueryRow(ctx, `
		SELECT id, name, role, created_at
		FROM stakeholders
		WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Role, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return revenue.Stakeholder{}, revenue.ErrStakeholderNotFound
		}
		return revenue.Stakeholder{}, fmt.Errorf("failed to get stakeholder: %w", err)
	}

	return s, nil
}

// CreateShares implements revenue.Repository. All shares for a line land in
// one transaction so an allocation is never half-recorded.
func (r *revenueRepository) CreateShares(ctx context.Context, shares []revenue.InvoiceShare) ([]revenue.InvoiceShare, error) {
	created := make([]revenue.InvoiceShare, len(shares))
	copy(created, shares)

	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for i, share := range shares {
			err := tx.QueryRow(ctx, `
				INSERT INTO invoice_shares (
					id, invoice_id, invoice_line_id, stakeholder_id,
					share_type, amount, amount_paid, payment_status
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING created_at, updated_at
			`,
				share.ID, share.InvoiceID, share.InvoiceLineID, share.StakeholderID,
				share.ShareType, share.Amount, share.AmountPaid, share.PaymentStatus,
			).Scan(&created[i].CreatedAt, &created[i].UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert invoice share: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ListSharesByInvoiceLine implements revenue.Repository.
func (r *revenueRepository) ListSharesByInvoiceLine(ctx context.Context, invoiceLineID string) ([]revenue.InvoiceShare, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, shareSelect+`
		WHERE ivs.invoice_line_id = $1
		ORDER BY ivs.created_at ASC
	`, invoiceLineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoice shares: %w", err)
	}

	return scanShares(rows)
}

// GetShare implements revenue.Repository.
func (r *revenueRepository) GetShare(ctx context.Context, id string) (revenue.InvoiceShare, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, shareSelect+`
		WHERE ivs.id = $1
	`, id)
	if err != nil {
		return revenue.InvoiceShare{}, fmt.Errorf("failed to get invoice share: %w", err)
	}

	shares, err := scanShares(rows)
	if err != nil {
		return revenue.InvoiceShare{}, err
	}
	if len(shares) == 0 {
		return revenue.InvoiceShare{}, revenue.ErrShareNotFound
	}

	return shares[0], nil
}

// UpdateSharePayment implements revenue.Repository. Only payment fields ever
// change; the computed amount is immutable after allocation.
func (r *revenueRepository) UpdateSharePayment(ctx context.Context, id string, status revenue.PaymentStatus, amountPaid decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE invoice_shares
		SET payment_status = $1, amount_paid = $2, updated_at = NOW()
		WHERE id = $3
	`, status, amountPaid, id)
	if err != nil {
		return fmt.Errorf("failed to update share payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return revenue.ErrShareNotFound
	}

	return nil
}

const shareSelect = `
	SELECT ivs.id, ivs.invoice_id, ivs.invoice_line_id, ivs.stakeholder_id,
	       ivs.share_type, ivs.amount, ivs.amount_paid, ivs.payment_status,
	       ivs.created_at, ivs.updated_at, s.name
	FROM invoice_shares ivs
	JOIN stakeholders s ON s.id = ivs.stakeholder_id
`

func scanShares(rows pgx.Rows) ([]revenue.InvoiceShare, error) {
	defer rows.Close()

	var shares []revenue.InvoiceShare
	for rows.Next() {
		var s revenue.InvoiceShare
		err := rows.Scan(
			&s.ID, &s.InvoiceID, &s.InvoiceLineID, &s.StakeholderID,
			&s.ShareType, &s.Amount, &s.AmountPaid, &s.PaymentStatus,
			&s.CreatedAt, &s.UpdatedAt, &s.StakeholderName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice share: %w", err)
		}
		shares = append(shares, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoice shares: %w", err)
	}

	return shares, nil
}
