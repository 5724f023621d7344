package revenue

import (
	"fmt"

	"github.com/SanorSmith/Tibba-sub001/internal/domain/revenue"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Allocate computes the stakeholder share set for one billed invoice line.
// It is a pure function over the line and its service's templates: every
// template yields exactly one share, initialized PENDING with nothing paid.
//
// The sum of shares may legitimately fall short of the line total (the
// facility keeps the residual) but must never exceed it. Percentage shares
// round against the cumulative entitlement so far rather than in isolation:
// each share is the rounded cumulative amount minus what earlier percentage
// shares already took. Rounding drift therefore cancels instead of
// accumulating, the total of a set summing to at most 100% never exceeds the
// line total, and a set of exactly 100% splits it to the unit. A template set
// that over-allocates is a configuration error: it is reported as a warning,
// never auto-corrected, and the shares are emitted as computed so the
// misconfiguration stays visible.
func Allocate(line revenue.InvoiceLine, templates []revenue.ShareTemplate) ([]revenue.InvoiceShare, []revenue.Warning) {
	shares := make([]revenue.InvoiceShare, 0, len(templates))
	var warnings []revenue.Warning

	allocated := decimal.Zero
	pctEntitled := decimal.Zero
	pctAllocated := decimal.Zero
	for _, tpl := range templates {
		var amount decimal.Decimal
		switch tpl.ShareType {
		case revenue.SharePercentage:
			pctEntitled = pctEntitled.Add(line.LineTotal.Mul(tpl.Value).Div(oneHundred))
			amount = pctEntitled.Round(0).Sub(pctAllocated)
			pctAllocated = pctAllocated.Add(amount)
		case revenue.ShareFixed:
			amount = tpl.Value.Round(0)
			if amount.GreaterThan(line.LineTotal) {
				warnings = append(warnings, revenue.Warning{
					ServiceID: line.ServiceID,
					Code:      revenue.WarnFixedCapped,
					Message: fmt.Sprintf("fixed share %s for stakeholder %s exceeds line total %s, capped",
						amount.String(), tpl.StakeholderID, line.LineTotal.String()),
				})
				amount = line.LineTotal
			}
		default:
			continue
		}

		allocated = allocated.Add(amount)
		shares = append(shares, revenue.InvoiceShare{
			InvoiceID:     line.InvoiceID,
			InvoiceLineID: line.ID,
			StakeholderID: tpl.StakeholderID,
			ShareType:     tpl.ShareType,
			Amount:        amount,
			AmountPaid:    decimal.Zero,
			PaymentStatus: revenue.PaymentPending,
		})
	}

	if allocated.GreaterThan(line.LineTotal) {
		warnings = append(warnings, revenue.Warning{
			ServiceID: line.ServiceID,
			Code:      revenue.WarnOverAllocation,
			Message: fmt.Sprintf("templates for service %s allocate %s against line total %s",
				line.ServiceID, allocated.String(), line.LineTotal.String()),
		})
	}

	return shares, warnings
}
