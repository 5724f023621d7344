package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftType enum
type ShiftType string

const (
	ShiftDay   ShiftType = "DAY"
	ShiftNight ShiftType = "NIGHT"
)

// Employee is master data owned by the HR directory, read-only here.
type Employee struct {
	ID         string
	Name       string
	Department string
	IsActive   bool
	HireDate   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Loan is an active salary loan; the fixed installment is withheld each period.
type Loan struct {
	Principal   decimal.Decimal
	Installment decimal.Decimal
}

// CompensationProfile carries everything the payroll calculator needs for one
// employee. BasicSalary may be nil for malformed profiles; the calculator
// falls back to a configured default and surfaces a warning.
type CompensationProfile struct {
	EmployeeID    string
	BasicSalary   *decimal.Decimal
	Grade         string
	ShiftType     ShiftType
	Loan          *Loan
	BankName      string
	AccountNumber string
}
