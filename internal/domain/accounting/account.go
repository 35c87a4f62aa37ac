package accounting

import (
	"strings"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountType classifies an account in the chart of accounts
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// String returns the string representation
func (t AccountType) String() string {
	return string(t)
}

// IsValid returns true if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// IsDebitNormal returns true for accounts whose balance grows on the debit side
func (t AccountType) IsDebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// Well-known account codes used by the automatic journal generators.
// These are reference data seeded with the chart of accounts; generators
// resolve them through an AccountResolver and treat a missing code as a
// configuration defect, never as a panic.
const (
	CodeCash             = "1010"
	CodeLoanReceivable   = "1220"
	CodeMemberReceivable = "1310"
	CodeSimpananPokok    = "5110"
	CodeSimpananWajib    = "5210"
	CodeSimpananSukarela = "5310"
	CodeSalesRevenue     = "4010"
	CodeInterestIncome   = "4210"
)

// SavingsLiabilityCode maps a savings account type name to its liability
// account code. Returns empty string for unknown types.
func SavingsLiabilityCode(savingsType string) string {
	switch strings.ToUpper(savingsType) {
	case "POKOK":
		return CodeSimpananPokok
	case "WAJIB":
		return CodeSimpananWajib
	case "SUKARELA":
		return CodeSimpananSukarela
	}
	return ""
}

// Account is a node in the chart of accounts. Accounts are reference data:
// immutable once referenced by a posted journal line.
type Account struct {
	shared.BaseEntity
	Code     string      `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name     string      `gorm:"type:varchar(100);not null"`
	Type     AccountType `gorm:"type:varchar(20);not null;index"`
	ParentID *uuid.UUID  `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

// NewAccount creates a new chart of accounts entry
func NewAccount(code, name string, accountType AccountType, parentID *uuid.UUID) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Invalid account type")
	}

	return &Account{
		BaseEntity: shared.NewBaseEntity(),
		Code:       code,
		Name:       name,
		Type:       accountType,
		ParentID:   parentID,
	}, nil
}
