package accounting

import (
	"context"
	"errors"
	"fmt"

	"github.com/kopkar/backend/internal/domain/accounting"
	"github.com/kopkar/backend/internal/domain/shared"
)

// AccountResolver resolves chart of accounts codes to accounts for the
// automatic journal generators. It is built once at startup; the chart is
// read-only at runtime from this engine's perspective. A missing code is a
// configuration defect reported as ACCOUNT_NOT_CONFIGURED.
type AccountResolver struct {
	byCode map[string]accounting.Account
}

// NewAccountResolver loads the full chart of accounts and indexes it by code
func NewAccountResolver(ctx context.Context, repo accounting.AccountRepository) (*AccountResolver, error) {
	accounts, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	byCode := make(map[string]accounting.Account, len(accounts))
	for _, account := range accounts {
		byCode[account.Code] = account
	}
	return &AccountResolver{byCode: byCode}, nil
}

// ByCode resolves one account code
func (r *AccountResolver) ByCode(code string) (*accounting.Account, error) {
	account, ok := r.byCode[code]
	if !ok {
		return nil, shared.NewDomainError("ACCOUNT_NOT_CONFIGURED",
			fmt.Sprintf("Account code %s is not configured in the chart of accounts", code))
	}
	return &account, nil
}

// seedAccount describes one default chart of accounts row
type seedAccount struct {
	code        string
	name        string
	accountType accounting.AccountType
}

var defaultChart = []seedAccount{
	{accounting.CodeCash, "Kas", accounting.AccountTypeAsset},
	{accounting.CodeLoanReceivable, "Piutang Pinjaman Anggota", accounting.AccountTypeAsset},
	{accounting.CodeMemberReceivable, "Piutang Anggota", accounting.AccountTypeAsset},
	{accounting.CodeSimpananPokok, "Simpanan Pokok", accounting.AccountTypeLiability},
	{accounting.CodeSimpananWajib, "Simpanan Wajib", accounting.AccountTypeLiability},
	{accounting.CodeSimpananSukarela, "Simpanan Sukarela", accounting.AccountTypeLiability},
	{accounting.CodeSalesRevenue, "Pendapatan Penjualan", accounting.AccountTypeRevenue},
	{accounting.CodeInterestIncome, "Pendapatan Jasa Pinjaman", accounting.AccountTypeRevenue},
}

// SeedChartOfAccounts creates the accounts the journal generators depend on
// when they are missing. Existing accounts are left untouched.
func SeedChartOfAccounts(ctx context.Context, repo accounting.AccountRepository) error {
	for _, seed := range defaultChart {
		_, err := repo.FindByCode(ctx, seed.code)
		if err == nil {
			continue
		}
		if !errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("failed to look up account %s: %w", seed.code, err)
		}
		account, err := accounting.NewAccount(seed.code, seed.name, seed.accountType, nil)
		if err != nil {
			return err
		}
		if err := repo.Save(ctx, account); err != nil {
			return fmt.Errorf("failed to seed account %s: %w", seed.code, err)
		}
	}
	return nil
}
