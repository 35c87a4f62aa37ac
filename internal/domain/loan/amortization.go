package loan

import (
	"time"

	"github.com/kopkar/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FlatRateParams are the inputs to the amortization calculator
type FlatRateParams struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
	StartDate         time.Time
}

// InstallmentPlan is one row of a computed amortization schedule
type InstallmentPlan struct {
	Number             int
	DueDate            time.Time
	InstallmentAmount  decimal.Decimal
	PrincipalAmount    decimal.Decimal
	InterestAmount     decimal.Decimal
	RemainingPrincipal decimal.Decimal
}

// FlatRateResult is the full output of a flat-rate calculation
type FlatRateResult struct {
	TotalInterest      decimal.Decimal
	TotalAmount        decimal.Decimal
	MonthlyInstallment decimal.Decimal
	MonthlyPrincipal   decimal.Decimal
	MonthlyInterest    decimal.Decimal
	Schedules          []InstallmentPlan
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

func validateParams(params FlatRateParams) error {
	if !params.Principal.IsPositive() {
		return shared.NewDomainError("VALIDATION_ERROR", "Loan principal must be positive")
	}
	if params.AnnualRatePercent.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Annual rate cannot be negative")
	}
	if params.TermMonths <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Loan term must be at least one month")
	}
	return nil
}

// firstOfNextMonths returns the 1st of the n-th calendar month after start
func firstOfNextMonths(start time.Time, n int) time.Time {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	return first.AddDate(0, n, 0)
}

// CalculateFlatRate computes a flat-rate amortization schedule. Interest is
// always computed on the original principal, never the declining balance;
// installment, principal and interest portions are constant across the term.
// The function is pure and fully deterministic given its inputs.
func CalculateFlatRate(params FlatRateParams) (*FlatRateResult, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	term := decimal.NewFromInt(int64(params.TermMonths))
	monthlyRate := params.AnnualRatePercent.Div(hundred).Div(twelve)
	totalInterest := params.Principal.Mul(monthlyRate).Mul(term)
	totalAmount := params.Principal.Add(totalInterest)
	monthlyInstallment := totalAmount.Div(term)
	monthlyPrincipal := params.Principal.Div(term)
	monthlyInterest := totalInterest.Div(term)

	schedules := make([]InstallmentPlan, 0, params.TermMonths)
	remaining := params.Principal
	for i := 1; i <= params.TermMonths; i++ {
		remaining = remaining.Sub(monthlyPrincipal)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		schedules = append(schedules, InstallmentPlan{
			Number:             i,
			DueDate:            firstOfNextMonths(params.StartDate, i),
			InstallmentAmount:  monthlyInstallment,
			PrincipalAmount:    monthlyPrincipal,
			InterestAmount:     monthlyInterest,
			RemainingPrincipal: remaining,
		})
	}

	return &FlatRateResult{
		TotalInterest:      totalInterest,
		TotalAmount:        totalAmount,
		MonthlyInstallment: monthlyInstallment,
		MonthlyPrincipal:   monthlyPrincipal,
		MonthlyInterest:    monthlyInterest,
		Schedules:          schedules,
	}, nil
}

// RecalculateWithManualAmounts recomputes a schedule with operator-supplied
// installment amounts for specific installment numbers. For an overridden
// installment the principal portion is the override amount minus the constant
// monthly interest, floored at zero. Non-overridden installments re-derive
// their principal from the principal still outstanding divided by the number
// of installments left, so later installments absorb the effect of earlier
// overrides. Interest stays constant per the flat-rate model.
func RecalculateWithManualAmounts(params FlatRateParams, overrides map[int]decimal.Decimal) (*FlatRateResult, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}
	for number, amount := range overrides {
		if number < 1 || number > params.TermMonths {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Override installment number is out of range")
		}
		if amount.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Override amount cannot be negative")
		}
	}

	term := decimal.NewFromInt(int64(params.TermMonths))
	monthlyRate := params.AnnualRatePercent.Div(hundred).Div(twelve)
	totalInterest := params.Principal.Mul(monthlyRate).Mul(term)
	monthlyInterest := totalInterest.Div(term)

	schedules := make([]InstallmentPlan, 0, params.TermMonths)
	remaining := params.Principal
	totalAmount := decimal.Zero

	for i := 1; i <= params.TermMonths; i++ {
		var principal, installment decimal.Decimal
		if amount, ok := overrides[i]; ok {
			principal = amount.Sub(monthlyInterest)
			if principal.IsNegative() {
				principal = decimal.Zero
			}
			installment = amount
		} else {
			remainingCount := decimal.NewFromInt(int64(params.TermMonths - i + 1))
			principal = remaining.Div(remainingCount)
			installment = principal.Add(monthlyInterest)
		}

		remaining = remaining.Sub(principal)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		totalAmount = totalAmount.Add(installment)

		schedules = append(schedules, InstallmentPlan{
			Number:             i,
			DueDate:            firstOfNextMonths(params.StartDate, i),
			InstallmentAmount:  installment,
			PrincipalAmount:    principal,
			InterestAmount:     monthlyInterest,
			RemainingPrincipal: remaining,
		})
	}

	return &FlatRateResult{
		TotalInterest:      totalInterest,
		TotalAmount:        totalAmount,
		MonthlyInstallment: totalAmount.Div(term),
		MonthlyPrincipal:   params.Principal.Div(term),
		MonthlyInterest:    monthlyInterest,
		Schedules:          schedules,
	}, nil
}
