// Package amortization generates repayment schedules for all supported
// interest methods. The calculator is pure: it never touches persistence and
// returns unsaved schedule entries for the caller to own.
package amortization

import (
	"fmt"
	"time"

	"github.com/Chrisphine10/intellicash-core/internal/apperrors"
	"github.com/Chrisphine10/intellicash-core/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	one        = decimal.NewFromInt(1)
	oneHundred = decimal.NewFromInt(100)
)

// Params are the inputs to schedule generation.
type Params struct {
	Principal   domain.Money
	AnnualRate  decimal.Decimal // percent
	TermCount   int
	TermPeriod  domain.TermPeriod
	StartDate   time.Time
	Method      domain.InterestMethod
	PenaltyRate decimal.Decimal // percent, stored on each entry for later assessment
}

// GenerateSchedule produces the ordered repayment schedule for the given
// parameters. Invariants honored for every method:
//
//   - principal_due across all entries sums exactly to the principal
//     (rounding remainder absorbed into the final entry)
//   - running_balance decreases by principal_due and reaches zero on the
//     final entry
//   - penalty_due is zero at generation time; penalties are assessed later
//     by the payment allocator
func GenerateSchedule(p Params) ([]domain.ScheduleEntry, error) {
	if p.TermCount < 1 {
		return nil, fmt.Errorf("%w: term count must be at least 1, got %d", apperrors.ErrInvalidArgument, p.TermCount)
	}
	if !p.Principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal must be positive, got %s", apperrors.ErrInvalidArgument, p.Principal)
	}
	if p.TermPeriod.PeriodsPerYear() == 0 {
		return nil, fmt.Errorf("%w: unknown term period %q", apperrors.ErrInvalidArgument, p.TermPeriod)
	}
	if p.AnnualRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate must not be negative", apperrors.ErrInvalidArgument)
	}

	switch p.Method {
	case domain.FlatRate:
		return flatRateSchedule(p)
	case domain.FixedRate:
		return fixedRateSchedule(p)
	case domain.Mortgage:
		return mortgageSchedule(p)
	case domain.OneTime:
		return oneTimeSchedule(p)
	case domain.ReducingAmount:
		return reducingAmountSchedule(p)
	case domain.Compound:
		return compoundSchedule(p)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedInterestMethod, p.Method)
	}
}

// periodRate converts the annual percentage rate into a per-period fraction,
// e.g. 12% annual with monthly periods -> 0.01.
func periodRate(annualRate decimal.Decimal, period domain.TermPeriod) decimal.Decimal {
	return annualRate.Div(oneHundred).Div(decimal.NewFromInt(period.PeriodsPerYear()))
}

// addTermPeriods advances start by n term-period units with calendar-correct
// month/year semantics: the day of month is clamped to the target month's
// length (Jan 31 + 1 month = Feb 28/29), and each installment is computed
// from the start date so clamping never compounds across periods.
func addTermPeriods(start time.Time, n int, period domain.TermPeriod) time.Time {
	switch period {
	case domain.TermDays:
		return start.AddDate(0, 0, n)
	case domain.TermWeeks:
		return start.AddDate(0, 0, 7*n)
	case domain.TermMonths:
		return addMonthsClamped(start, n)
	case domain.TermYears:
		return addMonthsClamped(start, 12*n)
	default:
		return start
	}
}

func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	totalMonths := int(m) - 1 + months
	targetYear := y + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 && totalMonths%12 != 0 {
		targetYear--
		targetMonth = time.Month(totalMonths%12 + 13)
	}
	if last := lastDayOfMonth(targetYear, targetMonth); d > last {
		d = last
	}
	return time.Date(targetYear, targetMonth, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func newEntry(p Params, seq int, principal, interest, running domain.Money) domain.ScheduleEntry {
	penalty := domain.ZeroMoney(p.Principal.CurrencyCode)
	return domain.ScheduleEntry{
		Sequence:       seq,
		DueDate:        addTermPeriods(p.StartDate, seq, p.TermPeriod),
		PrincipalDue:   principal,
		InterestDue:    interest,
		PenaltyDue:     penalty,
		AmountToPay:    principal.MustAdd(interest),
		RunningBalance: running,
		PenaltyRate:    p.PenaltyRate,
		Status:         domain.EntryPending,
	}
}

// flatRateSchedule charges the rate once over the full principal and spreads
// both principal and interest evenly across the term.
func flatRateSchedule(p Params) ([]domain.ScheduleEntry, error) {
	principalShares, err := p.Principal.Split(p.TermCount)
	if err != nil {
		return nil, err
	}
	totalInterest := p.Principal.MultiplyByRate(p.AnnualRate)
	interestShares, err := totalInterest.Split(p.TermCount)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ScheduleEntry, p.TermCount)
	balance := p.Principal
	for i := 0; i < p.TermCount; i++ {
		balance = balance.MustSub(principalShares[i])
		entries[i] = newEntry(p, i+1, principalShares[i], interestShares[i], balance)
	}
	return entries, nil
}

// fixedRateSchedule reapplies the full nominal rate each period against the
// current running balance, with an even principal split. Unlike the mortgage
// and reducing-amount methods the rate is not converted to a per-period rate.
func fixedRateSchedule(p Params) ([]domain.ScheduleEntry, error) {
	principalShares, err := p.Principal.Split(p.TermCount)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ScheduleEntry, p.TermCount)
	balance := p.Principal
	for i := 0; i < p.TermCount; i++ {
		interest := balance.MultiplyByRate(p.AnnualRate)
		balance = balance.MustSub(principalShares[i])
		entries[i] = newEntry(p, i+1, principalShares[i], interest, balance)
	}
	return entries, nil
}

// mortgageSchedule is the classic reducing-balance annuity: a fixed total
// installment solved via A = P*r*(1+r)^n / ((1+r)^n - 1), with the final
// period's principal adjusted so the balance reaches exactly zero.
func mortgageSchedule(p Params) ([]domain.ScheduleEntry, error) {
	r := periodRate(p.AnnualRate, p.TermPeriod)
	if r.IsZero() {
		// Zero-interest annuity degenerates to an even split.
		return fixedRateSchedule(Params{
			Principal:   p.Principal,
			AnnualRate:  decimal.Zero,
			TermCount:   p.TermCount,
			TermPeriod:  p.TermPeriod,
			StartDate:   p.StartDate,
			Method:      p.Method,
			PenaltyRate: p.PenaltyRate,
		})
	}

	principalDec := decimal.NewFromInt(p.Principal.Amount)
	factor := one.Add(r).Pow(decimal.NewFromInt(int64(p.TermCount)))
	installmentDec := principalDec.Mul(r).Mul(factor).Div(factor.Sub(one)).Round(0)
	installment := domain.NewMoney(installmentDec.IntPart(), p.Principal.CurrencyCode)

	entries := make([]domain.ScheduleEntry, p.TermCount)
	balance := p.Principal
	for i := 0; i < p.TermCount; i++ {
		interest := balance.MultiplyBy(r)
		var principalDue domain.Money
		if i == p.TermCount-1 {
			// Final entry absorbs all rounding so the balance zeroes out.
			principalDue = balance
		} else {
			principalDue = installment.MustSub(interest)
		}
		balance = balance.MustSub(principalDue)
		entries[i] = newEntry(p, i+1, principalDue, interest, balance)
	}
	return entries, nil
}

// oneTimeSchedule is a single balloon payment one term-period after the start
// date, charging interest for the whole term at once.
func oneTimeSchedule(p Params) ([]domain.ScheduleEntry, error) {
	wholeTermRate := p.AnnualRate.Mul(decimal.NewFromInt(int64(p.TermCount)))
	interest := p.Principal.MultiplyByRate(wholeTermRate)
	entry := newEntry(p, 1, p.Principal, interest, domain.ZeroMoney(p.Principal.CurrencyCode))
	return []domain.ScheduleEntry{entry}, nil
}

// reducingAmountSchedule charges per-period interest on the declining balance
// with a fixed even principal split, so the total installment shrinks period
// over period as interest does.
func reducingAmountSchedule(p Params) ([]domain.ScheduleEntry, error) {
	principalShares, err := p.Principal.Split(p.TermCount)
	if err != nil {
		return nil, err
	}
	r := periodRate(p.AnnualRate, p.TermPeriod)

	entries := make([]domain.ScheduleEntry, p.TermCount)
	balance := p.Principal
	for i := 0; i < p.TermCount; i++ {
		interest := balance.MultiplyBy(r)
		balance = balance.MustSub(principalShares[i])
		entries[i] = newEntry(p, i+1, principalShares[i], interest, balance)
	}
	return entries, nil
}

// compoundSchedule compounds the interest-bearing base each period: the base
// starts at the principal and grows by (1+r) per period, each period charging
// base*r as interest. Principal is an even split and the running balance
// still tracks outstanding principal.
func compoundSchedule(p Params) ([]domain.ScheduleEntry, error) {
	principalShares, err := p.Principal.Split(p.TermCount)
	if err != nil {
		return nil, err
	}
	r := periodRate(p.AnnualRate, p.TermPeriod)
	growth := one.Add(r)

	entries := make([]domain.ScheduleEntry, p.TermCount)
	balance := p.Principal
	// The compounding base is tracked as an exact decimal so per-period
	// rounding of interest_due never feeds back into the compounding.
	base := decimal.NewFromInt(p.Principal.Amount)
	for i := 0; i < p.TermCount; i++ {
		interestAmt := base.Mul(r).Round(0)
		interest := domain.NewMoney(interestAmt.IntPart(), p.Principal.CurrencyCode)
		base = base.Mul(growth)
		balance = balance.MustSub(principalShares[i])
		entries[i] = newEntry(p, i+1, principalShares[i], interest, balance)
	}
	return entries, nil
}
