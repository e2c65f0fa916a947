package hra

import (
	"math"
	"time"

	"gstkit/internal/domain"
)

const minRentedDays = 14

// PeriodExemption is the exemption for rent paid over an explicit date range.
type PeriodExemption struct {
	Exemption
	MonthlyHouseRent          float64 `json:"monthly_house_rent"`
	TotalEligibleHRAExemption float64 `json:"total_eligible_hra_exemption"`
}

// dateDiff counts calendar days from "from" to "to", ignoring time of day.
func dateDiff(to, from time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(t.Sub(f).Hours() / 24))
}

// ValidateRentDates checks the rented date range of a proof submission
// against the employee's other submitted proofs for the same payroll period.
func ValidateRentDates(sub *domain.ProofSubmission, prior []domain.ProofSubmission) error {
	if sub.RentedFromDate == nil || sub.RentedToDate == nil {
		return domain.NewValidationError("House rented dates required for exemption calculation")
	}
	from, to := *sub.RentedFromDate, *sub.RentedToDate
	if dateDiff(to, from) < minRentedDays {
		return domain.NewValidationError("House rented dates should be atleast 15 days apart")
	}
	if p := FirstOverlap(sub, prior); p != nil {
		return domain.NewValidationError("House rent paid days overlapping with %s", p.Name)
	}
	return nil
}

// FirstOverlap returns the first submitted proof of the same employee and
// payroll period whose rented from or to date falls within sub's rented range.
// Both range ends are inclusive. A range lying strictly inside a prior proof
// is not reported.
func FirstOverlap(sub *domain.ProofSubmission, prior []domain.ProofSubmission) *domain.ProofSubmission {
	from, to := *sub.RentedFromDate, *sub.RentedToDate
	for i := range prior {
		p := &prior[i]
		if p.Name == sub.Name || p.DocStatus != domain.DocStatusSubmitted {
			continue
		}
		if p.Employee != sub.Employee || p.PayrollPeriod != sub.PayrollPeriod {
			continue
		}
		if p.RentedFromDate == nil || p.RentedToDate == nil {
			continue
		}
		if within(*p.RentedFromDate, from, to) || within(*p.RentedToDate, from, to) {
			return p
		}
	}
	return nil
}

func within(d, from, to time.Time) bool {
	return dateDiff(d, from) >= 0 && dateDiff(to, d) >= 0
}

// MonthFactor converts a rented date range into a number of months, rounded
// to the nearest half month.
func MonthFactor(from, to time.Time) float64 {
	months := float64(dateDiff(to, from)+1) / 30
	return math.Round(months*2) / 2
}

// CalculatePeriodExemption derives the monthly rent from the amount paid over
// the rented range and scales the monthly exemption back to that range.
// It returns nil when no payment amount is given. in.MonthlyHouseRent is
// replaced by the derived rent.
func CalculatePeriodExemption(sub *domain.ProofSubmission, prior []domain.ProofSubmission, in Input) (*PeriodExemption, error) {
	if sub.HouseRentPaymentAmount == 0 {
		return nil, nil
	}
	if err := ValidateRentDates(sub, prior); err != nil {
		return nil, err
	}

	factor := MonthFactor(*sub.RentedFromDate, *sub.RentedToDate)
	monthlyRent := sub.HouseRentPaymentAmount / factor
	in.MonthlyHouseRent = monthlyRent
	in.RentedInMetroCity = sub.RentedInMetroCity
	in.DocStatus = sub.DocStatus

	ex, err := AnnualEligibleExemption(in)
	if err != nil {
		return nil, err
	}
	out := &PeriodExemption{Exemption: ex, MonthlyHouseRent: monthlyRent}
	if ex.MonthlyExemption != 0 {
		out.TotalEligibleHRAExemption = ex.MonthlyExemption * factor
	}
	return out, nil
}
