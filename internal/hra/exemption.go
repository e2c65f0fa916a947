// Package hra computes the income-tax exemption an employee can claim on the
// House Rent Allowance paid by their employer.
package hra

import (
	"gstkit/internal/domain"
)

var frequencyMultiplier = map[domain.PayrollFrequency]float64{
	domain.PayrollDaily:       365,
	domain.PayrollWeekly:      52,
	domain.PayrollFortnightly: 26,
	domain.PayrollMonthly:     12,
	domain.PayrollBimonthly:   6,
}

// Exemption is the HRA exemption for a declaration.
type Exemption struct {
	HRAAmount        float64 `json:"hra_amount"`
	AnnualExemption  float64 `json:"annual_exemption"`
	MonthlyExemption float64 `json:"monthly_exemption"`
}

// AnnualComponentPay annualizes a per-period salary component amount.
func AnnualComponentPay(freq domain.PayrollFrequency, amount float64) (float64, error) {
	m, ok := frequencyMultiplier[freq]
	if !ok {
		return 0, domain.NewConfigurationError("Unsupported payroll frequency %q", string(freq))
	}
	return amount * m, nil
}

// CalculateExemption returns the smallest of the three statutory limits:
// the annualized HRA, the annual rent less 10% of annual basic, and 50% (metro)
// or 40% of annual basic. The result may be negative; callers clamp it.
func CalculateExemption(freq domain.PayrollFrequency, basic, hra, monthlyRent float64, metro bool) (float64, error) {
	annualHRA, err := AnnualComponentPay(freq, hra)
	if err != nil {
		return 0, err
	}
	annualBasic, err := AnnualComponentPay(freq, basic)
	if err != nil {
		return 0, err
	}

	rentLessBasic := monthlyRent*12 - annualBasic*0.1
	share := 0.4
	if metro {
		share = 0.5
	}
	return min(annualHRA, rentLessBasic, annualBasic*share), nil
}

// Input is everything AnnualEligibleExemption needs, loaded by the caller.
// Assignment is nil when the employee has no salary structure assigned.
// Earnings are the lines of a previewed salary slip for that structure.
type Input struct {
	Components        domain.PayrollComponents
	DocStatus         domain.DocStatus
	Assignment        *domain.SalaryAssignment
	HasHRAEarning     bool
	Earnings          []domain.SalaryComponentAmount
	MonthlyHouseRent  float64
	RentedInMetroCity bool
}

// AnnualEligibleExemption computes the exemption for a tax exemption
// declaration.
func AnnualEligibleExemption(in Input) (Exemption, error) {
	var out Exemption
	if in.Components.BasicComponent == "" || in.Components.HRAComponent == "" {
		return out, domain.NewConfigurationError("Please mention Basic and HRA component in Company")
	}
	if in.Assignment == nil {
		if in.DocStatus == domain.DocStatusSubmitted {
			return out, domain.NewValidationError("Salary Structure must be submitted before submission of Tax Exemption Declaration")
		}
		return out, nil
	}
	if !in.HasHRAEarning {
		return out, nil
	}

	basic, hra := ComponentAmounts(in.Earnings, in.Components)
	out.HRAAmount = hra
	if hra == 0 || in.MonthlyHouseRent == 0 {
		return out, nil
	}

	annual, err := CalculateExemption(in.Assignment.PayrollFrequency, basic, hra, in.MonthlyHouseRent, in.RentedInMetroCity)
	if err != nil {
		return out, err
	}
	if annual > 0 {
		out.AnnualExemption = annual
		out.MonthlyExemption = annual / 12
	}
	return out, nil
}

// ComponentAmounts picks the basic and HRA amounts from slip earnings. Later
// lines replace earlier ones until both amounts are non-zero.
func ComponentAmounts(earnings []domain.SalaryComponentAmount, c domain.PayrollComponents) (basic, hra float64) {
	for _, e := range earnings {
		switch e.Component {
		case c.BasicComponent:
			basic = e.Amount
		case c.HRAComponent:
			hra = e.Amount
		}
		if basic != 0 && hra != 0 {
			return basic, hra
		}
	}
	return basic, hra
}
