package analysis

import (
	"fmt"
	"math"

	"github.com/propscan/propscan/pkg/model"
)

// DegenerateInputError reports a zero divisor that would otherwise turn the
// metric formulas into inf or NaN.
type DegenerateInputError struct {
	Divisor string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate analysis input: %s is zero", e.Divisor)
}

// Run computes the twelve financial metrics for a property under the given
// variables. It is deterministic, never mutates its inputs, and fails with
// a DegenerateInputError instead of propagating inf/NaN.
func Run(p model.Property, vars Variables) (model.AnalysisResult, error) {
	if p.NumUnits < 1 {
		return model.AnalysisResult{}, &DegenerateInputError{Divisor: "number of units"}
	}

	price := p.Price
	rent := p.TotalRent
	taxes := p.AnnualTaxes

	res := model.AnalysisResult{Property: p}

	res.LoanAmount = price * (1 - vars["down_payment"])
	res.TotalCashNeeded = vars["closing_costs"] + vars["renovation_budget"] +
		price*vars["down_payment"] +
		res.LoanAmount*vars["loan_points"]
	res.GrossIncome = rent + vars["other_income"]

	if res.LoanAmount == 0 {
		return model.AnalysisResult{}, &DegenerateInputError{Divisor: "loan amount"}
	}
	if res.TotalCashNeeded == 0 {
		return model.AnalysisResult{}, &DegenerateInputError{Divisor: "total cash needed"}
	}

	// Standard amortizing-loan monthly payment.
	monthlyRate := vars["interest_rate"] / 12
	res.MonthlyPAndI = (monthlyRate * res.LoanAmount) /
		(1 - math.Pow(1+monthlyRate, -12*vars["loan_years"]))
	if res.MonthlyPAndI == 0 || math.IsNaN(res.MonthlyPAndI) {
		return model.AnalysisResult{}, &DegenerateInputError{Divisor: "monthly principal and interest"}
	}

	res.MonthlyOperatingExpenses = (vars["electricity_expense"] + vars["gas_expense"] +
		vars["water_expense"] + vars["sewer_expense"] + vars["garbage_expense"] + vars["hoa_expense"]) +
		vars["insurance_expense"]/12 +
		taxes/12 +
		vars["other_expense"] +
		rent*(vars["vacancy"]+vars["repairs"]+vars["capex"]+vars["prop_mgmt"])

	res.NetOperatingIncome = res.GrossIncome - res.MonthlyOperatingExpenses
	res.TotalCashFlow = res.NetOperatingIncome - res.MonthlyPAndI
	res.CashFlowPerUnit = res.TotalCashFlow / float64(p.NumUnits)
	res.CapRate = res.NetOperatingIncome * 12 / res.LoanAmount
	res.LoanConstant = res.MonthlyPAndI * 12 / res.LoanAmount
	res.COCR = res.TotalCashFlow * 12 / res.TotalCashNeeded
	res.DebtCoverage = res.NetOperatingIncome / res.MonthlyPAndI

	return res, nil
}
