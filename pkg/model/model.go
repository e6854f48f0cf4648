package model

import "fmt"

// Utility identifies a tenant-billable utility type. The set is closed.
type Utility string

const (
	UtilityWater    Utility = "WATER"
	UtilityElectric Utility = "ELECTRIC"
	UtilityGas      Utility = "GAS"
	UtilitySewer    Utility = "SEWER"
	UtilityGarbage  Utility = "GARBAGE"
)

// AllUtilities returns the full utility set, in declaration order.
func AllUtilities() []Utility {
	return []Utility{UtilityWater, UtilityElectric, UtilityGas, UtilitySewer, UtilityGarbage}
}

// HasUtility reports whether set contains u.
func HasUtility(set []Utility, u Utility) bool {
	for _, v := range set {
		if v == u {
			return true
		}
	}
	return false
}

// Property is the canonical record for one scraped rental listing. It is
// filled in field by field during extraction and read-only afterwards.
type Property struct {
	URL           string `json:"url,omitempty"`
	StreetAddress string `json:"streetAddress,omitempty"`
	City          string `json:"city,omitempty"`
	State         string `json:"state,omitempty"`

	Price       float64 `json:"price,omitempty"`
	AnnualTaxes float64 `json:"annualTaxes,omitempty"`
	TaxYear     string  `json:"taxYear,omitempty"`

	NumUnits  int     `json:"numUnits,omitempty"`
	TotalRent float64 `json:"totalRent,omitempty"`

	// UtilitiesPaidByUnit holds, per unit, the utilities that unit's tenant
	// covers. An empty set means the landlord pays everything for that unit.
	UtilitiesPaidByUnit [][]Utility `json:"utilitiesPaidByUnit,omitempty"`
}

// DisplayName renders the property as "street, city, state".
func (p Property) DisplayName() string {
	return fmt.Sprintf("%s, %s, %s", p.StreetAddress, p.City, p.State)
}

// AnalysisResult holds the twelve computed metrics for one property.
// All monthly figures are per month; CapRate, LoanConstant and COCR are
// annualized ratios.
type AnalysisResult struct {
	Property Property `json:"property"`

	LoanAmount               float64 `json:"loanAmount"`
	TotalCashNeeded          float64 `json:"totalCashNeeded"`
	GrossIncome              float64 `json:"grossIncome"`
	MonthlyPAndI             float64 `json:"monthlyPAndI"`
	MonthlyOperatingExpenses float64 `json:"monthlyOperatingExpenses"`
	NetOperatingIncome       float64 `json:"netOperatingIncome"`
	TotalCashFlow            float64 `json:"totalCashFlow"`
	CashFlowPerUnit          float64 `json:"cashFlowPerUnit"`
	CapRate                  float64 `json:"capRate"`
	LoanConstant             float64 `json:"loanConstant"`
	COCR                     float64 `json:"cocr"`
	DebtCoverage             float64 `json:"debtCoverage"`
}
