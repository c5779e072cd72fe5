package domain

// Statement dates are ISO "2006-01-02" strings used directly as map keys.
// Lexicographic order on these keys equals chronological order, which the
// merge and snapshot code relies on.

type Source string

const (
	SourceActual        Source = "actual"
	SourceYearlyDerived Source = "yearly-derived"
	SourceInterpolated  Source = "interpolated"
	SourceTrend         Source = "trend"
)

// field name constants shared by the merge/gap-fill engines and tests
const (
	FieldTotalRevenue    = "totalRevenue"
	FieldNetIncome       = "netIncome"
	FieldIncomeBeforeTax = "incomeBeforeTax"
	FieldInterestIncome  = "interestIncome"
	FieldInterestExpense = "interestExpense"

	FieldAssets             = "assets"
	FieldCurrentAssets      = "currentAssets"
	FieldLiabilities        = "liabilities"
	FieldCurrentLiabilities = "currentLiabilities"
	FieldRetainedEarnings   = "retainedEarnings"
	FieldCash               = "cash"

	FieldDividendsPaid      = "dividendsPaid"
	FieldCashFromOperations = "cashFromOperations"
	FieldCapex              = "capex"
)

var (
	incomeStatementFields = []string{
		FieldTotalRevenue,
		FieldNetIncome,
		FieldIncomeBeforeTax,
		FieldInterestIncome,
		FieldInterestExpense,
	}
	balanceSheetFields = []string{
		FieldAssets,
		FieldCurrentAssets,
		FieldLiabilities,
		FieldCurrentLiabilities,
		FieldRetainedEarnings,
		FieldCash,
	}
	cashFlowStatementFields = []string{
		FieldDividendsPaid,
		FieldCashFromOperations,
		FieldCapex,
	}
)

type IncomeStatement struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	NetIncome       float64 `json:"netIncome"`
	IncomeBeforeTax float64 `json:"incomeBeforeTax"`
	InterestIncome  float64 `json:"interestIncome"`
	InterestExpense float64 `json:"interestExpense"`
	Estimate        bool    `json:"estimate"`
	Source          Source  `json:"source"`
}

func (s IncomeStatement) FieldNames() []string { return incomeStatementFields }

func (s IncomeStatement) Field(name string) float64 {
	switch name {
	case FieldTotalRevenue:
		return s.TotalRevenue
	case FieldNetIncome:
		return s.NetIncome
	case FieldIncomeBeforeTax:
		return s.IncomeBeforeTax
	case FieldInterestIncome:
		return s.InterestIncome
	case FieldInterestExpense:
		return s.InterestExpense
	}
	return 0
}

func (s *IncomeStatement) SetField(name string, value float64) {
	switch name {
	case FieldTotalRevenue:
		s.TotalRevenue = value
	case FieldNetIncome:
		s.NetIncome = value
	case FieldIncomeBeforeTax:
		s.IncomeBeforeTax = value
	case FieldInterestIncome:
		s.InterestIncome = value
	case FieldInterestExpense:
		s.InterestExpense = value
	}
}

func (s IncomeStatement) IsEstimate() bool   { return s.Estimate }
func (s IncomeStatement) SourceTag() Source  { return s.Source }
func (s IncomeStatement) IsZero() bool       { return allFieldsZero(s) }
func (s *IncomeStatement) SetProvenance(source Source, estimate bool) {
	s.Source = source
	s.Estimate = estimate
}

type BalanceSheet struct {
	Assets             float64 `json:"assets"`
	CurrentAssets      float64 `json:"currentAssets"`
	Liabilities        float64 `json:"liabilities"`
	CurrentLiabilities float64 `json:"currentLiabilities"`
	RetainedEarnings   float64 `json:"retainedEarnings"`
	Cash               float64 `json:"cash"`
	Estimate           bool    `json:"estimate"`
	Source             Source  `json:"source"`
}

func (s BalanceSheet) FieldNames() []string { return balanceSheetFields }

func (s BalanceSheet) Field(name string) float64 {
	switch name {
	case FieldAssets:
		return s.Assets
	case FieldCurrentAssets:
		return s.CurrentAssets
	case FieldLiabilities:
		return s.Liabilities
	case FieldCurrentLiabilities:
		return s.CurrentLiabilities
	case FieldRetainedEarnings:
		return s.RetainedEarnings
	case FieldCash:
		return s.Cash
	}
	return 0
}

func (s *BalanceSheet) SetField(name string, value float64) {
	switch name {
	case FieldAssets:
		s.Assets = value
	case FieldCurrentAssets:
		s.CurrentAssets = value
	case FieldLiabilities:
		s.Liabilities = value
	case FieldCurrentLiabilities:
		s.CurrentLiabilities = value
	case FieldRetainedEarnings:
		s.RetainedEarnings = value
	case FieldCash:
		s.Cash = value
	}
}

func (s BalanceSheet) IsEstimate() bool  { return s.Estimate }
func (s BalanceSheet) SourceTag() Source { return s.Source }
func (s BalanceSheet) IsZero() bool      { return allFieldsZero(s) }
func (s *BalanceSheet) SetProvenance(source Source, estimate bool) {
	s.Source = source
	s.Estimate = estimate
}

type CashFlowStatement struct {
	DividendsPaid      float64 `json:"dividendsPaid"`
	CashFromOperations float64 `json:"cashFromOperations"`
	Capex              float64 `json:"capex"`
	Estimate           bool    `json:"estimate"`
	Source             Source  `json:"source"`
}

func (s CashFlowStatement) FieldNames() []string { return cashFlowStatementFields }

func (s CashFlowStatement) Field(name string) float64 {
	switch name {
	case FieldDividendsPaid:
		return s.DividendsPaid
	case FieldCashFromOperations:
		return s.CashFromOperations
	case FieldCapex:
		return s.Capex
	}
	return 0
}

func (s *CashFlowStatement) SetField(name string, value float64) {
	switch name {
	case FieldDividendsPaid:
		s.DividendsPaid = value
	case FieldCashFromOperations:
		s.CashFromOperations = value
	case FieldCapex:
		s.Capex = value
	}
}

func (s CashFlowStatement) IsEstimate() bool  { return s.Estimate }
func (s CashFlowStatement) SourceTag() Source { return s.Source }
func (s CashFlowStatement) IsZero() bool      { return allFieldsZero(s) }
func (s *CashFlowStatement) SetProvenance(source Source, estimate bool) {
	s.Source = source
	s.Estimate = estimate
}

// Statement is the read side shared by all three statement types. The
// merge and gap-fill engines only ever touch statements through the named
// field list, so a statement with every financial field at zero is the
// canonical empty sentinel regardless of its provenance tags.
type Statement interface {
	FieldNames() []string
	Field(name string) float64
	IsEstimate() bool
	SourceTag() Source
	IsZero() bool
}

func allFieldsZero(s Statement) bool {
	for _, name := range s.FieldNames() {
		if s.Field(name) != 0 {
			return false
		}
	}
	return true
}

// FinancialStatements is a fully reconciled quarterly series, keyed by
// quarter-end date. Insertion order is irrelevant; readers sort the keys.
type FinancialStatements struct {
	IncomeStatements   map[string]IncomeStatement   `json:"incomeStatements"`
	BalanceSheets      map[string]BalanceSheet      `json:"balanceSheets"`
	CashFlowStatements map[string]CashFlowStatement `json:"cashFlowStatements"`
}

func NewFinancialStatements() FinancialStatements {
	return FinancialStatements{
		IncomeStatements:   map[string]IncomeStatement{},
		BalanceSheets:      map[string]BalanceSheet{},
		CashFlowStatements: map[string]CashFlowStatement{},
	}
}

// DualCadenceStatements is the shape of freshly fetched provider data,
// before reconciliation: each statement type split into raw quarterly and
// yearly maps.
type DualCadenceStatements struct {
	IncomeStatements   DualCadence[IncomeStatement]   `json:"incomeStatements"`
	BalanceSheets      DualCadence[BalanceSheet]      `json:"balanceSheets"`
	CashFlowStatements DualCadence[CashFlowStatement] `json:"cashFlowStatements"`
}

type DualCadence[S Statement] struct {
	Quarterly map[string]S `json:"quarterly"`
	Yearly    map[string]S `json:"yearly"`
}
