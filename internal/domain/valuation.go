package domain

const (
	InstructionBuy  = "BUY"
	InstructionHold = "HOLD"
	InstructionSell = "SELL"

	HealthDying   = "DYING"
	HealthAverage = "AVERAGE"
	HealthHealthy = "HEALTHY"
)

// Valuation is derived data, recomputed on every run and never trusted as
// a source of truth. All ratios are stored rounded to 2 decimal places;
// the viability gate compares the rounded values.
type Valuation struct {
	DividendYield     float64 `json:"dividendYield"`
	MarketCap         float64 `json:"marketCap"`
	Roe               float64 `json:"roe"`
	Roa               float64 `json:"roa"`
	GrowthRate        float64 `json:"growthRate"`
	PriceGrowthRate   float64 `json:"priceGrowthRate"`
	Dte               float64 `json:"dte"`
	Cr                float64 `json:"cr"`
	Eps               float64 `json:"eps"`
	Pe                float64 `json:"pe"`
	Peg               float64 `json:"peg"`
	Pb                float64 `json:"pb"`
	BlendedMultiplier float64 `json:"blendedMultiplier"`
	Fcf               float64 `json:"fcf"`
	LiquidationIv     float64 `json:"liquidationIv"`
	PeMultipleIv      float64 `json:"peMultipleIv"`
	GrahamIv          float64 `json:"grahamIv"`
	DcfIv             float64 `json:"dcfIv"`
	RoeIv             float64 `json:"roeIv"`
	AltmanZScore      float64 `json:"altmanZScore"`
	StatementYears    int     `json:"statementYears"`
	FairValue         float64 `json:"fairValue"`
	ExpectedReturn    float64 `json:"expectedReturn"`
	Mos               float64 `json:"mos"`
	HealthCategory    string  `json:"healthCategory"`
	Instruction       string  `json:"instruction"`
}

// ValuationModel is a named bundle of valuation thresholds. Several models
// may be evaluated against the same company, so every function that needs
// one takes it as an argument rather than reading ambient config.
type ValuationModel struct {
	Name                  string  `json:"name"`
	DiscountRate          float64 `json:"discountRate"`
	DeclineRate           float64 `json:"declineRate"`
	TaxRate               float64 `json:"taxRate"`
	MinMos                float64 `json:"minMos"`
	TopUp                 float64 `json:"topUp"`
	BuyLimit              float64 `json:"buyLimit"`
	StartDate             string  `json:"startDate"`
	MinRoe                float64 `json:"minRoe"`
	MinRoa                float64 `json:"minRoa"`
	MinGrowthRate         float64 `json:"minGrowthRate"`
	MaxDte                float64 `json:"maxDte"`
	MinCr                 float64 `json:"minCr"`
	MinEps                float64 `json:"minEps"`
	MaxPe                 float64 `json:"maxPe"`
	MaxPeg                float64 `json:"maxPeg"`
	MaxPb                 float64 `json:"maxPb"`
	MinAltmanZScore       float64 `json:"minAltmanZScore"`
	MinStatementYears     int     `json:"minStatementYears"`
	MaxBlendedMultiplier  float64 `json:"maxBlendedMultiplier"`
	YearsForEarningsCalcs int     `json:"yearsForEarningsCalcs"`
	// RequireRetainedEarnings tightens the statement validity predicate
	// for both gap-filling and the valuation precondition.
	RequireRetainedEarnings bool `json:"requireRetainedEarnings"`
}

// DefaultValuationModel returns the baseline model. The discount rate is
// the long-run exchange growth rate, the decline rate tracks inflation.
func DefaultValuationModel() ValuationModel {
	return ValuationModel{
		Name:                  "default",
		DiscountRate:          0.07,
		DeclineRate:           0.056,
		TaxRate:               0.18,
		MinMos:                0.25,
		TopUp:                 1000.00,
		BuyLimit:              1000.00,
		MinRoe:                0.15,
		MinRoa:                0.02,
		MinGrowthRate:         0.03,
		MaxDte:                0.5,
		MinCr:                 2.0,
		MinEps:                0.00,
		MaxPe:                 25.0,
		MaxPeg:                1.0,
		MaxPb:                 1.0,
		MinAltmanZScore:       3.0,
		MinStatementYears:     3,
		MaxBlendedMultiplier:  22.5,
		YearsForEarningsCalcs: 3,
	}
}
