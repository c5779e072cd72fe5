package valuation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stockval/internal/util"
)

func Test_Equity(t *testing.T) {
	require.Equal(t, 11084000000.00, Equity(23133000000, 12049000000))
}

func Test_Roe(t *testing.T) {
	require.Equal(t, 0.12, util.Round2(Roe(1294000000, 11084000000)))
	require.Equal(t, 0.0, Roe(1294000000, 0))
}

func Test_MarketCap(t *testing.T) {
	require.InDelta(t, 8592123600.00, MarketCap(109944000, 78.15), 1e-3)
}

func Test_Peg(t *testing.T) {
	require.Equal(t, 2.0, Peg(20, 0.1))
	require.Equal(t, 0.0, Peg(20, 0))

	// both negative would cancel out and look positive
	require.Equal(t, -2.0, Peg(-20, -0.1))
}

func Test_Npv(t *testing.T) {
	require.Equal(t, 100.0, Npv(100, 0.07, 0))
	require.InDelta(t, 100.0, Npv(107, 0.07, 1), 1e-9)
}

func Test_AltmanZScore(t *testing.T) {
	t.Run("known company", func(t *testing.T) {
		score := AltmanZScore(23133000000, 12049000000, 9315000000, 2295000000, 24799000000)
		require.Equal(t, 3.09, util.Round2(score))
		require.Equal(t, "HEALTHY", healthCategory(util.Round2(score)))
	})

	t.Run("zero liabilities or revenue", func(t *testing.T) {
		require.Equal(t, 0.0, AltmanZScore(100, 0, 10, 10, 100))
		require.Equal(t, 0.0, AltmanZScore(100, 50, 10, 10, 0))
	})
}

func Test_GrahamIv(t *testing.T) {
	require.InDelta(t, 21.371428, GrahamIv(2, 0.1, 0.07), 1e-5)

	// negative eps and growth must not produce a positive value
	require.InDelta(t, -3.771428, GrahamIv(-2, -0.1, 0.07), 1e-5)
}

func Test_PeMultipleIv(t *testing.T) {
	require.InDelta(t, 10.0, PeMultipleIv(1, 10, 0, 0), 1e-9)
}

func Test_DcfIv(t *testing.T) {
	// zero rates: ten undiscounted years plus a 12x terminal multiple
	require.InDelta(t, 210.0, DcfIv(100, 50, 150, 10, 0, 0, 0), 1e-9)
	require.Equal(t, 0.0, DcfIv(100, 50, 150, 0, 0, 0, 0))
}

func Test_RoeIv(t *testing.T) {
	got := RoeIv(1000, 0.1, 10, 0, 0, 0.1)
	require.InDelta(t, 38.554, got, 1e-3)
}

func Test_LiquidationIv(t *testing.T) {
	require.Equal(t, 25.0, LiquidationIv(100, 4))
	require.Equal(t, 0.0, LiquidationIv(100, 0))
}
