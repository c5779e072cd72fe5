package trend

import (
	"math"

	"github.com/montanaflynn/stats"

	"stockval/internal/util"
)

type Strategy string

const (
	StrategyGrowthRate Strategy = "growth-rate"
	StrategyRegression Strategy = "regression"
)

// Observation is a known point in a statement series. Index is the
// position of the statement date in the full quarter-date sequence, so
// gaps between observations are preserved.
type Observation struct {
	Index int
	Value float64
}

// GrowthRate computes the per-period compounding growth rate of a series.
// The sign of the endpoints is factored out before the root is taken so a
// negative-to-negative series does not produce NaN, then reapplied.
func GrowthRate(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}
	initial := values[0]
	final := values[n-1]
	if initial == 0 {
		return 0
	}
	sign := 1.0
	if initial < 0 || final < 0 {
		sign = -1.0
	}
	return sign * (math.Pow(math.Abs(final/initial), 1/float64(n)) - 1)
}

// Estimate projects a series value at targetIndex from known observations.
// Exactly one strategy applies per fill run.
func Estimate(observations []Observation, targetIndex int, strategy Strategy) float64 {
	if strategy == StrategyRegression {
		return regressionEstimate(observations, targetIndex)
	}
	return growthEstimate(observations, targetIndex)
}

func growthEstimate(observations []Observation, targetIndex int) float64 {
	if len(observations) == 0 {
		return 0
	}
	values := make([]float64, 0, len(observations))
	for _, o := range observations {
		values = append(values, o.Value)
	}
	g := GrowthRate(values)
	last := observations[len(observations)-1]
	gap := targetIndex - last.Index
	if gap <= 0 {
		gap = 1
	}
	return util.Round2(last.Value * math.Pow(1+g, float64(gap)))
}

func regressionEstimate(observations []Observation, targetIndex int) float64 {
	n := len(observations)
	if n < 2 {
		return 0
	}
	x := float64(targetIndex)

	if n == 2 {
		series := stats.Series{
			{X: float64(observations[0].Index), Y: observations[0].Value},
			{X: float64(observations[1].Index), Y: observations[1].Value},
		}
		fitted, err := stats.LinearRegression(series)
		if err != nil {
			return 0
		}
		dx := fitted[1].X - fitted[0].X
		if dx == 0 {
			return util.Round2(fitted[0].Y)
		}
		slope := (fitted[1].Y - fitted[0].Y) / dx
		return util.Round2(fitted[0].Y + slope*(x-fitted[0].X))
	}

	a, b, c := polyfit2(observations)
	return util.Round2(a*x*x + b*x + c)
}

// polyfit2 fits y = ax^2 + bx + c by solving the normal equations with
// Cramer's rule. Three or more observations are required.
func polyfit2(observations []Observation) (a, b, c float64) {
	var n, sx, sx2, sx3, sx4, sy, sxy, sx2y float64
	for _, o := range observations {
		x := float64(o.Index)
		y := o.Value
		n++
		sx += x
		sx2 += x * x
		sx3 += x * x * x
		sx4 += x * x * x * x
		sy += y
		sxy += x * y
		sx2y += x * x * y
	}

	det := func(m [3][3]float64) float64 {
		return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
			m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
			m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	}

	d := det([3][3]float64{
		{sx4, sx3, sx2},
		{sx3, sx2, sx},
		{sx2, sx, n},
	})
	if d == 0 {
		return 0, 0, 0
	}
	a = det([3][3]float64{
		{sx2y, sx3, sx2},
		{sxy, sx2, sx},
		{sy, sx, n},
	}) / d
	b = det([3][3]float64{
		{sx4, sx2y, sx2},
		{sx3, sxy, sx},
		{sx2, sy, n},
	}) / d
	c = det([3][3]float64{
		{sx4, sx3, sx2y},
		{sx3, sx2, sxy},
		{sx2, sx, sy},
	}) / d
	return a, b, c
}
