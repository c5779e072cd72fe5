package statements

import (
	"sort"

	"stockval/internal/domain"
	"stockval/internal/trend"
	"stockval/internal/util"
)

// fillRules vary per statement type. Flow quantities (income, cash flow)
// quarter a yearly value by dividing by 4; point-in-time balance-sheet
// quantities carry over undivided. Only income fields are trended past
// the last known statement; balance-sheet and cash-flow fields are never
// conjured from nothing.
type fillRules struct {
	divideYearly bool
	trendForward bool
}

// fillSeries completes a merged quarterly series over the full quarter
// date range. Pass one settles actual and yearly-derived entries; pass
// two interpolates or trends the rest, using only pass-one entries as
// anchors so estimates never feed later estimates.
func fillSeries[S domain.Statement, PS statementPtr[S]](
	dates []string,
	merged map[string]S,
	latestYearly map[string]S,
	valid func(S) bool,
	rules fillRules,
	strategy trend.Strategy,
) map[string]S {
	filled := map[string]S{}
	anchors := map[int]S{}

	for i, date := range dates {
		if s, ok := merged[date]; ok && !s.IsZero() && valid(s) {
			out := s
			p := PS(&out)
			p.SetProvenance(domain.SourceActual, false)
			filled[date] = out
			anchors[i] = out
			continue
		}

		if y, ok := latestYearly[date]; ok && !y.IsZero() && valid(y) {
			var out S
			p := PS(&out)
			for _, name := range out.FieldNames() {
				value := y.Field(name)
				if rules.divideYearly {
					value = util.Round2(value / 4)
				}
				p.SetField(name, value)
			}
			p.SetProvenance(domain.SourceYearlyDerived, false)
			filled[date] = out
			anchors[i] = out
		}
	}

	for i, date := range dates {
		if _, ok := filled[date]; ok {
			continue
		}

		prevIdx, hasPrev := previousAnchor(anchors, i)
		nextIdx, hasNext := nextAnchor(anchors, i, len(dates))

		var out S
		p := PS(&out)
		switch {
		case hasPrev && hasNext:
			prev := anchors[prevIdx]
			next := anchors[nextIdx]
			ratio := float64(i-prevIdx) / float64(nextIdx-prevIdx)
			for _, name := range out.FieldNames() {
				pv := prev.Field(name)
				nv := next.Field(name)
				p.SetField(name, util.Round2(pv+(nv-pv)*ratio))
			}
			p.SetProvenance(domain.SourceInterpolated, true)
		case hasPrev && rules.trendForward:
			for _, name := range out.FieldNames() {
				p.SetField(name, trend.Estimate(fieldObservations(anchors, name, i), i, strategy))
			}
			p.SetProvenance(domain.SourceTrend, true)
		default:
			p.SetProvenance(domain.SourceTrend, true)
		}
		filled[date] = out
	}

	return filled
}

func previousAnchor[S any](anchors map[int]S, from int) (int, bool) {
	for i := from - 1; i >= 0; i-- {
		if _, ok := anchors[i]; ok {
			return i, true
		}
	}
	return 0, false
}

func nextAnchor[S any](anchors map[int]S, from, total int) (int, bool) {
	for i := from + 1; i < total; i++ {
		if _, ok := anchors[i]; ok {
			return i, true
		}
	}
	return 0, false
}

func fieldObservations[S domain.Statement](anchors map[int]S, name string, before int) []trend.Observation {
	indices := make([]int, 0, len(anchors))
	for i := range anchors {
		if i < before {
			indices = append(indices, i)
		}
	}
	sort.Ints(indices)

	observations := make([]trend.Observation, 0, len(indices))
	for _, i := range indices {
		observations = append(observations, trend.Observation{Index: i, Value: anchors[i].Field(name)})
	}
	return observations
}
