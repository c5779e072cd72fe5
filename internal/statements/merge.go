package statements

import (
	"stockval/internal/domain"
	"stockval/internal/util"
)

// statementPtr is the write side of a statement type, used by the merge
// and gap-fill engines to build new entries field by field.
type statementPtr[S any] interface {
	*S
	SetField(name string, value float64)
	SetProvenance(source domain.Source, estimate bool)
}

// quarterDates returns every quarter-end date from the earliest to the
// latest observed date, inclusive. Stepping adds three calendar months
// and snaps to month-end, so a series that starts off-quarter stays
// anchored to its own fiscal calendar.
func quarterDates(observed []string) []string {
	start := util.SmallestDate(observed)
	end := util.LargestDate(observed)
	if start == "" || end == "" {
		return nil
	}

	cursor, err := util.DateStringToTime(start)
	if err != nil {
		return nil
	}
	dates := []string{start}
	for util.TimeToDateString(cursor) < end {
		cursor = util.NextQuarterDate(cursor)
		dates = append(dates, util.TimeToDateString(cursor))
	}
	return dates
}

// mergeSeries combines the prior reconciled series with freshly fetched
// quarterly statements for every quarter date. The latest value wins per
// field when non-zero; the existing entry is consulted only when it is
// not itself an estimate, so extrapolations are discarded on every merge
// instead of compounding.
func mergeSeries[S domain.Statement, PS statementPtr[S]](
	dates []string,
	existing map[string]S,
	latestQuarterly map[string]S,
) map[string]S {
	merged := map[string]S{}
	for _, date := range dates {
		latest := latestQuarterly[date]

		var prior S
		if s, ok := existing[date]; ok && !s.IsEstimate() {
			prior = s
		}

		var out S
		p := PS(&out)
		for _, name := range out.FieldNames() {
			value := latest.Field(name)
			if value == 0 {
				value = prior.Field(name)
			}
			p.SetField(name, value)
		}

		estimate := latest.IsEstimate() || prior.IsEstimate()
		source := latest.SourceTag()
		if source == "" {
			source = prior.SourceTag()
		}
		p.SetProvenance(source, estimate)

		merged[date] = out
	}
	return merged
}
