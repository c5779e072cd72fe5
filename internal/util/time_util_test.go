package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NextQuarterDate(t *testing.T) {
	t.Run("snaps to month end", func(t *testing.T) {
		next := NextQuarterDate(NewDate(2020, 3, 31))
		require.Equal(t, "2020-06-30", TimeToDateString(next))
	})

	t.Run("clamps day overflow before snapping", func(t *testing.T) {
		next := NextQuarterDate(NewDate(2019, 11, 30))
		require.Equal(t, "2020-02-29", TimeToDateString(next))
	})

	t.Run("crosses year boundary", func(t *testing.T) {
		next := NextQuarterDate(NewDate(2020, 12, 31))
		require.Equal(t, "2021-03-31", TimeToDateString(next))
	})
}

func Test_EndOfMonth(t *testing.T) {
	require.Equal(t, "2020-02-29", TimeToDateString(EndOfMonth(NewDate(2020, 2, 1))))
	require.Equal(t, "2021-02-28", TimeToDateString(EndOfMonth(NewDate(2021, 2, 15))))
	require.True(t, IsEndOfMonth(NewDate(2020, 4, 30)))
	require.False(t, IsEndOfMonth(NewDate(2020, 4, 29)))
}

func Test_SmallestAndLargestDate(t *testing.T) {
	dates := []string{"2021-03-31", "", "2019-12-31", "2020-06-30"}
	require.Equal(t, "2019-12-31", SmallestDate(dates))
	require.Equal(t, "2021-03-31", LargestDate(dates))
	require.Equal(t, "", SmallestDate(nil))
	require.Equal(t, "", LargestDate([]string{}))
}
