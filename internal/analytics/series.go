// internal/analytics/series.go
package analytics

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const dayLayout = "2006-01-02"

// seriesStart is midnight UTC of the calendar day `days` days before now.
func seriesStart(now time.Time, days int) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
}

// fillDays returns one entry per UTC day from start through start+days,
// so the series always has days+1 entries. Days without a count are zero.
func fillDays(start time.Time, days int, counts map[string]int64) []DayCount {
	series := make([]DayCount, 0, days+1)
	for i := 0; i <= days; i++ {
		day := start.AddDate(0, 0, i).Format(dayLayout)
		series = append(series, DayCount{Day: day, CommitCount: counts[day]})
	}
	return series
}

func dayKey(d pgtype.Date) string {
	return d.Time.Format(dayLayout)
}
