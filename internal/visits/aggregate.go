package visits

import (
	"sort"
	"time"
)

// DefaultTopN is how many procedures the ranking chart shows.
const DefaultTopN = 10

// DailyTotal is one point of the attendance trend chart.
// Date uses the 2006-01-02 form so the series sorts and renders directly.
type DailyTotal struct {
	Date  string `json:"date"`
	Total int64  `json:"total"`
}

// GroupTotal is an aggregated quantity for one procedure or client.
type GroupTotal struct {
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// Summary holds the KPI numbers for the filtered view.
type Summary struct {
	TotalQuantity int64 `json:"total_quantity"`
	RecordCount   int   `json:"record_count"`
}

// Summarize computes the KPI numbers over view.
func Summarize(view []VisitRecord) Summary {
	var total int64
	for _, r := range view {
		total += int64(r.Quantity)
	}
	return Summary{TotalQuantity: total, RecordCount: len(view)}
}

// TimeSeries groups view by exact date and sums quantities, ordered by date
// ascending.
func TimeSeries(view []VisitRecord) []DailyTotal {
	totals := make(map[time.Time]int64)
	for _, r := range view {
		totals[r.Date] += int64(r.Quantity)
	}

	dates := make([]time.Time, 0, len(totals))
	for d := range totals {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := make([]DailyTotal, len(dates))
	for i, d := range dates {
		out[i] = DailyTotal{Date: d.Format("2006-01-02"), Total: totals[d]}
	}
	return out
}

// TopProcedures groups view by procedure, sums quantities and keeps the n
// largest groups. Ties break on procedure name ascending so the ranking is
// deterministic. The result is ordered ascending by total, which puts the
// largest group at the top of a horizontal bar chart.
func TopProcedures(view []VisitRecord, n int) []GroupTotal {
	groups := groupTotals(view, func(r VisitRecord) string { return r.Procedure })

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Total != groups[j].Total {
			return groups[i].Total > groups[j].Total
		}
		return groups[i].Label < groups[j].Label
	})
	if n > 0 && len(groups) > n {
		groups = groups[:n]
	}

	// Reverse into ascending-by-total presentation order.
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return groups
}

// ClientDistribution groups view by client and sums quantities. The full set
// of clients is returned, name ascending; per-client totals add up exactly to
// the summary's total quantity.
func ClientDistribution(view []VisitRecord) []GroupTotal {
	groups := groupTotals(view, func(r VisitRecord) string { return r.Client })
	sort.Slice(groups, func(i, j int) bool { return groups[i].Label < groups[j].Label })
	return groups
}

func groupTotals(view []VisitRecord, key func(VisitRecord) string) []GroupTotal {
	totals := make(map[string]int64)
	for _, r := range view {
		totals[key(r)] += int64(r.Quantity)
	}

	out := make([]GroupTotal, 0, len(totals))
	for label, total := range totals {
		out = append(out, GroupTotal{Label: label, Total: total})
	}
	return out
}
