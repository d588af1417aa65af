package entity

import "time"

// TrendEntry is one trending search keyword. Rank is 1-based and reflects the
// position in the truncated list, not any upstream ranking.
type TrendEntry struct {
	Rank    int
	Keyword string
	Link    string
}

// TrendsResponse is the trends sidebar payload.
type TrendsResponse struct {
	UpdatedAt time.Time
	Trends    []TrendEntry
}
