package entity

import "time"

// ISOLayout is the wire format for timestamps: UTC with millisecond precision.
const ISOLayout = "2006-01-02T15:04:05.000Z"

// NewsItem is a single normalized feed entry as shown on a news card.
// Title and Link are never empty; PublishedAt is empty when the feed carried no date.
type NewsItem struct {
	Title       string
	Link        string
	PublishedAt string
}

// SourceBlock is a source's public fields plus the items fetched for it.
type SourceBlock struct {
	ID      string
	Name    string
	Column  Column
	MoreURL string
	Items   []NewsItem
}

// NewSourceBlock builds the block for src. A nil items slice is stored as empty.
func NewSourceBlock(src Source, items []NewsItem) SourceBlock {
	if items == nil {
		items = []NewsItem{}
	}
	return SourceBlock{
		ID:      src.ID,
		Name:    src.Name,
		Column:  src.Column,
		MoreURL: src.MoreURL,
		Items:   items,
	}
}

// AggregateResponse is the assembled result of one aggregation pass.
type AggregateResponse struct {
	UpdatedAt time.Time
	Sources   []SourceBlock
}

// FilterColumn returns the blocks rendered in column c, keeping their order.
func (r AggregateResponse) FilterColumn(c Column) []SourceBlock {
	out := make([]SourceBlock, 0, len(r.Sources))
	for _, b := range r.Sources {
		if b.Column == c {
			out = append(out, b)
		}
	}
	return out
}
