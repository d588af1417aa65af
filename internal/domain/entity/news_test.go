package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSourceBlock(t *testing.T) {
	src := Source{ID: "tvbs", Name: "TVBS", Column: ColumnMiddle, FeedURL: "https://a/rss", MoreURL: "https://a/world"}

	block := NewSourceBlock(src, nil)

	assert.Equal(t, "tvbs", block.ID)
	assert.Equal(t, "TVBS", block.Name)
	assert.Equal(t, ColumnMiddle, block.Column)
	assert.Equal(t, "https://a/world", block.MoreURL)
	assert.NotNil(t, block.Items)
	assert.Empty(t, block.Items)
}

func TestAggregateResponse_FilterColumn(t *testing.T) {
	resp := AggregateResponse{Sources: []SourceBlock{
		{ID: "cna", Column: ColumnLeft},
		{ID: "udn", Column: ColumnMiddle},
		{ID: "ltn", Column: ColumnLeft},
	}}

	left := resp.FilterColumn(ColumnLeft)

	if assert.Len(t, left, 2) {
		assert.Equal(t, "cna", left[0].ID)
		assert.Equal(t, "ltn", left[1].ID)
	}
	assert.Len(t, resp.FilterColumn(ColumnMiddle), 1)
}
