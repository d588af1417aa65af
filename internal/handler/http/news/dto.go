// Package news provides HTTP handlers for the aggregated news columns:
// the JSON aggregate and its RSS re-export.
package news

import (
	"intl-news-desk/internal/domain/entity"

	"github.com/samber/lo"
)

// ItemDTO is one news card.
type ItemDTO struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	PublishedAt string `json:"publishedAt,omitempty"`
}

// SourceDTO is one source block with its items.
type SourceDTO struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Column  string    `json:"column"`
	MoreURL string    `json:"moreUrl"`
	Items   []ItemDTO `json:"items"`
}

// AggregateDTO is the /api/aggregate envelope.
type AggregateDTO struct {
	UpdatedAt string      `json:"updatedAt"`
	Sources   []SourceDTO `json:"sources"`
}

func toAggregateDTO(resp entity.AggregateResponse) AggregateDTO {
	return AggregateDTO{
		UpdatedAt: resp.UpdatedAt.UTC().Format(entity.ISOLayout),
		Sources:   lo.Map(resp.Sources, func(b entity.SourceBlock, _ int) SourceDTO { return toSourceDTO(b) }),
	}
}

func toSourceDTO(b entity.SourceBlock) SourceDTO {
	return SourceDTO{
		ID:      b.ID,
		Name:    b.Name,
		Column:  string(b.Column),
		MoreURL: b.MoreURL,
		Items: lo.Map(b.Items, func(it entity.NewsItem, _ int) ItemDTO {
			return ItemDTO{Title: it.Title, Link: it.Link, PublishedAt: it.PublishedAt}
		}),
	}
}
