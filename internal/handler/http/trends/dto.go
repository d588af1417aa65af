// Package trends provides the HTTP handler for the trending-keywords sidebar.
package trends

import (
	"intl-news-desk/internal/domain/entity"

	"github.com/samber/lo"
)

// EntryDTO is one ranked keyword.
type EntryDTO struct {
	Rank    int    `json:"rank"`
	Keyword string `json:"keyword"`
	Link    string `json:"link"`
}

// ResponseDTO is the /api/trends envelope.
type ResponseDTO struct {
	UpdatedAt string     `json:"updatedAt"`
	Trends    []EntryDTO `json:"trends"`
}

func toResponseDTO(resp entity.TrendsResponse) ResponseDTO {
	entries := lo.Map(resp.Trends, func(e entity.TrendEntry, _ int) EntryDTO {
		return EntryDTO{Rank: e.Rank, Keyword: e.Keyword, Link: e.Link}
	})
	return ResponseDTO{
		UpdatedAt: resp.UpdatedAt.UTC().Format(entity.ISOLayout),
		Trends:    entries,
	}
}
