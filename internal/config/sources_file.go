package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"intl-news-desk/internal/domain/entity"

	"gopkg.in/yaml.v3"
)

// sourceSpec is one registry entry as written in a sources file. Either FeedURL
// or Query must be set; Query builds a Google News search feed limited to When.
type sourceSpec struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Column  string `yaml:"column"`
	FeedURL string `yaml:"feedUrl"`
	Query   string `yaml:"query"`
	When    string `yaml:"when"`
	MoreURL string `yaml:"moreUrl"`
}

type sourcesFile struct {
	Sources []sourceSpec `yaml:"sources"`
}

// LoadSourcesFile reads a YAML source registry from path.
// The path comes from the operator's environment, not from request input.
func LoadSourcesFile(path string) ([]entity.Source, error) {
	// #nosec G304 -- path is provided by the operator via SOURCES_FILE
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sources file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseSources(f)
}

// ParseSources decodes a YAML source registry and validates it.
//
// Example:
//
//	sources:
//	  - id: cna
//	    name: 中央社
//	    column: left
//	    feedUrl: https://feeds.feedburner.com/rsscna/intworld
//	    moreUrl: https://www.cna.com.tw/list/aopl.aspx
//	  - id: tvbs
//	    name: TVBS
//	    column: middle
//	    query: "site:news.tvbs.com.tw inurl:/world/"
//	    when: 1d
//	    moreUrl: https://news.tvbs.com.tw/world
func ParseSources(r io.Reader) ([]entity.Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources: %w", err)
	}

	var file sourcesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse sources: %w", err)
	}

	sources := make([]entity.Source, 0, len(file.Sources))
	for i, spec := range file.Sources {
		src, err := spec.toSource()
		if err != nil {
			return nil, fmt.Errorf("sources[%d]: %w", i, err)
		}
		sources = append(sources, src)
	}

	if err := entity.ValidateSources(sources); err != nil {
		return nil, err
	}
	return sources, nil
}

func (s sourceSpec) toSource() (entity.Source, error) {
	column, err := entity.ParseColumn(s.Column)
	if err != nil {
		return entity.Source{}, err
	}

	feedURL := s.FeedURL
	switch {
	case feedURL != "" && s.Query != "":
		return entity.Source{}, &entity.ValidationError{Field: "feedUrl", Message: "feedUrl and query are mutually exclusive"}
	case feedURL == "" && s.Query != "":
		feedURL = GoogleNewsRSSRecent(s.Query, s.When)
	}

	return entity.Source{
		ID:      s.ID,
		Name:    s.Name,
		Column:  column,
		FeedURL: feedURL,
		MoreURL: s.MoreURL,
	}, nil
}
