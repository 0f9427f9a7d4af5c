package search

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amishk599/leadbrief/internal/model"
)

var _ model.SearchProvider = (*FileProvider)(nil)

// FileProvider serves candidates from a YAML file keyed by query:
//
//	"HealthTech product manager":
//	  - company: Acme Health
//	    industry: HealthTech
//	    job_link: https://example.com/jobs/1
//
// The file is read on every Search so edits apply on the next run.
type FileProvider struct {
	path string
}

// NewFileProvider returns a provider reading candidates from path.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// Search returns the candidates listed under query, or nil if it has none.
func (p *FileProvider) Search(ctx context.Context, query string) ([]model.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("search %q: read %s: %w", query, p.path, err)
	}

	var byQuery map[string][]model.Candidate
	if err := yaml.Unmarshal(data, &byQuery); err != nil {
		return nil, fmt.Errorf("search %q: parse %s: %w", query, p.path, err)
	}

	return byQuery[query], nil
}
