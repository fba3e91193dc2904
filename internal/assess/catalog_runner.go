package assess

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/fulmenhq/iconcheck/internal/icons"
	"github.com/fulmenhq/iconcheck/pkg/logger"
	"github.com/fulmenhq/iconcheck/pkg/manifest"
)

// defaultUnknownStem names the placeholder of a catalog directory when the
// ignore manifest defines none
const defaultUnknownStem = "xx"

// CatalogRunner checks that the icons of a remote catalog directory match
// the catalog one to one
type CatalogRunner struct {
	check    CheckName
	kind     manifest.CatalogKind
	category string
}

// NewSearchEnginesRunner checks src/searchEngines against the search engine catalog
func NewSearchEnginesRunner() *CatalogRunner {
	return &CatalogRunner{check: CheckSearchEngines, kind: manifest.CatalogSearchEngines, category: icons.CategorySearchEngines}
}

// NewSocialsRunner checks src/socials against the social site catalog
func NewSocialsRunner() *CatalogRunner {
	return &CatalogRunner{check: CheckSocials, kind: manifest.CatalogSocials, category: icons.CategorySocials}
}

// GetCheck returns the check name
func (r *CatalogRunner) GetCheck() CheckName { return r.check }

// Assess reports catalog domains without an icon, then icons no catalog
// entry refers to
func (r *CatalogRunner) Assess(ctx context.Context, ws *Workspace) (*AssessmentResult, error) {
	startTime := time.Now()

	m, err := ws.IgnoreManifest()
	if err != nil {
		return nil, err
	}
	catalog, err := ws.Catalog(r.kind)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	reported := make(map[string]struct{}, len(catalog.Entries))
	for _, entry := range catalog.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		domain, ok := entry.CanonicalDomain()
		if !ok {
			logger.Debug(fmt.Sprintf("%s: no canonical url for %s", r.kind, entry.Name))
			continue
		}
		if _, dup := reported[domain]; dup {
			continue
		}
		reported[domain] = struct{}{}

		if _, found := ws.Source.FindIcon(r.category, domain); !found {
			issues = append(issues, newIssue(r.check, SeverityError,
				path.Join(ws.Source.Dir(), r.category, domain),
				"icon for %s is missing", domain))
		}
	}

	unknown, ok := m.PlaceholderStem(r.category)
	if !ok {
		unknown = defaultUnknownStem
	}
	domains := catalog.Domains()
	existing, err := ws.Source.IconsIn(r.category)
	if err != nil {
		return nil, err
	}
	for _, a := range existing {
		if a.Slug == unknown {
			continue
		}
		if _, ok := domains[a.Slug]; ok {
			continue
		}
		issues = append(issues, newIssue(r.check, SeverityError, a.Path,
			"%s is unnecessary: no %s entry uses %s", a.Path, r.kind, a.Slug))
	}

	return &AssessmentResult{
		Check:         r.check,
		Success:       true,
		ExecutionTime: time.Since(startTime),
		Issues:        issues,
	}, nil
}

func init() {
	RegisterAssessmentRunner(CheckSearchEngines, NewSearchEnginesRunner())
	RegisterAssessmentRunner(CheckSocials, NewSocialsRunner())
}
