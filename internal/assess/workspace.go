package assess

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fulmenhq/iconcheck/internal/icons"
	"github.com/fulmenhq/iconcheck/pkg/config"
	"github.com/fulmenhq/iconcheck/pkg/devicedetector"
	"github.com/fulmenhq/iconcheck/pkg/manifest"
)

// Workspace is the read-only input of a run: the repository, its
// configuration and the manifests, loaded once and shared by all checks.
type Workspace struct {
	Root       string
	Config     config.Config
	Source     *icons.Tree
	Dist       *icons.Tree
	Classifier devicedetector.Classifier

	ignoreOnce sync.Once
	ignore     *manifest.IgnoreManifest
	ignoreErr  error

	catalogMu sync.Mutex
	catalogs  map[manifest.CatalogKind]*catalogLoad
}

type catalogLoad struct {
	catalog *manifest.Catalog
	err     error
}

// NewWorkspace prepares a workspace for the repository at root. The device
// classifier defaults to running the configured command; an empty command
// leaves it nil and disables that check.
func NewWorkspace(root string, cfg config.Config) *Workspace {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	ws := &Workspace{
		Root:     root,
		Config:   cfg,
		Source:   icons.NewTree(root, cfg.SourceDir),
		Dist:     icons.NewTree(root, cfg.DistDir),
		catalogs: make(map[manifest.CatalogKind]*catalogLoad),
	}
	if len(cfg.DeviceDetector.Command) > 0 {
		ws.Classifier = devicedetector.NewExecClassifier(root, cfg.DeviceDetector.Command...)
	}
	return ws
}

// Path resolves a configured path against the repository root
func (w *Workspace) Path(p string) string {
	return config.Resolve(w.Root, p)
}

// IgnoreManifest loads the ignore manifest on first use
func (w *Workspace) IgnoreManifest() (*manifest.IgnoreManifest, error) {
	w.ignoreOnce.Do(func() {
		w.ignore, w.ignoreErr = manifest.LoadIgnoreManifest(w.Path(w.Config.IgnoreManifest))
		if w.ignoreErr != nil {
			w.ignoreErr = fmt.Errorf("failed to load ignore manifest: %w", w.ignoreErr)
		}
	})
	return w.ignore, w.ignoreErr
}

// Catalog loads a remote catalog on first use
func (w *Workspace) Catalog(kind manifest.CatalogKind) (*manifest.Catalog, error) {
	w.catalogMu.Lock()
	defer w.catalogMu.Unlock()

	if l, ok := w.catalogs[kind]; ok {
		return l.catalog, l.err
	}

	var p string
	switch kind {
	case manifest.CatalogSearchEngines:
		p = w.Config.Catalogs.SearchEngines
	case manifest.CatalogSocials:
		p = w.Config.Catalogs.Socials
	default:
		return nil, fmt.Errorf("unknown catalog kind %q", kind)
	}

	c, err := manifest.LoadCatalog(w.Path(p), kind)
	if err != nil {
		err = fmt.Errorf("failed to load %s catalog: %w", kind, err)
	}
	w.catalogs[kind] = &catalogLoad{catalog: c, err: err}
	return c, err
}

// rel returns a repository-relative slash path for an on-disk path
func (w *Workspace) rel(p string) string {
	if r, err := filepath.Rel(w.Root, p); err == nil {
		return filepath.ToSlash(r)
	}
	return filepath.ToSlash(p)
}
