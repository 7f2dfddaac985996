package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"i18n-sync/core/reconcile"
	"i18n-sync/core/translation"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// ErrNoIncludePatterns is returned by Load when nothing could be selected.
var ErrNoIncludePatterns = errors.New("no include patterns configured")

// Workspace is a directory of translation files.
type Workspace struct {
	root    string
	include []string
	exclude []string
	logger  *zap.Logger
}

var (
	_ reconcile.Workspace   = (*Workspace)(nil)
	_ reconcile.Snapshotter = (*Workspace)(nil)
	_ reconcile.Resetter    = (*Workspace)(nil)
)

// New creates a workspace rooted at root.
func New(root string, include, exclude []string, l *zap.Logger) *Workspace {
	if l == nil {
		l = zap.NewNop()
	}
	if root == "" {
		root = "."
	}
	return &Workspace{root: root, include: include, exclude: exclude, logger: l}
}

// Root returns the base directory.
func (w *Workspace) Root() string {
	return w.root
}

// Load reads every selected file. Unreadable or invalid files are skipped
// with a warning; if two files map to the same language the first one wins.
func (w *Workspace) Load(ctx context.Context) ([]*translation.Set, error) {
	if len(w.include) == 0 {
		return nil, ErrNoIncludePatterns
	}
	for _, pattern := range w.exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	if _, err := os.Stat(w.root); err != nil {
		return nil, fmt.Errorf("reading base path: %w", err)
	}

	w.logger.Info("Reading translations", zap.String("base_path", w.root))

	paths, err := w.match()
	if err != nil {
		return nil, err
	}

	var sets []*translation.Set
	languages := make(map[string]string)
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		l := w.logger.With(zap.String("path", rel))
		tree, err := w.ReadTree(rel)
		if err != nil {
			l.Warn("Failed to read translation file", zap.Error(err))
			continue
		}
		if !tree.IsObject() {
			l.Warn("Skipping translation file without a top-level object")
			continue
		}

		lang := translation.LanguageFromPath(rel)
		if _, err := language.Parse(lang); err != nil {
			l.Warn("File name is not a language tag", zap.String("language", lang))
		}
		if first, dup := languages[lang]; dup {
			l.Warn("Skipping duplicate language file", zap.String("language", lang), zap.String("kept", first))
			continue
		}
		languages[lang] = rel

		sets = append(sets, translation.NewSet(lang, rel, tree))
	}

	w.logger.Info("Loaded local translations", zap.Int("files", len(sets)))
	return sets, nil
}

// match returns the selected relative paths in sorted order.
func (w *Workspace) match() ([]string, error) {
	fsys := os.DirFS(w.root)
	seen := make(map[string]struct{})

	for _, pattern := range w.include {
		w.logger.Debug("Searching for pattern", zap.String("pattern", pattern))
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if w.excluded(m) {
				continue
			}
			seen[m] = struct{}{}
		}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (w *Workspace) excluded(rel string) bool {
	for _, pattern := range w.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// ReadTree parses one file. A missing file yields an empty object.
func (w *Workspace) ReadTree(relativePath string) (*translation.Node, error) {
	data, err := os.ReadFile(w.path(relativePath))
	if errors.Is(err, fs.ErrNotExist) {
		return translation.NewObject(), nil
	}
	if err != nil {
		return nil, err
	}
	tree, err := translation.ParseTree(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", relativePath, err)
	}
	return tree, nil
}

// WriteTree writes tree as indented JSON, creating parent directories.
func (w *Workspace) WriteTree(relativePath string, tree *translation.Node) error {
	data, err := translation.EncodeTree(tree)
	if err != nil {
		return err
	}
	path := w.path(relativePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Reset removes the base directory and recreates it empty.
func (w *Workspace) Reset() error {
	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("clearing %s: %w", w.root, err)
	}
	if err := os.MkdirAll(w.root, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", w.root, err)
	}
	return nil
}

// Snapshot writes a remote tree to <languageCode>.json.
func (w *Workspace) Snapshot(ctx context.Context, languageCode string, tree *translation.Node) error {
	return w.WriteTree(languageCode+".json", tree)
}

func (w *Workspace) path(relativePath string) string {
	return filepath.Join(w.root, filepath.FromSlash(relativePath))
}
