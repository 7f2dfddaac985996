package reconcile

import (
	"context"
	"errors"
	"sort"
	"sync"

	"i18n-sync/core/translation"

	"github.com/stretchr/testify/mock"
)

// mockRemote is a testify mock of the remote service.
type mockRemote struct {
	mock.Mock
}

func (m *mockRemote) FetchManifest(ctx context.Context) ([]Source, error) {
	args := m.Called(ctx)
	if sources, ok := args.Get(0).([]Source); ok {
		return sources, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRemote) FetchBlob(ctx context.Context, locator Locator) ([]byte, error) {
	args := m.Called(ctx, locator)
	if blob, ok := args.Get(0).([]byte); ok {
		return blob, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRemote) SubmitDelta(ctx context.Context, languageCode, relativePath string, delta map[string]string) error {
	args := m.Called(ctx, languageCode, relativePath, delta)
	return args.Error(0)
}

// submittedLanguages returns the languages passed to SubmitDelta in call order.
func (m *mockRemote) submittedLanguages() []string {
	var langs []string
	for _, call := range m.Calls {
		if call.Method == "SubmitDelta" {
			langs = append(langs, call.Arguments.String(1))
		}
	}
	return langs
}

// memWorkspace is an in-memory Workspace keyed by relative path.
type memWorkspace struct {
	mu       sync.Mutex
	files    map[string]*translation.Node
	loadErr  error
	writeErr map[string]error
	resets   int
}

func newMemWorkspace(files map[string]string) *memWorkspace {
	w := &memWorkspace{files: make(map[string]*translation.Node), writeErr: make(map[string]error)}
	for path, src := range files {
		tree, err := translation.ParseTree([]byte(src))
		if err != nil {
			panic(err)
		}
		w.files[path] = tree
	}
	return w
}

func (w *memWorkspace) Load(ctx context.Context) ([]*translation.Set, error) {
	if w.loadErr != nil {
		return nil, w.loadErr
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	sets := make([]*translation.Set, 0, len(paths))
	for _, p := range paths {
		sets = append(sets, translation.NewSet(translation.LanguageFromPath(p), p, w.files[p]))
	}
	return sets, nil
}

func (w *memWorkspace) ReadTree(relativePath string) (*translation.Node, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if tree, ok := w.files[relativePath]; ok {
		return tree.Clone(), nil
	}
	return translation.NewObject(), nil
}

func (w *memWorkspace) WriteTree(relativePath string, tree *translation.Node) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.writeErr[relativePath]; err != nil {
		return err
	}
	w.files[relativePath] = tree.Clone()
	return nil
}

func (w *memWorkspace) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = make(map[string]*translation.Node)
	w.resets++
	return nil
}

func (w *memWorkspace) Snapshot(ctx context.Context, languageCode string, tree *translation.Node) error {
	return w.WriteTree(languageCode+".json", tree)
}

func (w *memWorkspace) flat(path string) map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	tree, ok := w.files[path]
	if !ok {
		return nil
	}
	return translation.Flatten(tree)
}

// failingSink is a snapshot sink that always fails.
type failingSink struct{ calls int }

func (s *failingSink) Snapshot(ctx context.Context, languageCode string, tree *translation.Node) error {
	s.calls++
	return errors.New("sink unavailable")
}

// recordingRecorder keeps the summaries it receives.
type recordingRecorder struct {
	summaries []*Summary
}

func (r *recordingRecorder) Record(ctx context.Context, summary *Summary) error {
	r.summaries = append(r.summaries, summary)
	return nil
}

func locator(lang string) Locator {
	return Locator{PathPrefix: "/i18n/app", FileName: lang + ".json"}
}

func manifest(langs ...string) []Source {
	sources := make([]Source, 0, len(langs))
	for _, lang := range langs {
		sources = append(sources, Source{LanguageCode: lang, Locators: []Locator{locator(lang)}})
	}
	return sources
}
