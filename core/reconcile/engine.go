package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"i18n-sync/core/logger"
	"i18n-sync/core/translation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine runs synchronization workflows against a Spec.
type Engine struct {
	spec   *Spec
	logger *zap.Logger
}

// NewEngine creates an engine for spec.
func NewEngine(spec *Spec, l *zap.Logger) *Engine {
	if l == nil {
		l = zap.NewNop()
	}
	return &Engine{spec: spec, logger: l}
}

// RemoteState is the remote side of one run, keyed by language code.
// It replaces an on-disk cache: every step of a run reads from it.
type RemoteState struct {
	// Order lists languages in manifest order.
	Order []string
	// Trees holds the fetched nested tree per language.
	Trees map[string]*translation.Node
	// Sets holds the flattened form of Trees.
	Sets map[string]*translation.Set
	// Failed holds the fetch error of languages that could not be loaded.
	Failed map[string]error
}

// Push uploads what the remote is missing for every local language.
func (e *Engine) Push(ctx context.Context, opts PushOptions) (*Summary, error) {
	summary, log := e.begin(WorkflowPush)

	sets, err := e.spec.Workspace.Load(ctx)
	if err != nil {
		return nil, &ConfigError{Reason: "loading local translations", Err: err}
	}

	base := findLanguage(sets, e.spec.BaseLanguage)
	if base == nil {
		return nil, &ConfigError{Reason: fmt.Sprintf("base language %s not found in local translations", e.spec.BaseLanguage)}
	}

	ordered := uploadOrder(sets, base)
	reports := make(map[string]*LanguageReport, len(ordered))
	for _, set := range ordered {
		reports[set.LanguageCode] = &LanguageReport{Language: set.LanguageCode, Path: set.RelativePath}
	}

	for _, set := range ordered[1:] {
		e.backfill(log, base, set, reports[set.LanguageCode], opts)
	}

	state, fetchErr := e.fetchRemote(ctx, log)

	// Uploads run one at a time with the base language first.
	for _, set := range ordered {
		report := reports[set.LanguageCode]
		if !report.Succeeded() {
			summary.add(report)
			continue
		}
		if fetchErr != nil {
			report.fail(fetchErr)
			summary.add(report)
			continue
		}
		if err, failed := state.Failed[set.LanguageCode]; failed {
			report.fail(err)
			summary.add(report)
			continue
		}

		e.pushLanguage(ctx, log, set, state.Sets[set.LanguageCode], report, opts)
		summary.add(report)
	}

	return e.finish(ctx, log, summary, nil)
}

// backfill adds base-language keys that set lacks to its in-memory content.
func (e *Engine) backfill(log *zap.Logger, base, set *translation.Set, report *LanguageReport, opts PushOptions) {
	missing := translation.MissingKeys(base, set)
	if len(missing) == 0 {
		return
	}

	log.Info("Found missing keys compared to base language",
		zap.String("language", set.LanguageCode),
		zap.String("base_language", base.LanguageCode),
		zap.Int("keys", len(missing)),
	)
	logEntries(log, "Missing key", missing)

	set.Add(missing)
	report.Backfilled = len(missing)

	if !opts.WriteBackfill {
		return
	}
	if err := e.writeBackfill(set, missing); err != nil {
		log.Error("Failed to write backfilled translations",
			zap.String("language", set.LanguageCode),
			zap.String("path", set.RelativePath),
			zap.Error(err),
		)
		report.fail(err)
	}
}

// writeBackfill adds placeholders to the local file while keeping every
// value the file already holds.
func (e *Engine) writeBackfill(set *translation.Set, missing map[string]string) error {
	persistErr := func(err error) error {
		return &PersistError{Language: set.LanguageCode, Path: set.RelativePath, Err: err}
	}

	current, err := e.spec.Workspace.ReadTree(set.RelativePath)
	if err != nil {
		return persistErr(err)
	}
	placeholders, err := translation.Unflatten(missing)
	if err != nil {
		return persistErr(err)
	}
	if err := e.spec.Workspace.WriteTree(set.RelativePath, translation.Merge(placeholders, current)); err != nil {
		return persistErr(err)
	}
	return nil
}

func (e *Engine) pushLanguage(ctx context.Context, log *zap.Logger, set, remote *translation.Set, report *LanguageReport, opts PushOptions) {
	l := log.With(zap.String("language", set.LanguageCode), zap.String("path", set.RelativePath))

	if remote == nil {
		l.Info("No cached translation found, uploading all content")
	}

	delta := translation.Diff(set, remote)
	stats := translation.Stats(set, remote)
	report.New = stats.New
	report.Updated = stats.Updated
	report.Unchanged = stats.Unchanged

	if divergent := translation.Divergent(set, remote); len(divergent) > 0 {
		report.Divergent = len(divergent)
		l.Warn("Local edits differ from remote translations and will not be uploaded",
			zap.Int("keys", len(divergent)))
		logEntries(l, "Divergent key", divergent)
	}

	if len(delta) == 0 {
		report.Status = StatusUnchanged
		l.Info("No changes found")
		return
	}

	l.Info("Uploading new keys", zap.Int("keys", len(delta)), zap.Bool("dry_run", opts.DryRun))
	logEntries(l, "Upload key", delta)

	if opts.DryRun {
		report.Status = StatusPlanned
		return
	}

	if err := e.spec.Remote.SubmitDelta(ctx, set.LanguageCode, set.RelativePath, delta); err != nil {
		l.Error("Failed to push translations", zap.Error(err))
		report.fail(fmt.Errorf("submitting delta: %w", err))
		return
	}

	report.Status = StatusPushed
	l.Info("Push succeeded")
}

// Pull merges every remote language into its local file.
func (e *Engine) Pull(ctx context.Context) (*Summary, error) {
	summary, log := e.begin(WorkflowPull)

	sets, err := e.spec.Workspace.Load(ctx)
	if err != nil {
		return nil, &ConfigError{Reason: "loading local translations", Err: err}
	}
	base := findLanguage(sets, e.spec.BaseLanguage)

	state, err := e.fetchRemote(ctx, log)
	if err != nil {
		return e.finish(ctx, log, summary, err)
	}

	for _, lang := range state.Order {
		path := e.resolvePath(lang, sets, base)
		report := &LanguageReport{Language: lang, Path: path}

		if err, failed := state.Failed[lang]; failed {
			report.fail(err)
			summary.add(report)
			continue
		}

		e.pullLanguage(log, state.Trees[lang], report)
		summary.add(report)
	}

	return e.finish(ctx, log, summary, nil)
}

func (e *Engine) pullLanguage(log *zap.Logger, remote *translation.Node, report *LanguageReport) {
	l := log.With(zap.String("language", report.Language), zap.String("path", report.Path))

	local, err := e.spec.Workspace.ReadTree(report.Path)
	if err != nil {
		l.Error("Failed to read local translations", zap.Error(err))
		report.fail(&PersistError{Language: report.Language, Path: report.Path, Err: err})
		return
	}

	merged := translation.Merge(local, remote)
	countChanges(translation.Flatten(local), translation.Flatten(merged), report)

	if err := e.spec.Workspace.WriteTree(report.Path, merged); err != nil {
		l.Error("Failed to write merged translations", zap.Error(err))
		report.fail(&PersistError{Language: report.Language, Path: report.Path, Err: err})
		return
	}

	report.Status = StatusWritten
	l.Info("Synced translation",
		zap.Int("new", report.New),
		zap.Int("updated", report.Updated),
		zap.Int("unchanged", report.Unchanged),
	)
}

// Download writes every remote language verbatim into dst, which is cleared first.
func (e *Engine) Download(ctx context.Context, dst Workspace) (*Summary, error) {
	summary, log := e.begin(WorkflowDownload)

	if err := dst.Reset(); err != nil {
		return nil, &ConfigError{Reason: "preparing download directory", Err: err}
	}

	state, err := e.fetchRemote(ctx, log)
	if err != nil {
		return e.finish(ctx, log, summary, err)
	}

	for _, lang := range state.Order {
		path := lang + ".json"
		report := &LanguageReport{Language: lang, Path: path}

		if err, failed := state.Failed[lang]; failed {
			report.fail(err)
			summary.add(report)
			continue
		}

		tree := state.Trees[lang]
		if err := dst.WriteTree(path, tree); err != nil {
			log.Error("Failed to write downloaded translation",
				zap.String("language", lang), zap.String("path", path), zap.Error(err))
			report.fail(&PersistError{Language: lang, Path: path, Err: err})
			summary.add(report)
			continue
		}

		report.Status = StatusWritten
		report.New = len(state.Sets[lang].Content)
		log.Info("Downloaded translation", zap.String("language", lang), zap.String("path", path))
		summary.add(report)
	}

	return e.finish(ctx, log, summary, nil)
}

// FetchRemote loads the remote state without touching the workspace.
func (e *Engine) FetchRemote(ctx context.Context) (*RemoteState, error) {
	return e.fetchRemote(ctx, e.logger)
}

func (e *Engine) fetchRemote(ctx context.Context, log *zap.Logger) (*RemoteState, error) {
	log.Info("Fetching translation manifest")
	sources, err := e.spec.Remote.FetchManifest(ctx)
	if err != nil {
		log.Error("Failed to fetch translation manifest", zap.Error(err))
		return nil, &RemoteFetchError{Err: err}
	}

	type fetchResult struct {
		tree *translation.Node
		err  error
	}

	cache := newBlobCache(e.spec.Remote)
	results := make([]fetchResult, len(sources))

	var g errgroup.Group
	g.SetLimit(max(e.spec.FetchConcurrency, 1))
	for i, src := range sources {
		if len(src.Locators) == 0 {
			continue
		}
		g.Go(func() error {
			tree, err := e.fetchLanguage(ctx, cache, src)
			results[i] = fetchResult{tree: tree, err: err}
			return nil
		})
	}
	_ = g.Wait()

	state := &RemoteState{
		Trees:  make(map[string]*translation.Node),
		Sets:   make(map[string]*translation.Set),
		Failed: make(map[string]error),
	}

	for i, src := range sources {
		lang := src.LanguageCode
		if len(src.Locators) == 0 {
			log.Warn("No translation files found for language", zap.String("language", lang))
			continue
		}

		_, seen := state.Trees[lang]
		_, seenFailed := state.Failed[lang]
		if !seen && !seenFailed {
			state.Order = append(state.Order, lang)
		}

		res := results[i]
		switch {
		case seenFailed:
		case res.err != nil:
			log.Error("Failed to download translation", zap.String("language", lang), zap.Error(res.err))
			delete(state.Trees, lang)
			state.Failed[lang] = res.err
		case seen:
			state.Trees[lang] = translation.Merge(state.Trees[lang], res.tree)
		default:
			state.Trees[lang] = res.tree
		}
	}

	for _, lang := range state.Order {
		tree, ok := state.Trees[lang]
		if !ok {
			continue
		}
		state.Sets[lang] = translation.NewSet(lang, lang+".json", tree)
		e.snapshot(ctx, log, lang, tree)
	}

	log.Info("Fetched remote translations",
		zap.Int("languages", len(state.Order)),
		zap.Int("failed", len(state.Failed)),
	)
	return state, nil
}

func (e *Engine) fetchLanguage(ctx context.Context, cache *blobCache, src Source) (*translation.Node, error) {
	var tree *translation.Node
	for _, loc := range src.Locators {
		blob, err := cache.Fetch(ctx, loc)
		if err != nil {
			return nil, &RemoteFetchError{Language: src.LanguageCode, Err: err}
		}
		doc, err := translation.ParseTree(blob)
		if err != nil {
			return nil, &RemoteFetchError{Language: src.LanguageCode, Err: fmt.Errorf("%s: %w", loc.FileName, err)}
		}
		sub, err := e.extractLanguage(doc, src.LanguageCode)
		if err != nil {
			return nil, &RemoteFetchError{Language: src.LanguageCode, Err: fmt.Errorf("%s: %w", loc.FileName, err)}
		}
		tree = translation.Merge(tree, sub)
	}
	return tree, nil
}

// extractLanguage returns the part of a remote document that belongs to lang.
func (e *Engine) extractLanguage(doc *translation.Node, lang string) (*translation.Node, error) {
	if !doc.IsObject() {
		return nil, fmt.Errorf("remote document is a %s, want an object", doc.Kind)
	}

	tmpl := e.spec.BlobKeyTemplate
	if tmpl == "" {
		return doc, nil
	}

	if sub, ok := doc.Get(fmt.Sprintf(tmpl, lang)); ok {
		if !sub.IsObject() {
			return nil, fmt.Errorf("content for %s is a %s, want an object", lang, sub.Kind)
		}
		return sub, nil
	}

	// A document keyed for other languages has nothing for this one.
	prefix, _, _ := strings.Cut(tmpl, "%s")
	if prefix != "" {
		for _, key := range doc.Keys() {
			if strings.HasPrefix(key, prefix) {
				return nil, fmt.Errorf("no translation content found for language %s", lang)
			}
		}
	}
	return doc, nil
}

func (e *Engine) snapshot(ctx context.Context, log *zap.Logger, lang string, tree *translation.Node) {
	for _, sink := range e.spec.Snapshots {
		if err := sink.Snapshot(ctx, lang, tree); err != nil {
			log.Warn("Failed to snapshot remote translation", zap.String("language", lang), zap.Error(err))
		}
	}
}

// resolvePath picks the local file for lang: its existing file, a sibling of
// the base language file, or <lang>.json at the workspace root.
func (e *Engine) resolvePath(lang string, sets []*translation.Set, base *translation.Set) string {
	if set := findLanguage(sets, lang); set != nil {
		return set.RelativePath
	}
	if base != nil {
		dir := filepath.Dir(base.RelativePath)
		return filepath.ToSlash(filepath.Join(dir, lang+filepath.Ext(base.RelativePath)))
	}
	return lang + ".json"
}

func (e *Engine) begin(workflow Workflow) (*Summary, *zap.Logger) {
	summary := &Summary{
		RunID:     uuid.NewString(),
		Workflow:  workflow,
		StartedAt: time.Now(),
	}
	log := logger.WithRunID(e.logger, summary.RunID).With(zap.String("workflow", string(workflow)))
	log.Info("Starting translation sync")

	for _, sink := range e.spec.Snapshots {
		if r, ok := sink.(Resetter); ok {
			if err := r.Reset(); err != nil {
				log.Warn("Failed to reset snapshot directory", zap.Error(err))
			}
		}
	}
	return summary, log
}

func (e *Engine) finish(ctx context.Context, log *zap.Logger, summary *Summary, cause error) (*Summary, error) {
	summary.FinishedAt = time.Now()

	if e.spec.Recorder != nil {
		if err := e.spec.Recorder.Record(ctx, summary); err != nil {
			log.Warn("Failed to record sync run", zap.Error(err))
		}
	}

	log.Info(fmt.Sprintf("%s completed: %s", capitalize(string(summary.Workflow)), summary),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("total", summary.Total()),
		zap.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)

	if summary.Succeeded == 0 {
		return summary, &NoProgressError{
			Succeeded: summary.Succeeded,
			Failed:    summary.Failed,
			Failures:  summary.Failures(),
			Cause:     cause,
		}
	}
	return summary, nil
}

func findLanguage(sets []*translation.Set, lang string) *translation.Set {
	for _, s := range sets {
		if s.LanguageCode == lang {
			return s
		}
	}
	return nil
}

// uploadOrder puts base first and the remaining sets in language-code order.
func uploadOrder(sets []*translation.Set, base *translation.Set) []*translation.Set {
	rest := make([]*translation.Set, 0, len(sets)-1)
	for _, s := range sets {
		if s != base {
			rest = append(rest, s)
		}
	}
	sort.Slice(rest, func(i, j int) bool {
		return rest[i].LanguageCode < rest[j].LanguageCode
	})
	return append([]*translation.Set{base}, rest...)
}

// countChanges classifies the keys of after relative to before.
func countChanges(before, after map[string]string, report *LanguageReport) {
	for key, value := range after {
		old, ok := before[key]
		switch {
		case !ok:
			report.New++
		case old != value:
			report.Updated++
		default:
			report.Unchanged++
		}
	}
}

func logEntries(log *zap.Logger, msg string, entries map[string]string) {
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Debug(msg, zap.String("key", k), zap.String("value", entries[k]))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
