package translations

import (
	"context"
	"path/filepath"
	"slices"
	"strings"

	"i18n-sync/core/config"
	"i18n-sync/core/database"
	"i18n-sync/core/history"
	"i18n-sync/core/reconcile"
	"i18n-sync/core/remote"
	"i18n-sync/core/storage"
	"i18n-sync/core/workspace"

	"go.uber.org/zap"
)

// Service runs sync workflows for one configuration.
type Service struct {
	cfg       *config.Config
	logger    *zap.Logger
	remote    reconcile.Remote
	snapshots []reconcile.Snapshotter
	recorder  reconcile.Recorder
}

// PushRequest holds per-invocation push settings.
type PushRequest struct {
	// BasePath overrides sync.base_path when set.
	BasePath string
	// DryRun computes deltas without submitting them.
	DryRun bool
	// WriteBackfill persists placeholders; it is combined with sync.write_backfill.
	WriteBackfill bool
}

// New validates cfg and builds every configured collaborator.
func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Service, error) {
	if l == nil {
		l = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &reconcile.ConfigError{Reason: "invalid configuration", Err: err}
	}

	var snapshots []reconcile.Snapshotter
	if cfg.Sync.Cache {
		snapshots = append(snapshots, workspace.New(cfg.Sync.CacheDir(), nil, nil, l))
	}
	if mirror := openMirror(ctx, cfg.Storage, l); mirror != nil {
		snapshots = append(snapshots, mirror)
	}

	var recorder reconcile.Recorder
	if r := openRecorder(ctx, cfg.Database, l); r != nil {
		recorder = r
	}

	return NewService(cfg, l, remote.New(cfg.Remote, l), snapshots, recorder), nil
}

// NewService creates a service from explicit collaborators.
func NewService(cfg *config.Config, l *zap.Logger, rem reconcile.Remote, snapshots []reconcile.Snapshotter, recorder reconcile.Recorder) *Service {
	if l == nil {
		l = zap.NewNop()
	}
	return &Service{
		cfg:       cfg,
		logger:    l,
		remote:    rem,
		snapshots: snapshots,
		recorder:  recorder,
	}
}

func openMirror(ctx context.Context, cfg storage.Config, l *zap.Logger) *storage.Mirror {
	if !cfg.Enabled {
		return nil
	}
	client, err := storage.NewClient(cfg)
	if err != nil {
		l.Warn("Snapshot mirror disabled", zap.Error(err))
		return nil
	}
	mirror := storage.NewMirror(client, cfg.Bucket, cfg.Prefix, l)
	if err := mirror.EnsureBucket(ctx); err != nil {
		l.Warn("Snapshot mirror disabled", zap.String("bucket", cfg.Bucket), zap.Error(err))
		return nil
	}
	return mirror
}

func openRecorder(ctx context.Context, cfg database.Config, l *zap.Logger) *history.Recorder {
	if !cfg.Enabled {
		return nil
	}
	db, err := database.Connect(cfg)
	if err != nil {
		l.Warn("Run history disabled", zap.String("driver", cfg.Driver), zap.Error(err))
		return nil
	}
	recorder := history.NewRecorder(db)
	if err := recorder.Migrate(ctx); err != nil {
		l.Warn("Run history disabled", zap.Error(err))
		return nil
	}
	return recorder
}

// Push uploads what the remote is missing.
func (s *Service) Push(ctx context.Context, req PushRequest) (*reconcile.Summary, error) {
	basePath := s.cfg.Sync.BasePath
	if req.BasePath != "" {
		basePath = req.BasePath
	}
	engine := s.engine(s.workspace(basePath))
	return engine.Push(ctx, reconcile.PushOptions{
		DryRun:        req.DryRun,
		WriteBackfill: req.WriteBackfill || s.cfg.Sync.WriteBackfill,
	})
}

// Pull merges remote translations into the local files below basePath,
// or below sync.base_path when basePath is empty.
func (s *Service) Pull(ctx context.Context, basePath string) (*reconcile.Summary, error) {
	if basePath == "" {
		basePath = s.cfg.Sync.BasePath
	}
	return s.engine(s.workspace(basePath)).Pull(ctx)
}

// Download writes remote translations to dir, or to the preview directory
// when dir is empty. The directory is cleared first.
func (s *Service) Download(ctx context.Context, dir string) (*reconcile.Summary, error) {
	if dir == "" {
		dir = s.cfg.Sync.PreviewDir()
	}
	s.logger.Info("Downloading translations", zap.String("dir", dir))
	return s.engine(s.workspace(s.cfg.Sync.BasePath)).Download(ctx, workspace.New(dir, nil, nil, s.logger))
}

func (s *Service) workspace(basePath string) *workspace.Workspace {
	exclude := s.cfg.Sync.Exclude
	if pattern, ok := nestedDirPattern(basePath, s.cfg.Sync.WorkDir); ok {
		exclude = append(slices.Clone(exclude), pattern)
	}
	return workspace.New(basePath, s.cfg.Sync.Include, exclude, s.logger)
}

// nestedDirPattern returns a pattern matching everything below dir when dir
// lies inside basePath. The work directory holds cache and preview copies of
// remote files that must never be loaded as local translations.
func nestedDirPattern(basePath, dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	absBase, err := filepath.Abs(basePath)
	if err != nil {
		return "", false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absDir)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel) + "/**", true
}

func (s *Service) engine(ws reconcile.Workspace) *reconcile.Engine {
	return reconcile.NewEngine(&reconcile.Spec{
		Remote:           s.remote,
		Workspace:        ws,
		Snapshots:        s.snapshots,
		Recorder:         s.recorder,
		BaseLanguage:     s.cfg.Sync.BaseLanguage,
		BlobKeyTemplate:  s.cfg.Remote.BlobKeyTemplate,
		FetchConcurrency: s.cfg.Sync.FetchConcurrency,
	}, s.logger)
}
