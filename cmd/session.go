package cmd

import (
	"context"
	"fmt"

	"i18n-sync/core/config"
	"i18n-sync/core/logger"
	"i18n-sync/core/reconcile"
	"i18n-sync/feature/translations"

	"go.uber.org/zap"
)

// session holds what every sync command needs.
type session struct {
	cfg *config.Config
	log *zap.Logger
	svc *translations.Service
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, err := translations.New(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: l, svc: svc}, nil
}

func (s *session) close() {
	_ = s.log.Sync()
}

// report logs every failed language of a finished run.
func (s *session) report(summary *reconcile.Summary) {
	if summary == nil {
		return
	}
	for _, lang := range summary.Languages {
		if lang.Succeeded() {
			continue
		}
		s.log.Error("Language failed",
			zap.String("language", lang.Language),
			zap.String("path", lang.Path),
			zap.String("error", lang.Error),
		)
	}
}
