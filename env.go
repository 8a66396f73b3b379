package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/billlayne/mailcomposer/ai"
	"github.com/billlayne/mailcomposer/artifact"
	"github.com/billlayne/mailcomposer/compose"
	"github.com/billlayne/mailcomposer/config"
	"github.com/billlayne/mailcomposer/form"
	"github.com/billlayne/mailcomposer/store"
)

// env is what a command needs, built from the loaded settings.
type env struct {
	settings config.Settings
	store    *store.Store
	compose  *compose.Service
	out      *artifact.Dir
	close    func() error
}

// newEnv opens the store and output directory. withAI also connects the
// AI collaborator; commands that only manage templates and lists skip it.
func newEnv(ctx context.Context, withAI bool, outDir string) (*env, error) {
	s := cfgManager.Settings()
	if outDir != "" {
		s.OutputDir = outDir
	}
	st, closeStore, err := openStore(ctx, s)
	if err != nil {
		return nil, err
	}
	out, err := artifact.NewDir(s.OutputDir, logger.Named("artifact"))
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	e := &env{settings: s, store: st, out: out, close: closeStore}
	if withAI {
		g, err := ai.NewGemini(ctx, s.AI, s.Agency, logger.Named("ai"))
		if err != nil {
			_ = closeStore()
			return nil, err
		}
		e.compose = compose.New(s, g, st, compose.WithLogger(logger.Named("compose")))
	}
	return e, nil
}

func openStore(ctx context.Context, s config.Settings) (*store.Store, func() error, error) {
	var repo store.Repository
	closeFn := func() error { return nil }
	switch s.Store.Backend {
	case "redis":
		rdb, err := store.ConnectRedis(ctx, s.Store.RedisAddr, s.Store.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		repo = store.NewRedisRepository(rdb, s.Store.Prefix)
		closeFn = rdb.Close
	default:
		fr, err := store.NewFileRepository(s.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		repo = fr
	}
	logger.Debug("store opened", zap.String("backend", s.Store.Backend))
	st := store.New(repo, s.Agency.ShortName, s.Agency.LogoURL, store.WithLogger(logger.Named("store")))
	return st, closeFn, nil
}

// loadForm reads YAML form data over the defaults. "-" reads stdin and an
// empty path returns the defaults.
func loadForm(path string) (form.Data, error) {
	d := form.Defaults()
	if path == "" {
		return d, nil
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return d, fmt.Errorf("read form: %w", err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse form %s: %w", path, err)
	}
	return d, nil
}
