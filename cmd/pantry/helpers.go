package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/pantrychef/internal/cli"
	"github.com/Veraticus/pantrychef/internal/config"
	"github.com/Veraticus/pantrychef/internal/kitchen"
	"github.com/Veraticus/pantrychef/internal/llm"
	"github.com/Veraticus/pantrychef/internal/model"
	"github.com/Veraticus/pantrychef/internal/recipe"
	"github.com/Veraticus/pantrychef/internal/storage"
	"github.com/Veraticus/pantrychef/internal/store"
	"github.com/spf13/viper"
)

// newClients builds the model adapters. Tests swap it for scripted fakes.
var newClients = llm.NewClients

// app is everything a command needs, opened from the current configuration.
type app struct {
	kitchen *kitchen.Kitchen
	storage *storage.SQLiteStorage
	metrics *recipe.Metrics
	cfg     *config.Config
}

func (a *app) Close() error {
	return a.storage.Close()
}

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	if dbPath == "" {
		dbPath = config.ExpandPath(config.DefaultDatabasePath)
	}

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// initApp loads the configuration and wires the stores, the providers and
// the kitchen.
func initApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	db, err := initStorage(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	logger := slog.Default()
	policy := store.AccountPolicy{
		InitialCredits:   cfg.Credits.Initial,
		MonthlyAllowance: cfg.Credits.Monthly,
	}
	stores, err := kitchen.OpenStores(ctx, db, policy, store.Options{Logger: logger})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	clients, err := newClients(cfg.LLMClientConfig(), logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create model clients: %w", err)
	}

	metrics := recipe.NewMetrics()
	genOpts := recipe.Options{
		Metrics:     metrics,
		Logger:      logger,
		MaxAttempts: cfg.Generation.MaxAttempts,
	}
	if cfg.Generation.Images {
		genOpts.Images = clients.Images
	}
	generator, err := recipe.NewGenerator(clients.Text, genOpts)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	k, err := kitchen.New(kitchen.Config{
		Stores:    stores,
		Generator: generator,
		Detector:  clients.Vision,
		Logger:    logger,
		Costs: kitchen.Costs{
			Scan:     cfg.Costs.Scan,
			Generate: cfg.Costs.Generate,
		},
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &app{
		kitchen: k,
		storage: db,
		metrics: metrics,
		cfg:     cfg,
	}, nil
}

// withApp opens the app for the length of fn.
func withApp(ctx context.Context, fn func(*app) error) error {
	a, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			slog.Warn("failed to close database", "error", closeErr)
		}
	}()
	return fn(a)
}

var errAmbiguous = errors.New("matches more than one item")

// resolvePantryItem finds an item by exact id, unique id prefix or
// case-insensitive name.
func resolvePantryItem(items []model.PantryItem, ref string) (model.PantryItem, error) {
	ref = strings.TrimSpace(ref)
	var matches []model.PantryItem
	for _, item := range items {
		if item.ID == ref {
			return item, nil
		}
		if strings.HasPrefix(item.ID, ref) || strings.EqualFold(item.Name, ref) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return model.PantryItem{}, fmt.Errorf("%w: %q", store.ErrItemNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return model.PantryItem{}, fmt.Errorf("%q %w", ref, errAmbiguous)
	}
}

// resolveListItem is resolvePantryItem for the shopping list.
func resolveListItem(items []model.ListItem, ref string) (model.ListItem, error) {
	ref = strings.TrimSpace(ref)
	var matches []model.ListItem
	for _, item := range items {
		if item.ID == ref {
			return item, nil
		}
		if strings.HasPrefix(item.ID, ref) || strings.EqualFold(item.Name, ref) {
			matches = append(matches, item)
		}
	}
	switch len(matches) {
	case 0:
		return model.ListItem{}, fmt.Errorf("%w: %q", store.ErrItemNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return model.ListItem{}, fmt.Errorf("%q %w", ref, errAmbiguous)
	}
}

// shortID trims the store prefix and keeps enough of the uuid to type.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i >= 0 && i < len(id)-1 {
		rest := id[i+1:]
		if len(rest) > 8 {
			rest = rest[:8]
		}
		return id[:i+1] + rest
	}
	return id
}

// confirm asks before a destructive command unless force is set.
func confirm(ctx context.Context, in io.Reader, out io.Writer, force bool, question string) (bool, error) {
	if force {
		return true, nil
	}
	return cli.NewInputReader(in).Confirm(ctx, out, question)
}
