package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bekzodm/hamyon/internal/config"
	"github.com/bekzodm/hamyon/internal/query"
	"github.com/bekzodm/hamyon/internal/storage"

	"github.com/spf13/viper"
)

// app bundles the core layers the commands talk to: the repository, the
// cache client on top of it, and the read/write surfaces.
type app struct {
	store   *storage.SQLiteStorage
	cache   *query.Client
	queries *query.Queries
	mutator *query.Mutator
}

// newApp opens the database, migrates it, seeds default categories on first
// run, and wires the query layer. The returned cleanup must be called before
// exit.
func newApp(ctx context.Context) (*app, func(), error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	cache := query.NewClient(query.Options{})
	a := &app{
		store:   store,
		cache:   cache,
		queries: query.NewQueries(store, cache),
		mutator: query.NewMutator(store, cache),
	}

	cleanup := func() {
		cache.Close()
		_ = store.Close()
	}
	return a, cleanup, nil
}

// initStorage initializes the storage layer with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := store.EnsureSeeded(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	return store, nil
}

// parseMonth parses a YYYY-MM month flag; an empty value means the current
// month.
func parseMonth(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	month, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return month, nil
}

// resolveCategory accepts a category id or display name and returns the id.
func resolveCategory(ctx context.Context, a *app, ref string) (int64, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return id, nil
	}

	cat, err := a.store.GetCategoryByName(ctx, ref)
	if err != nil {
		return 0, err
	}
	if cat == nil {
		return 0, fmt.Errorf("no category named %q, run 'hamyon categories list'", ref)
	}
	return cat.ID, nil
}

// formatMoney renders an amount in so'm with thousands grouping, keeping the
// sign: -125000 -> "-125 000 so'm".
func formatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}

	digits := strconv.FormatFloat(v, 'f', 0, 64)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, " ") + " so'm"
	if neg {
		return "-" + out
	}
	return out
}
