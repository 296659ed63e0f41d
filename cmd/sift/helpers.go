package main

import (
	"context"
	"fmt"

	"github.com/Veraticus/sift/internal/config"
	"github.com/Veraticus/sift/internal/storage"
	"github.com/spf13/viper"
)

// initStorage opens the history database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath(viper.GetViper()))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}
