package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/sift/internal/common"
	"github.com/Veraticus/sift/internal/model"
)

// SaveIngestion stores an ingestion and its columns in one transaction and
// returns the new ID. ing.ID and ing.CreatedAt are filled in on success.
func (s *SQLiteStorage) SaveIngestion(ctx context.Context, ing *model.Ingestion) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateIngestion(ing); err != nil {
		return 0, err
	}

	createdAt := ing.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO ingestions (source, sheet, island_region, region, header_region, header_row, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ing.Source, ing.Sheet, ing.IslandRegion, ing.Region, ing.HeaderRegion,
		ing.HeaderRow, ing.RowCount, createdAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ingestion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get ingestion ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO ingestion_columns (ingestion_id, position, name, type, region, mapped_field)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range ing.Columns {
		if _, err = stmt.ExecContext(ctx, id, c.Position, c.Name, c.Type, c.Region, c.MappedField); err != nil {
			return 0, fmt.Errorf("failed to insert column %q: %w", c.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit ingestion: %w", err)
	}

	ing.ID = id
	ing.CreatedAt = createdAt
	return id, nil
}

// GetIngestion returns the ingestion with the given ID and its columns.
func (s *SQLiteStorage) GetIngestion(ctx context.Context, id int64) (*model.Ingestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var ing model.Ingestion
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, sheet, island_region, region, header_region, header_row, row_count, created_at
		FROM ingestions
		WHERE id = ?`, id).Scan(
		&ing.ID, &ing.Source, &ing.Sheet, &ing.IslandRegion, &ing.Region, &ing.HeaderRegion,
		&ing.HeaderRow, &ing.RowCount, &ing.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ingestion %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestion: %w", err)
	}

	columns, err := s.getColumns(ctx, id)
	if err != nil {
		return nil, err
	}
	ing.Columns = columns

	return &ing, nil
}

// ListIngestions returns up to limit ingestions, newest first. Columns are
// not loaded.
func (s *SQLiteStorage) ListIngestions(ctx context.Context, limit int) ([]model.Ingestion, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateLimit(limit); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, sheet, island_region, region, header_region, header_row, row_count, created_at
		FROM ingestions
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingestions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ingestions []model.Ingestion
	for rows.Next() {
		var ing model.Ingestion
		if err := rows.Scan(&ing.ID, &ing.Source, &ing.Sheet, &ing.IslandRegion, &ing.Region,
			&ing.HeaderRegion, &ing.HeaderRow, &ing.RowCount, &ing.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingestion: %w", err)
		}
		ingestions = append(ingestions, ing)
	}

	return ingestions, rows.Err()
}

// DeleteIngestion removes an ingestion and its columns.
func (s *SQLiteStorage) DeleteIngestion(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ingestion_columns WHERE ingestion_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete columns: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM ingestions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingestion: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("ingestion %d: %w", id, common.ErrNotFound)
	}

	return tx.Commit()
}

func (s *SQLiteStorage) getColumns(ctx context.Context, id int64) ([]model.IngestedColumn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, name, type, region, mapped_field
		FROM ingestion_columns
		WHERE ingestion_id = ?
		ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns := []model.IngestedColumn{}
	for rows.Next() {
		var c model.IngestedColumn
		if err := rows.Scan(&c.Position, &c.Name, &c.Type, &c.Region, &c.MappedField); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, c)
	}

	return columns, rows.Err()
}
