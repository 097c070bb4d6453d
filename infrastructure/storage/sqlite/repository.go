// ABOUTME: SQLite-based content repository for the persistence service
// ABOUTME: Stores content items in a single table that survives restarts

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"content-planner-api/core/domain"
	coreerrors "content-planner-api/core/errors"
	"content-planner-api/core/interfaces"
	_ "github.com/mattn/go-sqlite3"
)

const table = "content_items"

var itemColumns = []string{
	"id", "owner_id", "title", "platform", "status", "type",
	"target_date", "is_sponsored", "notes",
}

// Repository implements interfaces.ContentRepository using SQLite
type Repository struct {
	db       *sql.DB
	filePath string
	logger   interfaces.Logger
}

// NewRepository opens (or creates) the database at filePath
func NewRepository(filePath string, logger interfaces.Logger) (*Repository, error) {
	if filePath == "" {
		filePath = "content.db"
	}

	db, err := sql.Open("sqlite3", filePath+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	repo, err := NewRepositoryWithDB(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	repo.filePath = filePath
	return repo, nil
}

// NewRepositoryWithDB wraps an open database and ensures the schema exists
func NewRepositoryWithDB(db *sql.DB, logger interfaces.Logger) (*Repository, error) {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	repo := &Repository{db: db, logger: logger}
	if err := repo.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return repo, nil
}

// initSchema creates the content table if it doesn't exist
func (r *Repository) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS content_items (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			platform TEXT NOT NULL,
			status TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT '',
			target_date INTEGER,
			is_sponsored INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_content_owner ON content_items(owner_id);
		CREATE INDEX IF NOT EXISTS idx_content_target ON content_items(target_date);
	`
	_, err := r.db.Exec(query)
	return err
}

// List returns the items of ownerID ordered by target date. An empty
// ownerID lists every row.
func (r *Repository) List(ctx context.Context, ownerID string) ([]domain.ContentItem, error) {
	qb := NewQueryBuilder().Select(table, itemColumns...)
	if ownerID != "" {
		qb.Where("owner_id", "=", ownerID)
	}
	query, params, err := qb.OrderBy("target_date ASC", "id ASC").Build()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ContentItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan content: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}
	return items, nil
}

// Get returns one item by id
func (r *Repository) Get(ctx context.Context, id string) (*domain.ContentItem, error) {
	if err := ValidateID(id, r.logger); err != nil {
		return nil, &coreerrors.ValidationError{Field: "id", Message: err.Error()}
	}

	query, params, err := NewQueryBuilder().Select(table, itemColumns...).Where("id", "=", id).Build()
	if err != nil {
		return nil, err
	}

	item, err := scanItem(r.db.QueryRowContext(ctx, query, params...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &coreerrors.NotFoundError{Resource: "content item", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	return &item, nil
}

// Insert stores a new item
func (r *Repository) Insert(ctx context.Context, item domain.ContentItem) error {
	if err := r.validate(item); err != nil {
		return err
	}

	query, params, err := NewQueryBuilder().Insert(table, itemColumns, itemValues(item)).Build()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, params...); err != nil {
		return fmt.Errorf("failed to insert content: %w", err)
	}
	return nil
}

// Update replaces the stored fields of an existing item. The owner column
// is never rewritten.
func (r *Repository) Update(ctx context.Context, item domain.ContentItem) error {
	if err := r.validate(item); err != nil {
		return err
	}

	columns := itemColumns[2:]
	values := itemValues(item)[2:]
	query, params, err := NewQueryBuilder().Update(table, columns, values).Where("id", "=", item.ID).Build()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &coreerrors.NotFoundError{Resource: "content item", ID: item.ID}
	}
	return nil
}

// Delete removes one item and reports whether it existed
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ValidateID(id, r.logger); err != nil {
		return false, &coreerrors.ValidationError{Field: "id", Message: err.Error()}
	}

	query, params, err := NewQueryBuilder().Delete(table).Where("id", "=", id).Build()
	if err != nil {
		return false, err
	}
	res, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return false, fmt.Errorf("failed to delete content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete content: %w", err)
	}
	return n > 0, nil
}

// DeleteAll removes every item of ownerID, or every row for an empty ownerID
func (r *Repository) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	qb := NewQueryBuilder().Delete(table)
	if ownerID != "" {
		qb.Where("owner_id", "=", ownerID)
	}
	query, params, err := qb.Build()
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete content: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete content: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Stats returns repository statistics for diagnostics
func (r *Repository) Stats(ctx context.Context) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content_items").Scan(&count); err != nil {
		return nil, err
	}
	stats["total_items"] = count

	var owners int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT owner_id) FROM content_items").Scan(&owners); err != nil {
		return nil, err
	}
	stats["owners"] = owners
	stats["file_path"] = r.filePath

	return stats, nil
}

func (r *Repository) validate(item domain.ContentItem) error {
	if err := ValidateID(item.ID, r.logger); err != nil {
		return &coreerrors.ValidationError{Field: "id", Message: err.Error()}
	}
	for field, value := range map[string]string{"title": item.Title, "type": item.Type, "notes": item.Notes} {
		if err := ValidateText(field, value); err != nil {
			return &coreerrors.ValidationError{Field: field, Message: err.Error()}
		}
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(s scanner) (domain.ContentItem, error) {
	var (
		item      domain.ContentItem
		platform  string
		status    string
		target    sql.NullInt64
		sponsored int
	)
	err := s.Scan(&item.ID, &item.OwnerID, &item.Title, &platform, &status, &item.Type,
		&target, &sponsored, &item.Notes)
	if err != nil {
		return domain.ContentItem{}, err
	}
	item.Platform = domain.Platform(platform)
	item.Status = domain.Status(status)
	item.IsSponsored = sponsored != 0
	if target.Valid {
		item.TargetDate = time.Unix(target.Int64, 0)
	}
	return item, nil
}

func itemValues(item domain.ContentItem) []interface{} {
	var target interface{}
	if !item.TargetDate.IsZero() {
		target = item.TargetDate.Unix()
	}
	sponsored := 0
	if item.IsSponsored {
		sponsored = 1
	}
	return []interface{}{
		item.ID, item.OwnerID, item.Title, string(item.Platform), string(item.Status), item.Type,
		target, sponsored, item.Notes,
	}
}
