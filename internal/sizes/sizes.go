package sizes

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Size struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewSize struct {
	Name  string `json:"name" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

func (c *Conf) InsertSize(ctx context.Context, storeID string, ns NewSize) (Size, error) {
	now := time.Now().UTC()
	s := Size{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		Name:      ns.Name,
		Value:     ns.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO sizes (id, store_id, name, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := c.db.ExecContext(ctx, query, s.ID, s.StoreID, s.Name, s.Value, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return Size{}, fmt.Errorf("failed to insert size: %w", err)
	}
	return s, nil
}

func (c *Conf) GetSizeByID(ctx context.Context, storeID, sizeID string) (Size, error) {
	query := `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM sizes
		WHERE id = $1 AND store_id = $2
	`
	var s Size
	err := c.db.QueryRowContext(ctx, query, sizeID, storeID).
		Scan(&s.ID, &s.StoreID, &s.Name, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Size{}, fmt.Errorf("failed to get size: %w", err)
	}
	return s, nil
}

func (c *Conf) ListSizes(ctx context.Context, storeID string) ([]Size, error) {
	query := `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM sizes
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sizes: %w", err)
	}
	defer rows.Close()

	var sizes []Size
	for rows.Next() {
		var s Size
		if err := rows.Scan(&s.ID, &s.StoreID, &s.Name, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan size: %w", err)
		}
		sizes = append(sizes, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sizes: %w", err)
	}
	return sizes, nil
}

func (c *Conf) UpdateSize(ctx context.Context, storeID, sizeID string, ns NewSize) (Size, error) {
	query := `
		UPDATE sizes
		SET name = $1, value = $2, updated_at = NOW()
		WHERE id = $3 AND store_id = $4
		RETURNING id, store_id, name, value, created_at, updated_at
	`
	var s Size
	err := c.db.QueryRowContext(ctx, query, ns.Name, ns.Value, sizeID, storeID).
		Scan(&s.ID, &s.StoreID, &s.Name, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Size{}, fmt.Errorf("failed to update size: %w", err)
	}
	return s, nil
}

func (c *Conf) DeleteSize(ctx context.Context, storeID, sizeID string) (Size, error) {
	query := `
		DELETE FROM sizes
		WHERE id = $1 AND store_id = $2
		RETURNING id, store_id, name, value, created_at, updated_at
	`
	var s Size
	err := c.db.QueryRowContext(ctx, query, sizeID, storeID).
		Scan(&s.ID, &s.StoreID, &s.Name, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Size{}, fmt.Errorf("failed to delete size: %w", err)
	}
	return s, nil
}
