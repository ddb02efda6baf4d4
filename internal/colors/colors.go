package colors

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Color struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewColor struct {
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

func (c *Conf) InsertColor(ctx context.Context, storeID string, nc NewColor) (Color, error) {
	now := time.Now().UTC()
	col := Color{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		Name:      nc.Name,
		Value:     nc.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO colors (id, store_id, name, value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := c.db.ExecContext(ctx, query, col.ID, col.StoreID, col.Name, col.Value, col.CreatedAt, col.UpdatedAt)
	if err != nil {
		return Color{}, fmt.Errorf("failed to insert color: %w", err)
	}
	return col, nil
}

func (c *Conf) GetColorByID(ctx context.Context, storeID, colorID string) (Color, error) {
	query := `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM colors
		WHERE id = $1 AND store_id = $2
	`
	var col Color
	err := c.db.QueryRowContext(ctx, query, colorID, storeID).
		Scan(&col.ID, &col.StoreID, &col.Name, &col.Value, &col.CreatedAt, &col.UpdatedAt)
	if err != nil {
		return Color{}, fmt.Errorf("failed to get color: %w", err)
	}
	return col, nil
}

func (c *Conf) ListColors(ctx context.Context, storeID string) ([]Color, error) {
	query := `
		SELECT id, store_id, name, value, created_at, updated_at
		FROM colors
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query colors: %w", err)
	}
	defer rows.Close()

	var colors []Color
	for rows.Next() {
		var col Color
		if err := rows.Scan(&col.ID, &col.StoreID, &col.Name, &col.Value, &col.CreatedAt, &col.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan color: %w", err)
		}
		colors = append(colors, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating colors: %w", err)
	}
	return colors, nil
}

func (c *Conf) UpdateColor(ctx context.Context, storeID, colorID string, nc NewColor) (Color, error) {
	query := `
		UPDATE colors
		SET name = $1, value = $2, updated_at = NOW()
		WHERE id = $3 AND store_id = $4
		RETURNING id, store_id, name, value, created_at, updated_at
	`
	var col Color
	err := c.db.QueryRowContext(ctx, query, nc.Name, nc.Value, colorID, storeID).
		Scan(&col.ID, &col.StoreID, &col.Name, &col.Value, &col.CreatedAt, &col.UpdatedAt)
	if err != nil {
		return Color{}, fmt.Errorf("failed to update color: %w", err)
	}
	return col, nil
}

func (c *Conf) DeleteColor(ctx context.Context, storeID, colorID string) (Color, error) {
	query := `
		DELETE FROM colors
		WHERE id = $1 AND store_id = $2
		RETURNING id, store_id, name, value, created_at, updated_at
	`
	var col Color
	err := c.db.QueryRowContext(ctx, query, colorID, storeID).
		Scan(&col.ID, &col.StoreID, &col.Name, &col.Value, &col.CreatedAt, &col.UpdatedAt)
	if err != nil {
		return Color{}, fmt.Errorf("failed to delete color: %w", err)
	}
	return col, nil
}
