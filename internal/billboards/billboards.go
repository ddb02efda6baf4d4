package billboards

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Billboard struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Label     string    `json:"label"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewBillboard struct {
	Label    string `json:"label" validate:"required"`
	ImageURL string `json:"image_url" validate:"required"`
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

func (c *Conf) InsertBillboard(ctx context.Context, storeID string, nb NewBillboard) (Billboard, error) {
	now := time.Now().UTC()
	b := Billboard{
		ID:        uuid.NewString(),
		StoreID:   storeID,
		Label:     nb.Label,
		ImageURL:  nb.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO billboards (id, store_id, label, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := c.db.ExecContext(ctx, query, b.ID, b.StoreID, b.Label, b.ImageURL, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return Billboard{}, fmt.Errorf("failed to insert billboard: %w", err)
	}
	return b, nil
}

func (c *Conf) GetBillboardByID(ctx context.Context, storeID, billboardID string) (Billboard, error) {
	query := `
		SELECT id, store_id, label, image_url, created_at, updated_at
		FROM billboards
		WHERE id = $1 AND store_id = $2
	`
	var b Billboard
	err := c.db.QueryRowContext(ctx, query, billboardID, storeID).
		Scan(&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Billboard{}, fmt.Errorf("failed to get billboard: %w", err)
	}
	return b, nil
}

func (c *Conf) ListBillboards(ctx context.Context, storeID string) ([]Billboard, error) {
	query := `
		SELECT id, store_id, label, image_url, created_at, updated_at
		FROM billboards
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query billboards: %w", err)
	}
	defer rows.Close()

	var billboards []Billboard
	for rows.Next() {
		var b Billboard
		if err := rows.Scan(&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan billboard: %w", err)
		}
		billboards = append(billboards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating billboards: %w", err)
	}
	return billboards, nil
}

func (c *Conf) UpdateBillboard(ctx context.Context, storeID, billboardID string, nb NewBillboard) (Billboard, error) {
	query := `
		UPDATE billboards
		SET label = $1, image_url = $2, updated_at = NOW()
		WHERE id = $3 AND store_id = $4
		RETURNING id, store_id, label, image_url, created_at, updated_at
	`
	var b Billboard
	err := c.db.QueryRowContext(ctx, query, nb.Label, nb.ImageURL, billboardID, storeID).
		Scan(&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Billboard{}, fmt.Errorf("failed to update billboard: %w", err)
	}
	return b, nil
}

// DeleteBillboard fails with a foreign key violation while a category still
// references the billboard.
func (c *Conf) DeleteBillboard(ctx context.Context, storeID, billboardID string) (Billboard, error) {
	query := `
		DELETE FROM billboards
		WHERE id = $1 AND store_id = $2
		RETURNING id, store_id, label, image_url, created_at, updated_at
	`
	var b Billboard
	err := c.db.QueryRowContext(ctx, query, billboardID, storeID).
		Scan(&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return Billboard{}, fmt.Errorf("failed to delete billboard: %w", err)
	}
	return b, nil
}
