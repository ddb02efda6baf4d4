package categories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"store-admin-service/internal/billboards"

	"github.com/google/uuid"
)

type Category struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"store_id"`
	BillboardID string    `json:"billboard_id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Billboard is populated on single reads only.
	Billboard *billboards.Billboard `json:"billboard,omitempty"`
}

type NewCategory struct {
	Name        string `json:"name" validate:"required"`
	BillboardID string `json:"billboard_id" validate:"required"`
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

func (c *Conf) InsertCategory(ctx context.Context, storeID string, nc NewCategory) (Category, error) {
	now := time.Now().UTC()
	cat := Category{
		ID:          uuid.NewString(),
		StoreID:     storeID,
		BillboardID: nc.BillboardID,
		Name:        nc.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO categories (id, store_id, billboard_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := c.db.ExecContext(ctx, query, cat.ID, cat.StoreID, cat.BillboardID, cat.Name, cat.CreatedAt, cat.UpdatedAt)
	if err != nil {
		return Category{}, fmt.Errorf("failed to insert category: %w", err)
	}
	return cat, nil
}

// GetCategoryByID returns the category together with its billboard, which the
// storefront needs to render a category page.
func (c *Conf) GetCategoryByID(ctx context.Context, storeID, categoryID string) (Category, error) {
	query := `
		SELECT c.id, c.store_id, c.billboard_id, c.name, c.created_at, c.updated_at,
		       b.id, b.store_id, b.label, b.image_url, b.created_at, b.updated_at
		FROM categories c
		JOIN billboards b ON b.id = c.billboard_id
		WHERE c.id = $1 AND c.store_id = $2
	`
	var cat Category
	var b billboards.Billboard
	err := c.db.QueryRowContext(ctx, query, categoryID, storeID).Scan(
		&cat.ID, &cat.StoreID, &cat.BillboardID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt,
		&b.ID, &b.StoreID, &b.Label, &b.ImageURL, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get category: %w", err)
	}
	cat.Billboard = &b
	return cat, nil
}

func (c *Conf) ListCategories(ctx context.Context, storeID string) ([]Category, error) {
	query := `
		SELECT id, store_id, billboard_id, name, created_at, updated_at
		FROM categories
		WHERE store_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.StoreID, &cat.BillboardID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func (c *Conf) UpdateCategory(ctx context.Context, storeID, categoryID string, nc NewCategory) (Category, error) {
	query := `
		UPDATE categories
		SET name = $1, billboard_id = $2, updated_at = NOW()
		WHERE id = $3 AND store_id = $4
		RETURNING id, store_id, billboard_id, name, created_at, updated_at
	`
	var cat Category
	err := c.db.QueryRowContext(ctx, query, nc.Name, nc.BillboardID, categoryID, storeID).
		Scan(&cat.ID, &cat.StoreID, &cat.BillboardID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return Category{}, fmt.Errorf("failed to update category: %w", err)
	}
	return cat, nil
}

// DeleteCategory fails with a foreign key violation while a product still
// references the category.
func (c *Conf) DeleteCategory(ctx context.Context, storeID, categoryID string) (Category, error) {
	query := `
		DELETE FROM categories
		WHERE id = $1 AND store_id = $2
		RETURNING id, store_id, billboard_id, name, created_at, updated_at
	`
	var cat Category
	err := c.db.QueryRowContext(ctx, query, categoryID, storeID).
		Scan(&cat.ID, &cat.StoreID, &cat.BillboardID, &cat.Name, &cat.CreatedAt, &cat.UpdatedAt)
	if err != nil {
		return Category{}, fmt.Errorf("failed to delete category: %w", err)
	}
	return cat, nil
}
