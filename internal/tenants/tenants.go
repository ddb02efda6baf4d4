// Package tenants owns the store rows that scope every other entity. A store
// row pairs a store id with the identity-provider user id of its owner; that
// pair is the authorization check for every mutation in the service.
package tenants

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NewStore struct {
	Name string `json:"name" validate:"required"`
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

func (c *Conf) InsertStore(ctx context.Context, userID string, ns NewStore) (Store, error) {
	now := time.Now().UTC()
	store := Store{
		ID:        uuid.NewString(),
		Name:      ns.Name,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `
		INSERT INTO stores (id, name, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := c.db.ExecContext(ctx, query, store.ID, store.Name, store.UserID, store.CreatedAt, store.UpdatedAt)
	if err != nil {
		return Store{}, fmt.Errorf("failed to insert store: %w", err)
	}
	return store, nil
}

func (c *Conf) ListStoresByUser(ctx context.Context, userID string) ([]Store, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM stores
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []Store
	for rows.Next() {
		var s Store
		if err := rows.Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stores: %w", err)
	}
	return stores, nil
}

// StoreOwnedBy reports whether the store exists and belongs to the user.
func (c *Conf) StoreOwnedBy(ctx context.Context, storeID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stores WHERE id = $1 AND user_id = $2
		)
	`
	var owned bool
	if err := c.db.QueryRowContext(ctx, query, storeID, userID).Scan(&owned); err != nil {
		return false, fmt.Errorf("failed to check store ownership: %w", err)
	}
	return owned, nil
}

// UpdateStore renames a store. The WHERE clause carries the ownership check;
// sql.ErrNoRows means the store does not exist or is not owned by the caller.
func (c *Conf) UpdateStore(ctx context.Context, storeID, userID, name string) (Store, error) {
	query := `
		UPDATE stores
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING id, name, user_id, created_at, updated_at
	`
	var s Store
	err := c.db.QueryRowContext(ctx, query, name, storeID, userID).
		Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Store{}, fmt.Errorf("failed to update store: %w", err)
	}
	return s, nil
}

// DeleteStore removes a store owned by the user; sql.ErrNoRows means the
// store does not exist or is not owned by the caller.
func (c *Conf) DeleteStore(ctx context.Context, storeID, userID string) (Store, error) {
	query := `
		DELETE FROM stores
		WHERE id = $1 AND user_id = $2
		RETURNING id, name, user_id, created_at, updated_at
	`
	var s Store
	err := c.db.QueryRowContext(ctx, query, storeID, userID).
		Scan(&s.ID, &s.Name, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Store{}, fmt.Errorf("failed to delete store: %w", err)
	}
	return s, nil
}
