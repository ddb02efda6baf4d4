package products

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Conf struct {
	db *sql.DB
}

func NewConf(db *sql.DB) (*Conf, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Conf{db: db}, nil
}

// InsertProduct creates the product row and its images in one transaction.
func (c *Conf) InsertProduct(ctx context.Context, storeID string, np NewProduct) (Product, error) {
	now := time.Now().UTC()
	p := Product{
		ID:         uuid.NewString(),
		StoreID:    storeID,
		CategoryID: np.CategoryID,
		SizeID:     np.SizeID,
		ColorID:    np.ColorID,
		Name:       np.Name,
		PriceCents: np.PriceCents,
		IsFeatured: np.IsFeatured,
		IsArchived: np.IsArchived,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := c.withTx(ctx, func(tx *sql.Tx) error {
		queryProduct := `
			INSERT INTO products (id, store_id, category_id, size_id, color_id, name,
			                      price_cents, is_featured, is_archived, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`
		_, err := tx.ExecContext(ctx, queryProduct, p.ID, p.StoreID, p.CategoryID, p.SizeID, p.ColorID,
			p.Name, p.PriceCents, p.IsFeatured, p.IsArchived, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert product: %w", err)
		}

		images, err := insertImages(ctx, tx, p.ID, np.Images)
		if err != nil {
			return err
		}
		p.Images = images
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *Conf) GetProductByID(ctx context.Context, storeID, productID string) (Product, error) {
	query := `
		SELECT id, store_id, category_id, size_id, color_id, name,
		       price_cents, is_featured, is_archived, created_at, updated_at
		FROM products
		WHERE id = $1 AND store_id = $2
	`
	var p Product
	err := c.db.QueryRowContext(ctx, query, productID, storeID).Scan(
		&p.ID, &p.StoreID, &p.CategoryID, &p.SizeID, &p.ColorID, &p.Name,
		&p.PriceCents, &p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Product{}, fmt.Errorf("failed to get product: %w", err)
	}

	images, err := c.imagesByProduct(ctx, []string{p.ID})
	if err != nil {
		return Product{}, err
	}
	p.Images = images[p.ID]
	return p, nil
}

// ListProducts is the public catalog listing: archived products are always
// excluded and results come back newest first.
func (c *Conf) ListProducts(ctx context.Context, storeID string, filter ListFilter) ([]Product, error) {
	queryBuilder := strings.Builder{}
	queryBuilder.WriteString(`
		SELECT id, store_id, category_id, size_id, color_id, name,
		       price_cents, is_featured, is_archived, created_at, updated_at
		FROM products
		WHERE store_id = $1 AND is_archived = FALSE
	`)

	args := []interface{}{storeID}
	argIndex := 2

	if filter.CategoryID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND category_id = $%d", argIndex))
		args = append(args, filter.CategoryID)
		argIndex++
	}
	if filter.SizeID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND size_id = $%d", argIndex))
		args = append(args, filter.SizeID)
		argIndex++
	}
	if filter.ColorID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND color_id = $%d", argIndex))
		args = append(args, filter.ColorID)
		argIndex++
	}
	if filter.FeaturedOnly {
		queryBuilder.WriteString(" AND is_featured = TRUE")
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := c.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []Product
	var ids []string
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.SizeID, &p.ColorID, &p.Name,
			&p.PriceCents, &p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	images, err := c.imagesByProduct(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range result {
		result[i].Images = images[result[i].ID]
	}
	return result, nil
}

// GetProductsByIDs returns the purchasable (non archived) products among ids,
// scoped to the store. Callers compare lengths to detect unknown or archived
// products.
func (c *Conf) GetProductsByIDs(ctx context.Context, storeID string, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	query := `
		SELECT id, store_id, category_id, size_id, color_id, name,
		       price_cents, is_featured, is_archived, created_at, updated_at
		FROM products
		WHERE store_id = $1 AND id = ANY($2) AND is_archived = FALSE
	`
	rows, err := c.db.QueryContext(ctx, query, storeID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by ids: %w", err)
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.CategoryID, &p.SizeID, &p.ColorID, &p.Name,
			&p.PriceCents, &p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return result, nil
}

// UpdateProduct replaces the mutable fields and the entire image collection
// (delete all, insert all) in one transaction.
func (c *Conf) UpdateProduct(ctx context.Context, storeID, productID string, np NewProduct) (Product, error) {
	var p Product
	err := c.withTx(ctx, func(tx *sql.Tx) error {
		queryProduct := `
			UPDATE products
			SET category_id = $1, size_id = $2, color_id = $3, name = $4,
			    price_cents = $5, is_featured = $6, is_archived = $7, updated_at = NOW()
			WHERE id = $8 AND store_id = $9
			RETURNING id, store_id, category_id, size_id, color_id, name,
			          price_cents, is_featured, is_archived, created_at, updated_at
		`
		err := tx.QueryRowContext(ctx, queryProduct, np.CategoryID, np.SizeID, np.ColorID, np.Name,
			np.PriceCents, np.IsFeatured, np.IsArchived, productID, storeID).Scan(
			&p.ID, &p.StoreID, &p.CategoryID, &p.SizeID, &p.ColorID, &p.Name,
			&p.PriceCents, &p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM product_images WHERE product_id = $1`, p.ID); err != nil {
			return fmt.Errorf("failed to delete product images: %w", err)
		}

		images, err := insertImages(ctx, tx, p.ID, np.Images)
		if err != nil {
			return err
		}
		p.Images = images
		return nil
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (c *Conf) DeleteProduct(ctx context.Context, storeID, productID string) (Product, error) {
	query := `
		DELETE FROM products
		WHERE id = $1 AND store_id = $2
		RETURNING id, store_id, category_id, size_id, color_id, name,
		          price_cents, is_featured, is_archived, created_at, updated_at
	`
	var p Product
	err := c.db.QueryRowContext(ctx, query, productID, storeID).Scan(
		&p.ID, &p.StoreID, &p.CategoryID, &p.SizeID, &p.ColorID, &p.Name,
		&p.PriceCents, &p.IsFeatured, &p.IsArchived, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Product{}, fmt.Errorf("failed to delete product: %w", err)
	}
	return p, nil
}

func insertImages(ctx context.Context, tx *sql.Tx, productID string, newImages []NewImage) ([]Image, error) {
	queryImage := `
		INSERT INTO product_images (id, product_id, url, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`
	images := make([]Image, 0, len(newImages))
	for _, ni := range newImages {
		img := Image{
			ID:        uuid.NewString(),
			ProductID: productID,
			URL:       ni.URL,
		}
		if _, err := tx.ExecContext(ctx, queryImage, img.ID, img.ProductID, img.URL); err != nil {
			return nil, fmt.Errorf("failed to insert product image: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}

func (c *Conf) imagesByProduct(ctx context.Context, productIDs []string) (map[string][]Image, error) {
	result := make(map[string][]Image)
	if len(productIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, product_id, url
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY created_at
	`
	rows, err := c.db.QueryContext(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL); err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}
		result[img.ProductID] = append(result[img.ProductID], img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product images: %w", err)
	}
	return result, nil
}

func (c *Conf) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if er := tx.Rollback(); er != nil && !errors.Is(er, sql.ErrTxDone) {
			return fmt.Errorf("failed to rollback withTx: %w", err)
		}
		return fmt.Errorf("failed to execute withTx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit withTx: %w", err)
	}
	return nil
}
