package products

import "time"

type Product struct {
	ID         string    `json:"id"`
	StoreID    string    `json:"store_id"`
	CategoryID string    `json:"category_id"`
	SizeID     string    `json:"size_id"`
	ColorID    string    `json:"color_id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price"` // smallest currency unit
	IsFeatured bool      `json:"is_featured"`
	IsArchived bool      `json:"is_archived"`
	Images     []Image   `json:"images"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Image struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	URL       string `json:"url"`
}

type NewProduct struct {
	Name       string     `json:"name" validate:"required"`
	PriceCents int64      `json:"price" validate:"required,min=1"`
	CategoryID string     `json:"category_id" validate:"required"`
	SizeID     string     `json:"size_id" validate:"required"`
	ColorID    string     `json:"color_id" validate:"required"`
	IsFeatured bool       `json:"is_featured"`
	IsArchived bool       `json:"is_archived"`
	Images     []NewImage `json:"images" validate:"required,min=1,dive"`
}

type NewImage struct {
	URL string `json:"url" validate:"required"`
}

// ListFilter narrows the public product listing. Zero values mean
// "no filter"; archived products are always excluded.
type ListFilter struct {
	CategoryID   string
	SizeID       string
	ColorID      string
	FeaturedOnly bool
}
