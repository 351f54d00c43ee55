package domain

import "time"

// FeaturedItem pins a product to a position on the storefront landing page.
type FeaturedItem struct {
	ID        string
	ProductID string
	Position  int
	CreatedAt time.Time
}
