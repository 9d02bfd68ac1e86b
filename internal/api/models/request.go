package models

import "coffee-shop/internal/database"

// CreateDrinkRequest represents a new drink submission
type CreateDrinkRequest struct {
	Title  string                `json:"title" binding:"required"`
	Recipe []database.Ingredient `json:"recipe" binding:"required,min=1"`
}

// UpdateDrinkRequest represents a partial drink update; omitted fields keep
// their current value
type UpdateDrinkRequest struct {
	Title  string                `json:"title"`
	Recipe []database.Ingredient `json:"recipe"`
}
