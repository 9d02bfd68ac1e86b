package database

import "time"

// Ingredient represents a single component of a drink recipe
type Ingredient struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// Drink represents a drink record with its recipe
type Drink struct {
	ID        int64        `db:"id" json:"id"`
	Title     string       `db:"title" json:"title"`
	Recipe    []Ingredient `db:"recipe" json:"recipe"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt time.Time    `db:"updated_at" json:"updated_at"`
}

// ShortIngredient is the public ingredient representation, without names
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// DrinkShort is the public representation of a drink
type DrinkShort struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// DrinkLong is the detailed representation of a drink, including ingredient
// names. Requires the get:drinks-detail permission to see.
type DrinkLong struct {
	ID     int64        `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// Short returns the public data representation of the drink
func (d *Drink) Short() DrinkShort {
	recipe := make([]ShortIngredient, len(d.Recipe))
	for i, ing := range d.Recipe {
		recipe[i] = ShortIngredient{Color: ing.Color, Parts: ing.Parts}
	}
	return DrinkShort{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Long returns the detailed data representation of the drink
func (d *Drink) Long() DrinkLong {
	return DrinkLong{ID: d.ID, Title: d.Title, Recipe: d.Recipe}
}
