package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"coffee-shop/internal/database"
)

type DrinkRepository struct {
	db *sql.DB
}

func NewDrinkRepository(db *sql.DB) *DrinkRepository {
	return &DrinkRepository{db: db}
}

// Ping verifies the underlying database connection
func (r *DrinkRepository) Ping() error {
	return r.db.Ping()
}

// GetAllDrinks retrieves every drink in the catalog
func (r *DrinkRepository) GetAllDrinks() ([]*database.Drink, error) {
	query := `
        SELECT id, title, recipe, created_at, updated_at
        FROM drinks
        ORDER BY id
    `

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drinks []*database.Drink
	for rows.Next() {
		drink, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		drinks = append(drinks, drink)
	}

	return drinks, rows.Err()
}

// GetDrinkByID retrieves a single drink by its id
func (r *DrinkRepository) GetDrinkByID(id int64) (*database.Drink, error) {
	query := `
        SELECT id, title, recipe, created_at, updated_at
        FROM drinks
        WHERE id = ?
    `

	var drink database.Drink
	var recipeJSON string
	err := r.db.QueryRow(query, id).Scan(
		&drink.ID, &drink.Title, &recipeJSON, &drink.CreatedAt, &drink.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(recipeJSON), &drink.Recipe); err != nil {
		return nil, fmt.Errorf("corrupt recipe for drink %d: %v", id, err)
	}

	return &drink, nil
}

// CreateDrink inserts a new drink and fills in its generated id
func (r *DrinkRepository) CreateDrink(drink *database.Drink) error {
	recipeJSON, err := json.Marshal(drink.Recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %v", err)
	}

	query := `
        INSERT INTO drinks (title, recipe, created_at, updated_at)
        VALUES (?, ?, ?, ?)
    `

	now := time.Now()
	result, err := r.db.Exec(query, drink.Title, string(recipeJSON), now, now)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	drink.ID = id
	drink.CreatedAt = now
	drink.UpdatedAt = now
	return nil
}

// UpdateDrink updates a drink's title and recipe
func (r *DrinkRepository) UpdateDrink(drink *database.Drink) error {
	recipeJSON, err := json.Marshal(drink.Recipe)
	if err != nil {
		return fmt.Errorf("failed to encode recipe: %v", err)
	}

	query := `
        UPDATE drinks
        SET title = ?, recipe = ?, updated_at = ?
        WHERE id = ?
    `

	now := time.Now()
	result, err := r.db.Exec(query, drink.Title, string(recipeJSON), now, drink.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	drink.UpdatedAt = now
	return nil
}

// DeleteDrink removes a drink by id
func (r *DrinkRepository) DeleteDrink(id int64) error {
	result, err := r.db.Exec(`DELETE FROM drinks WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func scanDrink(rows *sql.Rows) (*database.Drink, error) {
	var drink database.Drink
	var recipeJSON string
	if err := rows.Scan(&drink.ID, &drink.Title, &recipeJSON, &drink.CreatedAt, &drink.UpdatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(recipeJSON), &drink.Recipe); err != nil {
		return nil, fmt.Errorf("corrupt recipe for drink %d: %v", drink.ID, err)
	}

	return &drink, nil
}
