package repositories

import (
	"database/sql"
	"testing"

	"coffee-shop/internal/database"
	"coffee-shop/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *DrinkRepository {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Type:         "sqlite",
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}

	db, err := database.NewConnection(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.RunMigrations(db))
	return NewDrinkRepository(db)
}

func sampleDrink(title string) *database.Drink {
	return &database.Drink{
		Title: title,
		Recipe: []database.Ingredient{
			{Name: "espresso", Color: "brown", Parts: 1},
			{Name: "steamed milk", Color: "white", Parts: 2},
		},
	}
}

func TestCreateAndGetDrink(t *testing.T) {
	repo := setupTestRepository(t)

	drink := sampleDrink("Cappuccino")
	require.NoError(t, repo.CreateDrink(drink))
	assert.NotZero(t, drink.ID)
	assert.False(t, drink.CreatedAt.IsZero())

	got, err := repo.GetDrinkByID(drink.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cappuccino", got.Title)
	require.Len(t, got.Recipe, 2)
	assert.Equal(t, "espresso", got.Recipe[0].Name)
	assert.Equal(t, 2, got.Recipe[1].Parts)
}

func TestGetAllDrinksOrdering(t *testing.T) {
	repo := setupTestRepository(t)

	for _, title := range []string{"Americano", "Latte", "Mocha"} {
		require.NoError(t, repo.CreateDrink(sampleDrink(title)))
	}

	drinks, err := repo.GetAllDrinks()
	require.NoError(t, err)
	require.Len(t, drinks, 3)
	assert.Equal(t, "Americano", drinks[0].Title)
	assert.Equal(t, "Mocha", drinks[2].Title)
}

func TestDuplicateTitleRejected(t *testing.T) {
	repo := setupTestRepository(t)

	require.NoError(t, repo.CreateDrink(sampleDrink("Cortado")))
	assert.Error(t, repo.CreateDrink(sampleDrink("Cortado")))
}

func TestUpdateDrink(t *testing.T) {
	repo := setupTestRepository(t)

	drink := sampleDrink("Macchiato")
	require.NoError(t, repo.CreateDrink(drink))

	drink.Title = "Caramel Macchiato"
	drink.Recipe = append(drink.Recipe, database.Ingredient{Name: "caramel", Color: "amber", Parts: 1})
	require.NoError(t, repo.UpdateDrink(drink))

	got, err := repo.GetDrinkByID(drink.ID)
	require.NoError(t, err)
	assert.Equal(t, "Caramel Macchiato", got.Title)
	assert.Len(t, got.Recipe, 3)
}

func TestUpdateMissingDrink(t *testing.T) {
	repo := setupTestRepository(t)

	drink := sampleDrink("Phantom")
	drink.ID = 42
	assert.ErrorIs(t, repo.UpdateDrink(drink), sql.ErrNoRows)
}

func TestDeleteDrink(t *testing.T) {
	repo := setupTestRepository(t)

	drink := sampleDrink("Ristretto")
	require.NoError(t, repo.CreateDrink(drink))

	require.NoError(t, repo.DeleteDrink(drink.ID))

	_, err := repo.GetDrinkByID(drink.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.ErrorIs(t, repo.DeleteDrink(drink.ID), sql.ErrNoRows)
}

func TestGetMissingDrink(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.GetDrinkByID(999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
