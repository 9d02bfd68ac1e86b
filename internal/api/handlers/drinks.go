package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"coffee-shop/internal/api/interfaces"
	"coffee-shop/internal/api/middlewares"
	"coffee-shop/internal/api/models"
	"coffee-shop/internal/database"

	"github.com/gin-gonic/gin"
)

// GetDrinks handles the public drink listing with the short recipe
// representation
func GetDrinks(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		drinks, err := services.DrinkRepository().GetAllDrinks()
		if err != nil {
			services.GetLogger().Error("Failed to list drinks: %v", err)
			c.JSON(http.StatusInternalServerError, models.NewError(http.StatusInternalServerError))
			return
		}

		short := make([]database.DrinkShort, 0, len(drinks))
		for _, drink := range drinks {
			short = append(short, drink.Short())
		}

		c.JSON(http.StatusOK, models.DrinksResponse{Success: true, Drinks: short})
	}
}

// GetDrinksDetail handles the detailed drink listing. Requires the
// get:drinks-detail permission.
func GetDrinksDetail(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := middlewares.GetClaims(c)
		if claims == nil {
			// Route was wired without the auth middleware
			c.JSON(http.StatusInternalServerError, models.NewError(http.StatusInternalServerError))
			return
		}

		drinks, err := services.DrinkRepository().GetAllDrinks()
		if err != nil {
			services.GetLogger().Error("Failed to list drinks: %v", err)
			c.JSON(http.StatusInternalServerError, models.NewError(http.StatusInternalServerError))
			return
		}

		long := make([]database.DrinkLong, 0, len(drinks))
		for _, drink := range drinks {
			long = append(long, drink.Long())
		}

		c.JSON(http.StatusOK, models.DrinksResponse{Success: true, Drinks: long})
	}
}

// CreateDrink handles new drink submissions. Requires the post:drinks
// permission.
func CreateDrink(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateDrinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			services.GetLogger().Warning("Invalid drink submission: %v", err)
			c.JSON(http.StatusBadRequest, models.NewError(http.StatusBadRequest))
			return
		}

		drink := &database.Drink{
			Title:  req.Title,
			Recipe: req.Recipe,
		}

		if err := services.DrinkRepository().CreateDrink(drink); err != nil {
			services.GetLogger().Error("Failed to create drink %q: %v", req.Title, err)
			c.JSON(http.StatusUnprocessableEntity, models.NewError(http.StatusUnprocessableEntity))
			return
		}

		services.GetLogger().Info("Drink created - id: %d, title: %s", drink.ID, drink.Title)

		c.JSON(http.StatusOK, models.DrinksResponse{
			Success: true,
			Drinks:  []database.DrinkLong{drink.Long()},
		})
	}
}

// UpdateDrink handles partial drink updates. Requires the patch:drinks
// permission.
func UpdateDrink(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, models.NewError(http.StatusNotFound))
			return
		}

		var req models.UpdateDrinkRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			services.GetLogger().Warning("Invalid drink update: %v", err)
			c.JSON(http.StatusBadRequest, models.NewError(http.StatusBadRequest))
			return
		}

		drink, err := services.DrinkRepository().GetDrinkByID(id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, models.NewError(http.StatusNotFound))
				return
			}
			services.GetLogger().Error("Failed to load drink %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, models.NewError(http.StatusInternalServerError))
			return
		}

		if req.Title != "" {
			drink.Title = req.Title
		}
		if req.Recipe != nil {
			drink.Recipe = req.Recipe
		}

		if err := services.DrinkRepository().UpdateDrink(drink); err != nil {
			services.GetLogger().Error("Failed to update drink %d: %v", id, err)
			c.JSON(http.StatusUnprocessableEntity, models.NewError(http.StatusUnprocessableEntity))
			return
		}

		services.GetLogger().Info("Drink updated - id: %d, title: %s", drink.ID, drink.Title)

		c.JSON(http.StatusOK, models.DrinksResponse{
			Success: true,
			Drinks:  []database.DrinkLong{drink.Long()},
		})
	}
}

// DeleteDrink removes a drink. Requires the delete:drinks permission.
func DeleteDrink(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, models.NewError(http.StatusNotFound))
			return
		}

		if err := services.DrinkRepository().DeleteDrink(id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				c.JSON(http.StatusNotFound, models.NewError(http.StatusNotFound))
				return
			}
			services.GetLogger().Error("Failed to delete drink %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, models.NewError(http.StatusInternalServerError))
			return
		}

		services.GetLogger().Info("Drink deleted - id: %d", id)

		c.JSON(http.StatusOK, models.DeleteResponse{Success: true, DeletedID: id})
	}
}
