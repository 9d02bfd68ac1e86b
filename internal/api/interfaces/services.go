package interfaces

import (
	"coffee-shop/internal/database/repositories"
	"coffee-shop/pkg/config"
	"coffee-shop/pkg/logger"
)

// Services defines the interface for API services
type Services interface {
	GetLogger() *logger.Logger
	GetConfig() *config.Config
	Authorizer() Authorizer
	DrinkRepository() *repositories.DrinkRepository
}
