package api

import (
	"database/sql"

	"coffee-shop/internal/api/interfaces"
	"coffee-shop/internal/auth"
	"coffee-shop/internal/database/repositories"
	"coffee-shop/pkg/config"
	"coffee-shop/pkg/logger"
)

// Services contains all the dependencies for API handlers
type Services struct {
	DB     *sql.DB
	Logger *logger.Logger
	Config *config.Config

	authorizer      interfaces.Authorizer
	drinkRepository *repositories.DrinkRepository
}

// NewServices creates a new services container. The key set provider is
// injected so production wiring points at the identity provider's JWKS
// endpoint while tests supply a static in-memory set.
func NewServices(
	db *sql.DB,
	log *logger.Logger,
	cfg *config.Config,
	keys auth.KeySetProvider,
) *Services {
	services := &Services{
		DB:     db,
		Logger: log,
		Config: cfg,
	}

	services.authorizer = auth.NewAuthorizer(
		keys,
		cfg.Auth.Audience,
		cfg.Auth.Issuer,
		cfg.Auth.Algorithms,
	)

	services.drinkRepository = repositories.NewDrinkRepository(db)

	return services
}

// Interface implementation methods
func (s *Services) GetLogger() *logger.Logger {
	return s.Logger
}

func (s *Services) GetConfig() *config.Config {
	return s.Config
}

func (s *Services) Authorizer() interfaces.Authorizer {
	return s.authorizer
}

func (s *Services) DrinkRepository() *repositories.DrinkRepository {
	return s.drinkRepository
}

// IsHealthy checks if all critical services are healthy
func (s *Services) IsHealthy() bool {
	if err := s.DB.Ping(); err != nil {
		s.Logger.Error("Database health check failed: %v", err)
		return false
	}
	return true
}
