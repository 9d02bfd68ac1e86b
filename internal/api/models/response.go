package models

// ErrorResponse is the wire envelope for every error the API emits
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   int    `json:"error" example:"404"`
	Message string `json:"message" example:"Not Found Resource"`
}

// DrinksResponse wraps a drink list (short or long representation)
type DrinksResponse struct {
	Success bool        `json:"success" example:"true"`
	Drinks  interface{} `json:"drinks"`
}

// DeleteResponse confirms a deletion
type DeleteResponse struct {
	Success   bool  `json:"success" example:"true"`
	DeletedID int64 `json:"deleted_id" example:"1"`
}

// HealthCheckResponse represents health check response
type HealthCheckResponse struct {
	Status    string `json:"status" example:"healthy"`
	Database  string `json:"database" example:"connected"`
	Timestamp int64  `json:"timestamp" example:"1640995200"`
	Version   string `json:"version" example:"1.0.0"`
}
