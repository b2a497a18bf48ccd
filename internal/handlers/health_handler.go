package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stylahq/styla-backend/internal/database"
	"github.com/stylahq/styla-backend/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy"
	}

	return c.JSON(dto.HealthResponse{
		Message: "Server ok!",
		DB:      dbStatus,
	})
}
