package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/stylahq/styla-backend/internal/dto"
	"github.com/stylahq/styla-backend/internal/middleware"
	"github.com/stylahq/styla-backend/internal/services"
)

type BoxHandler struct {
	boxes *services.BoxService
}

func NewBoxHandler(boxes *services.BoxService) *BoxHandler {
	return &BoxHandler{boxes: boxes}
}

// CreateBox assembles a box for a customer. Admin-only; the route carries
// the AdminRequired middleware.
func (h *BoxHandler) CreateBox(c *fiber.Ctx) error {
	var req dto.CreateBoxRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	boxID, err := h.boxes.CreateBox(req.CustomerID, req.ProductIDs)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyBox),
			errors.Is(err, services.ErrDuplicateProduct),
			errors.Is(err, services.ErrProductMissing):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, services.ErrCustomerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("box creation failed", "action", "box.create", "customer_id", req.CustomerID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	slog.Info("box created", "action", "box.create", "box_id", boxID, "customer_id", req.CustomerID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Box created"})
}

// ListBoxes returns joined box × product rows, all of them for admins and
// only the caller's own otherwise.
func (h *BoxHandler) ListBoxes(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	rows, err := h.boxes.ListBoxesFor(user)
	if err != nil {
		slog.Error("box listing failed", "action", "box.list", "user_id", user.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(rows)
}

// NewestBox returns the caller's latest box contents; an empty data array
// when no box has been curated yet.
func (h *BoxHandler) NewestBox(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	items, err := h.boxes.NewestBox(user.ID)
	if err != nil {
		slog.Error("newest box lookup failed", "action", "box.newest", "user_id", user.ID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(dto.NewestBoxResponse{Data: items})
}
