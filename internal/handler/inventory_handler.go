package handler

import (
	"errors"

	"go-kickcraft/internal/ledger"
	"go-kickcraft/internal/model"
	"go-kickcraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// Helpers to pull user info from the JWT context (set by auth middleware)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

// errStatus maps service errors onto the three failure kinds callers need
// to tell apart: not found, rejected input, and store failure.
func errStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrShoeNotFound):
		return 404, err.Error()
	case errors.Is(err, service.ErrValidation):
		return 400, err.Error()
	default:
		return 503, "store unavailable: " + err.Error()
	}
}

// GetShoes lists the collection, filtered by the optional ?q= search term.
// GET /api/v1/shoes
func (h *InventoryHandler) GetShoes(c *fiber.Ctx) error {
	shoes, err := h.service.ListShoes(c.Query("q"))
	if err != nil {
		status, msg := errStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(shoes)
}

// GetShoe fetches a single shoe by id.
// GET /api/v1/shoes/:id
func (h *InventoryHandler) GetShoe(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shoe ID"})
	}

	shoe, err := h.service.GetShoe(id)
	if err != nil {
		status, msg := errStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}
	return c.JSON(shoe)
}

// CreateShoe adds a shoe with an empty sales ledger.
// POST /api/v1/shoes
func (h *InventoryHandler) CreateShoe(c *fiber.Ctx) error {
	var shoe model.Shoe
	if err := c.BodyParser(&shoe); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateShoe(&shoe, getUserID(c), getUserName(c)); err != nil {
		status, msg := errStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Shoe created", "data": shoe})
}

// UpdateShoe replaces all mutable fields; the caller must resend the full
// current value of fields it does not intend to change. The sales ledger
// grows by one entry exactly when the sales counter changed.
// PUT /api/v1/shoes/:id
func (h *InventoryHandler) UpdateShoe(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shoe ID"})
	}

	var in ledger.Update
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateShoe(id, in, getUserID(c), getUserName(c))
	if err != nil {
		status, msg := errStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{"message": "Shoe updated", "data": updated})
}

// DeleteShoe removes the shoe and its entire sales history.
// DELETE /api/v1/shoes/:id
func (h *InventoryHandler) DeleteShoe(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid shoe ID"})
	}

	if err := h.service.DeleteShoe(id, getUserID(c), getUserName(c)); err != nil {
		status, msg := errStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": msg})
	}

	return c.JSON(fiber.Map{"message": "Shoe deleted"})
}
