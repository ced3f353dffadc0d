package ledger

import (
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/ogarmory/armory-backend/internal/user"
)

// UserDirectory is the slice of the user service the ledger handler needs.
type UserDirectory interface {
	GetByID(id int) (user.User, error)
	ClearPurchaseIDs(id int) error
}

// Handler serves purchase history. It reads the id list stored on the user
// row and resolves it against the ledger, so history keeps checkout order.
type Handler struct {
	service *Service
	users   UserDirectory
}

func NewHandler(s *Service, users UserDirectory) *Handler {
	return &Handler{service: s, users: users}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/purchases", h.getPurchases)
	app.Get("/api/v1/purchases/gate", h.getGate)

	// dev-only: wipes the user's ledger, enabled when ALLOW_RESET_PURCHASES=1
	app.Post("/dev/reset-purchases", h.resetPurchases)
}

func (h *Handler) getPurchases(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	usr, err := h.users.GetByID(userID)
	if err != nil {
		switch err {
		case user.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	records, err := h.service.ListByIDs(usr.PurchaseIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(records)
}

func (h *Handler) getGate(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}
	return c.JSON(fiber.Map{"hasPurchased": h.service.HasPurchased(userID)})
}

func (h *Handler) resetPurchases(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_RESET_PURCHASES") != "1" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "reset not allowed"})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	if err := h.service.Reset(userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.users.ClearPurchaseIDs(userID); err != nil && err != user.ErrNotFound {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "purchase history cleared"})
}
