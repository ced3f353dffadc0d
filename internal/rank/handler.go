package rank

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/ogarmory/armory-backend/internal/storefront"
	"github.com/ogarmory/armory-backend/internal/user"
)

// OrderSource provides the external order history that defines cumulative
// spend. Rank is driven by settled orders on the commerce backend; the
// local ledger only answers whether a user has ever checked out.
type OrderSource interface {
	Orders(ctx context.Context, customerToken string) ([]storefront.Order, error)
}

// UserDirectory resolves the stored customer access token.
type UserDirectory interface {
	GetByID(id int) (user.User, error)
}

type Handler struct {
	orders OrderSource
	users  UserDirectory
}

func NewHandler(orders OrderSource, users UserDirectory) *Handler {
	return &Handler{orders: orders, users: users}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/rank", h.getRank)
}

func (h *Handler) getRank(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	usr, err := h.users.GetByID(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "user not found"})
	}

	// no linked commerce account yet: rank from zero spend
	if usr.StorefrontToken == "" {
		return c.JSON(Compute(0))
	}

	orders, err := h.orders.Orders(c.Context(), usr.StorefrontToken)
	if err != nil {
		// backend failures are surfaced, not silently degraded to tier zero
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "could not load order history"})
	}

	totals := make([]float64, 0, len(orders))
	for _, o := range orders {
		totals = append(totals, o.TotalPrice)
	}
	return c.JSON(Compute(CumulativeSpend(totals)))
}
