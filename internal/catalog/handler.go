package catalog

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ogarmory/armory-backend/internal/pricing"
	"github.com/ogarmory/armory-backend/internal/user"
)

// GateFunc answers whether the purchase gate is open for a user (has the
// user ever completed a checkout). Injected so catalog does not depend on
// the ledger package directly.
type GateFunc func(userID int) bool

type Handler struct {
	loader *Loader
	gate   GateFunc
}

func NewHandler(loader *Loader, gate GateFunc) *Handler {
	return &Handler{loader: loader, gate: gate}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/product/:id", h.getProduct)

	// dev-only endpoint to drop the catalog cache, enabled when ALLOW_CATALOG_REFRESH=1
	app.Post("/dev/refresh-catalog", h.refreshCatalog)
}

// productView decorates a product with the display fields the storefront
// renders directly: formatted price, markdown percent and the stock number
// (flagged when it is an estimate rather than real inventory).
type productView struct {
	Product
	DisplayPrice   string `json:"displayPrice"`
	DiscountPct    int    `json:"discountPct,omitempty"`
	DisplayStock   int    `json:"displayStock"`
	StockEstimated bool   `json:"stockEstimated"`
}

func newProductView(p Product) productView {
	stock, estimated := DisplayStock(p)
	return productView{
		Product:        p,
		DisplayPrice:   pricing.Format(p.Price),
		DiscountPct:    pricing.DiscountPercent(p.OriginalPrice, p.Price),
		DisplayStock:   stock,
		StockEstimated: estimated,
	}
}

func (h *Handler) gateOpen(c *fiber.Ctx) bool {
	if h.gate == nil {
		return false
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return false
	}
	return h.gate(userID)
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	opts := Options{
		Category:         c.Query("category"),
		Badge:            c.Query("filter"),
		IncludeVault:     c.Query("includeVault") == "true",
		PurchaseGateOpen: h.gateOpen(c),
	}

	products := Filter(h.loader.Load(c.Context()), opts)

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return c.JSON(views)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	products := h.loader.Load(c.Context())

	for _, p := range products {
		if p.ID.String() != id && !strings.EqualFold(p.Handle, id) {
			continue
		}
		// direct product fetches still honor the purchase gate
		if p.RequiresPurchaseUnlock && !h.gateOpen(c) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		}
		return c.JSON(newProductView(p))
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
}

func (h *Handler) refreshCatalog(c *fiber.Ctx) error {
	if os.Getenv("ALLOW_CATALOG_REFRESH") != "1" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "refresh not allowed"})
	}
	h.loader.Invalidate(c.Context())
	return c.JSON(fiber.Map{"message": "catalog cache cleared"})
}
