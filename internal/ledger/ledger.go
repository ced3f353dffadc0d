package ledger

import (
	"github.com/ogarmory/armory-backend/internal/cart"
)

// MethodDeepLink tags records created by the outbound deep-link checkout,
// the only checkout channel this service hands off to.
const MethodDeepLink = "deeplink-checkout"

// PurchaseRecord is one completed checkout hand-off. Records are append-only
// and never mutated; the items slice is a snapshot of the cart at checkout.
type PurchaseRecord struct {
	ID        int             `json:"purchaseId"`
	Timestamp string          `json:"timestamp"`
	Items     []cart.LineItem `json:"items"`
	Total     float64         `json:"total"`
	Method    string          `json:"method"`
}
