package checkout

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ogarmory/armory-backend/internal/cart"
	"github.com/ogarmory/armory-backend/internal/ledger"
	"github.com/ogarmory/armory-backend/internal/pricing"
	"github.com/ogarmory/armory-backend/internal/user"
)

var ErrEmptyCart = errors.New("cart is empty")

// Summary is everything the hand-off produces. The service's responsibility
// ends here: payment happens on the external channel behind the deep link.
type Summary struct {
	Reference  string  `json:"reference"`
	PurchaseID int     `json:"purchaseId"`
	Text       string  `json:"text"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	GrandTotal float64 `json:"grandTotal"`
	DeepLink   string  `json:"deepLink"`
}

// UserDirectory is the slice of the user service checkout needs.
type UserDirectory interface {
	AppendPurchaseID(id int, purchaseID int) (user.User, error)
}

// Service packages the current cart into an order summary, records the
// purchase and clears the cart.
type Service struct {
	carts   *cart.Service
	records *ledger.Service
	users   UserDirectory

	taxRate     float64
	channelBase string
}

func NewService(carts *cart.Service, records *ledger.Service, users UserDirectory, taxRate float64, channelBase string) *Service {
	return &Service{
		carts:       carts,
		records:     records,
		users:       users,
		taxRate:     taxRate,
		channelBase: channelBase,
	}
}

func (s *Service) Checkout(userID int) (Summary, error) {
	current, err := s.carts.Get(userID)
	if err != nil {
		return Summary{}, err
	}
	if len(current.Items) == 0 {
		return Summary{}, ErrEmptyCart
	}

	reference := uuid.NewString()[:8]
	tax := current.Total * s.taxRate
	grand := current.Total + tax
	text := buildSummaryText(reference, current, tax, grand)

	rec, err := s.records.RecordPurchase(userID, current.Items, current.Total)
	if err != nil {
		return Summary{}, err
	}
	if _, err := s.users.AppendPurchaseID(userID, rec.ID); err != nil {
		// the record exists; a missing back-reference only affects history order
		log.Warn().Err(err).Int("user_id", userID).Msg("could not append purchaseId to user")
	}

	if err := s.carts.Clear(userID); err != nil {
		// the purchase is already recorded; failing now would invite a
		// double record on retry
		log.Warn().Err(err).Int("user_id", userID).Msg("could not clear cart after checkout")
	}

	return Summary{
		Reference:  reference,
		PurchaseID: rec.ID,
		Text:       text,
		Subtotal:   current.Total,
		Tax:        tax,
		GrandTotal: grand,
		DeepLink:   s.channelBase + "?text=" + url.QueryEscape(text),
	}, nil
}

func buildSummaryText(reference string, c cart.Cart, tax, grand float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "OG ARMORY ORDER %s\n", reference)
	for _, item := range c.Items {
		variant := item.Variant.Size
		if item.Variant.Color != "" {
			variant += "/" + item.Variant.Color
		}
		fmt.Fprintf(&b, "%dx %s (%s) @ %s\n", item.Quantity, item.Name, variant, pricing.Format(item.Price))
	}
	fmt.Fprintf(&b, "Subtotal: %s\n", pricing.Format(c.Total))
	fmt.Fprintf(&b, "Tax: %s\n", pricing.Format(tax))
	fmt.Fprintf(&b, "Total: %s", pricing.Format(grand))
	return b.String()
}
