package ledger

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ogarmory/armory-backend/internal/cart"
)

// Service is the purchase ledger. It trusts its callers: items and total
// are recorded as given, since payment confirmation happens on the external
// channel after hand-off.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordPurchase appends an immutable, timestamped record.
func (s *Service) RecordPurchase(userID int, items []cart.LineItem, total float64) (PurchaseRecord, error) {
	if userID <= 0 {
		return PurchaseRecord{}, errors.New("invalid user")
	}
	if len(items) == 0 {
		return PurchaseRecord{}, errors.New("empty purchase")
	}

	rec := PurchaseRecord{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Items:     items,
		Total:     total,
		Method:    MethodDeepLink,
	}
	return s.repo.Append(userID, rec)
}

// HasPurchased is the purchase-gate signal: true once the user has at least
// one record. Storage errors close the gate rather than failing the caller.
func (s *Service) HasPurchased(userID int) bool {
	if userID <= 0 {
		return false
	}
	ok, err := s.repo.HasPurchased(userID)
	if err != nil {
		log.Warn().Err(err).Int("user_id", userID).Msg("purchase-gate lookup failed, treating as closed")
		return false
	}
	return ok
}

func (s *Service) ListByIDs(ids []int) ([]PurchaseRecord, error) {
	return s.repo.ListByIDs(ids)
}

// Reset clears a user's records and with them the purchase gate. Only the
// gated dev endpoint calls this.
func (s *Service) Reset(userID int) error {
	if userID <= 0 {
		return errors.New("invalid user")
	}
	return s.repo.Reset(userID)
}
