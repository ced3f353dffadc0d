package catalog

import (
	"encoding/json"
	"strings"
)

// FlexID accepts both JSON strings and numbers, since the two catalog feeds
// disagree on the id type. It always compares as a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// Product is the canonical catalog entry. Both feeds are decoded into this
// shape and passed through Normalize before anything else sees them, so
// consumers never deal with missing-field defaults themselves.
type Product struct {
	ID          FlexID   `json:"id"`
	Handle      string   `json:"handle,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Images      []string `json:"images,omitempty"`
	Price       float64  `json:"price"`

	// OriginalPrice is the pre-markdown price; the secondary feed calls it
	// compareAtPrice. Zero means no markdown.
	OriginalPrice  float64 `json:"originalPrice,omitempty"`
	CompareAtPrice float64 `json:"compareAtPrice,omitempty"`

	Badges []string `json:"badges,omitempty"`
	Tags   []string `json:"tags,omitempty"`

	VaultLocked            bool `json:"vault_locked,omitempty"`
	IsVaultExclusive       bool `json:"is_vault_exclusive,omitempty"`
	RequiresPurchaseUnlock bool `json:"requires_purchase_unlock,omitempty"`

	// Stock maps variant size to quantity. Nil means the feed carried no
	// real inventory and display code must use EstimatedStock instead.
	Stock        map[string]int `json:"stock,omitempty"`
	HasRealStock bool           `json:"hasRealStock"`
}

// premiumPriceThreshold is the price above which a product without badges
// gets the PREMIUM badge on load.
const premiumPriceThreshold = 1500

// Normalize fills the defaults and derived fields a raw feed entry may be
// missing. It returns a copy; feed data is never mutated in place.
func Normalize(p Product) Product {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)

	if p.Badges == nil {
		p.Badges = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.OriginalPrice == 0 && p.CompareAtPrice > p.Price {
		p.OriginalPrice = p.CompareAtPrice
	}
	p.HasRealStock = p.Stock != nil

	// derived badges: tag-sourced NEW, price-sourced PREMIUM
	if !HasBadge(p, "NEW") {
		for _, tag := range p.Tags {
			if strings.EqualFold(strings.TrimSpace(tag), "new") {
				p.Badges = append(p.Badges, "NEW")
				break
			}
		}
	}
	if p.Price > premiumPriceThreshold && !HasBadge(p, "PREMIUM") {
		p.Badges = append(p.Badges, "PREMIUM")
	}

	return p
}

// HasBadge reports whether any badge contains the given label. Matching is
// case-sensitive containment, so "LOCKED EXCLUSIVE" matches "LOCKED".
func HasBadge(p Product, label string) bool {
	for _, b := range p.Badges {
		if strings.Contains(b, label) {
			return true
		}
	}
	return false
}

// NormalizeName is the loose comparison key used for cross-feed dedup:
// lowercased with whitespace, hyphens and underscores removed, so
// "Rebel Tee" and "REBEL-TEE" collide.
func NormalizeName(name string) string {
	lower := strings.ToLower(name)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '-', '_':
			return -1
		}
		return r
	}, lower)
}

// RealStock sums the variant quantities. Only meaningful when HasRealStock.
func RealStock(p Product) int {
	total := 0
	for _, qty := range p.Stock {
		total += qty
	}
	return total
}

// EstimatedStock is the display-only scarcity number shown when a feed has
// no inventory data: a deterministic value derived from the id's last digit.
// It is never real inventory; callers must check HasRealStock first.
func EstimatedStock(p Product) int {
	id := p.ID.String()
	if id == "" {
		return 5
	}
	last := id[len(id)-1]
	if last < '0' || last > '9' {
		return 5
	}
	// keep the estimate in a 3..12 range so nothing ever displays as sold out
	return int(last-'0') + 3
}

// DisplayStock resolves the number shown on product cards and whether it is
// an estimate rather than fact.
func DisplayStock(p Product) (stock int, estimated bool) {
	if p.HasRealStock {
		return RealStock(p), false
	}
	return EstimatedStock(p), true
}
