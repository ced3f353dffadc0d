package catalog

import (
	"strings"

	"github.com/ogarmory/armory-backend/internal/category"
)

// Options narrows a catalog listing. The zero value means "everything the
// viewer is allowed to see": no category, no badge filter, vault hidden,
// purchase gate closed.
type Options struct {
	// Category is a logical bucket name ("Accessories", "Shirts", ...) or a
	// raw category label. Empty means all categories.
	Category string

	// Badge is one of the named badge filters: new-arrivals, best-sellers,
	// sale, vault, rebellion. Empty means no badge filtering. Unknown values
	// match nothing.
	Badge string

	// IncludeVault lets vault-flagged products into the result. The "vault"
	// badge filter and the Vault category imply it.
	IncludeVault bool

	// PurchaseGateOpen admits purchase-locked products. It applies to every
	// view, vault ones included.
	PurchaseGateOpen bool
}

// IsVault reports whether a product belongs to the restricted vault set
// under any of its flags.
func IsVault(p Product) bool {
	return p.VaultLocked ||
		p.IsVaultExclusive ||
		strings.EqualFold(p.Category, "Vault") ||
		HasBadge(p, "VAULT") ||
		HasBadge(p, "LOCKED EXCLUSIVE")
}

// badgeFilters maps the named storefront filters to product predicates.
var badgeFilters = map[string]func(Product) bool{
	"new-arrivals": func(p Product) bool { return HasBadge(p, "NEW") },
	"best-sellers": func(p Product) bool { return HasBadge(p, "BEST SELLER") },
	"sale": func(p Product) bool {
		return HasBadge(p, "SALE") || p.OriginalPrice > p.Price
	},
	"vault":     IsVault,
	"rebellion": func(p Product) bool { return HasBadge(p, "REBELLION") },
}

// Filter derives the visible subset of products for one view. It never
// reorders; sorting is the caller's problem. An empty result is a valid
// result, not an error.
func Filter(products []Product, opts Options) []Product {
	wantsVault := opts.IncludeVault ||
		opts.Badge == "vault" ||
		strings.EqualFold(opts.Category, "Vault")

	var badgePred func(Product) bool
	if opts.Badge != "" {
		badgePred = badgeFilters[opts.Badge]
		if badgePred == nil {
			// unknown filter matches nothing
			return []Product{}
		}
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		// purchase gate applies to every view, vault included
		if p.RequiresPurchaseUnlock && !opts.PurchaseGateOpen {
			continue
		}
		// vault items never leak into general listings
		if IsVault(p) && !wantsVault {
			continue
		}
		if opts.Category != "" && !category.Matches(opts.Category, p.Category) {
			continue
		}
		if badgePred != nil && !badgePred(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
