package category

import "strings"

// Bucket is a logical storefront category. Several raw feed labels can map
// onto one bucket; the alias table here is the single source of truth so the
// filter engine and the nav cannot drift apart.
type Bucket struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Aliases []string `json:"-"`
}

// Buckets lists the storefront navigation categories in display order.
var Buckets = []Bucket{
	{Key: "shirts", Label: "Shirts", Aliases: []string{"full shirts"}},
	{Key: "tee-shirts", Label: "Tee Shirts", Aliases: []string{"teeshirt"}},
	{Key: "hoodies", Label: "Hoodies"},
	{Key: "accessories", Label: "Accessories", Aliases: []string{"hats", "wallet", "slippers"}},
	{Key: "vault", Label: "Vault"},
}

// Matches reports whether a product's raw category label belongs to the
// requested category. The request may be a bucket label, a bucket key, or a
// raw label; comparison is case-insensitive. Products without a category
// match nothing.
func Matches(requested, raw string) bool {
	if raw == "" {
		return false
	}
	if strings.EqualFold(requested, raw) {
		return true
	}
	for _, b := range Buckets {
		if !strings.EqualFold(requested, b.Label) && !strings.EqualFold(requested, b.Key) {
			continue
		}
		if strings.EqualFold(raw, b.Label) {
			return true
		}
		for _, alias := range b.Aliases {
			if strings.EqualFold(raw, alias) {
				return true
			}
		}
	}
	return false
}
