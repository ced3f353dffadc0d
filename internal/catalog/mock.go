package catalog

// MockCatalog is the bundled fallback used when both feeds are unreachable
// and nothing is cached. The storefront must never render an empty grid.
func MockCatalog() []Product {
	products := []Product{
		{
			ID:          "101",
			Handle:      "og-rebel-tee",
			Name:        "OG Rebel Tee",
			Description: "Heavyweight cotton tee with the rebel crest front print",
			Category:    "Teeshirt",
			Price:       650,
			Badges:      []string{"BEST SELLER"},
			Images:      []string{"/products/rebel-tee-front.jpg", "/products/rebel-tee-back.jpg"},
		},
		{
			ID:          "102",
			Handle:      "armory-full-shirt",
			Name:        "Armory Full Shirt",
			Description: "Embroidered long-sleeve shirt, garrison fit",
			Category:    "Full Shirts",
			Price:       1250,
			Badges:      []string{"NEW"},
			Images:      []string{"/products/armory-shirt-front.jpg"},
		},
		{
			ID:            "103",
			Handle:        "war-general-hoodie",
			Name:          "War General Hoodie",
			Description:   "Fleece-lined hoodie with rank chevrons",
			Category:      "Hoodies",
			Price:         1890,
			OriginalPrice: 2400,
			Badges:        []string{"SALE"},
			Images:        []string{"/products/general-hoodie.jpg"},
		},
		{
			ID:       "104",
			Handle:   "og-snapback",
			Name:     "OG Snapback",
			Category: "hats",
			Price:    420,
			Images:   []string{"/products/snapback.jpg"},
		},
		{
			ID:          "105",
			Handle:      "vault-flak-jacket",
			Name:        "Vault Flak Jacket",
			Description: "Numbered drop, vault members only",
			Category:    "Vault",
			Price:       4500,
			Badges:      []string{"VAULT", "LIMITED"},
			VaultLocked: true,
			Images:      []string{"/products/flak-jacket.jpg"},
		},
		{
			ID:                     "106",
			Handle:                 "first-blood-patch",
			Name:                   "First Blood Patch",
			Description:            "Unlocks after your first completed order",
			Category:               "accessories",
			Price:                  250,
			Badges:                 []string{"LOCKED EXCLUSIVE"},
			RequiresPurchaseUnlock: true,
			Images:                 []string{"/products/first-blood-patch.jpg"},
		},
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, Normalize(p))
	}
	return out
}
