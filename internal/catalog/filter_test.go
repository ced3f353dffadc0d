package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() []Product {
	products := []Product{
		{ID: "1", Name: "Rebel Tee", Category: "Teeshirt", Price: 650, Badges: []string{"BEST SELLER"}},
		{ID: "2", Name: "Armory Shirt", Category: "Full Shirts", Price: 1250, Badges: []string{"NEW"}},
		{ID: "3", Name: "Snapback", Category: "hats", Price: 420},
		{ID: "4", Name: "Crest Wallet", Category: "wallet", Price: 380},
		{ID: "5", Name: "General Hoodie", Category: "Hoodies", Price: 1890, OriginalPrice: 2400},
		{ID: "6", Name: "Flak Jacket", Category: "Vault", Price: 4500, VaultLocked: true, Badges: []string{"VAULT", "LIMITED"}},
		{ID: "7", Name: "Shadow Cloak", Category: "Hoodies", Price: 3200, Badges: []string{"LOCKED EXCLUSIVE"}},
		{ID: "8", Name: "First Blood Patch", Category: "accessories", Price: 250, RequiresPurchaseUnlock: true},
		{ID: "9", Name: "Uprising Tee", Category: "Teeshirt", Price: 700, Badges: []string{"REBELLION"}},
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, Normalize(p))
	}
	return out
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID.String())
	}
	return out
}

func TestFilterVaultExclusivity(t *testing.T) {
	all := testCatalog()

	// vault items (6: vault_locked, 7: LOCKED EXCLUSIVE badge) never appear
	// in general listings, for any non-vault category/filter combination
	for _, opts := range []Options{
		{},
		{Category: "Hoodies"},
		{Badge: "new-arrivals"},
		{Badge: "sale"},
		{Category: "Accessories"},
	} {
		for _, p := range Filter(all, opts) {
			assert.False(t, IsVault(p), "vault product %s leaked with opts %+v", p.ID, opts)
		}
	}

	// opting in brings them back
	out := Filter(all, Options{IncludeVault: true})
	assert.Contains(t, ids(out), "6")
	assert.Contains(t, ids(out), "7")
}

func TestFilterVaultBadgeFilter(t *testing.T) {
	all := testCatalog()

	// the vault filter is the one case that explicitly requests vault items
	out := Filter(all, Options{Badge: "vault"})
	assert.ElementsMatch(t, []string{"6", "7"}, ids(out))

	// ...and the Vault category behaves the same way
	out = Filter(all, Options{Category: "Vault"})
	assert.Equal(t, []string{"6"}, ids(out))
}

func TestFilterPurchaseGate(t *testing.T) {
	all := testCatalog()

	// gated product is hidden everywhere while the gate is closed
	assert.NotContains(t, ids(Filter(all, Options{Category: "Accessories"})), "8")
	assert.NotContains(t, ids(Filter(all, Options{IncludeVault: true})), "8")

	// open gate admits it, subject to the other rules
	out := Filter(all, Options{Category: "Accessories", PurchaseGateOpen: true})
	assert.Contains(t, ids(out), "8")
}

func TestFilterCategoryBuckets(t *testing.T) {
	all := testCatalog()

	// Accessories absorbs hats and wallet
	assert.ElementsMatch(t, []string{"3", "4"}, ids(Filter(all, Options{Category: "Accessories"})))
	// Shirts maps to the raw "Full Shirts" label
	assert.Equal(t, []string{"2"}, ids(Filter(all, Options{Category: "Shirts"})))
	// Tee Shirts maps to "Teeshirt"
	assert.ElementsMatch(t, []string{"1", "9"}, ids(Filter(all, Options{Category: "Tee Shirts"})))
	// case-insensitive
	assert.Equal(t, []string{"5"}, ids(Filter(all, Options{Category: "hoodies"})))
}

func TestFilterBadges(t *testing.T) {
	all := testCatalog()

	assert.Equal(t, []string{"2"}, ids(Filter(all, Options{Badge: "new-arrivals"})))
	assert.Equal(t, []string{"1"}, ids(Filter(all, Options{Badge: "best-sellers"})))
	// sale matches a real markdown even without a SALE badge
	assert.Equal(t, []string{"5"}, ids(Filter(all, Options{Badge: "sale"})))
	assert.Equal(t, []string{"9"}, ids(Filter(all, Options{Badge: "rebellion"})))
}

func TestFilterUnknownRequestsMatchNothing(t *testing.T) {
	all := testCatalog()
	assert.Empty(t, Filter(all, Options{Category: "Greaves"}))
	assert.Empty(t, Filter(all, Options{Badge: "mystery-filter"}))
}

func TestFilterIsStable(t *testing.T) {
	all := testCatalog()
	out := Filter(all, Options{Category: "Tee Shirts"})
	assert.Equal(t, []string{"1", "9"}, ids(out))
}
