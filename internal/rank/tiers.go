package rank

// Tier is one loyalty level. MaxSpent is display-only: tier lookup uses the
// mins as half-open boundaries, so the table partitions [0, ∞) with no gaps
// even for fractional spend. A nil MaxSpent marks the open-ended top tier.
type Tier struct {
	Name     string   `json:"name"`
	MinSpent float64  `json:"minSpent"`
	MaxSpent *float64 `json:"maxSpent,omitempty"`
	Benefits []string `json:"benefits"`
}

func maxOf(v float64) *float64 { return &v }

// Tiers is the fixed loyalty ladder, ascending by MinSpent.
var Tiers = []Tier{
	{
		Name:     "STREET SOLDIER",
		MinSpent: 0,
		MaxSpent: maxOf(9999),
		Benefits: []string{"Member pricing", "Early drop alerts"},
	},
	{
		Name:     "BATTLE ELITE",
		MinSpent: 10000,
		MaxSpent: maxOf(24999),
		Benefits: []string{"Member pricing", "Early drop alerts", "Free shipping", "Exclusive badge drops"},
	},
	{
		Name:     "WAR GENERAL",
		MinSpent: 25000,
		MaxSpent: maxOf(49999),
		Benefits: []string{"Free shipping", "Exclusive badge drops", "Vault access", "Priority support"},
	},
	{
		Name:     "OG LEGEND",
		MinSpent: 50000,
		Benefits: []string{"Lifetime vault access", "Numbered legend plate", "First pick on collabs"},
	},
}

// vaultTierName is the tier whose minimum spend grants vault access.
const vaultTierName = "WAR GENERAL"

// VaultThreshold is the cumulative spend at which vault access opens.
func VaultThreshold() float64 {
	for _, t := range Tiers {
		if t.Name == vaultTierName {
			return t.MinSpent
		}
	}
	return Tiers[len(Tiers)-1].MinSpent
}
