package rank

import "math"

// Rank is the computed loyalty standing for one cumulative spend value.
type Rank struct {
	Tier        Tier     `json:"tier"`
	Benefits    []string `json:"benefits"`
	NextTier    *Tier    `json:"nextTier,omitempty"`
	ProgressPct float64  `json:"progressPct"`

	// Points is derived from spend on every computation, never stored, so
	// points and spend cannot drift apart.
	Points      int  `json:"loyaltyPoints"`
	VaultAccess bool `json:"vaultAccess"`
}

// Compute resolves the tier containing the given cumulative spend. Every
// non-negative spend maps to exactly one tier; negative input is clamped
// to zero.
func Compute(spend float64) Rank {
	if spend < 0 {
		spend = 0
	}

	idx := 0
	for i, t := range Tiers {
		if spend >= t.MinSpent {
			idx = i
		}
	}
	current := Tiers[idx]

	var next *Tier
	progress := 100.0
	if idx+1 < len(Tiers) {
		n := Tiers[idx+1]
		next = &n
		span := n.MinSpent - current.MinSpent
		progress = (spend - current.MinSpent) / span * 100
		progress = math.Max(0, math.Min(100, progress))
	}

	return Rank{
		Tier:        current,
		Benefits:    current.Benefits,
		NextTier:    next,
		ProgressPct: progress,
		Points:      int(math.Floor(spend / 10)),
		VaultAccess: spend >= VaultThreshold(),
	}
}

// CumulativeSpend sums order totals. Kept as its own function so the rank
// endpoint and tests agree on the definition of "total spent".
func CumulativeSpend(totals []float64) float64 {
	sum := 0.0
	for _, t := range totals {
		sum += t
	}
	return sum
}
