package deck

import "github.com/deckhaven/deckhaven/internal/card"

// QuantityPolicy supplies the per-card copy limit, independent of zone
// structure. A real ban-list provider implements this; the default is a
// flat limit of three copies for every card.
type QuantityPolicy interface {
	LimitFor(c *card.Card) int
}

// StaticLimit is a QuantityPolicy returning the same limit for every
// card.
type StaticLimit int

// LimitFor implements QuantityPolicy.
func (l StaticLimit) LimitFor(*card.Card) int {
	return int(l)
}

// DefaultPolicy is the policy applied when none is injected.
var DefaultPolicy QuantityPolicy = StaticLimit(3)

// effectiveCap combines the policy limit with the zone's structural cap.
func effectiveCap(policy QuantityPolicy, c *card.Card, zone Zone) int {
	limit := policy.LimitFor(c)
	if cap := zoneCap(zone); cap < limit {
		return cap
	}
	return limit
}
