package filter

import (
	"github.com/oakmoor/destrier/internal/history"
)

// Criteria defines filtering criteria for journal entries.
// All filters are ANDed together - an entry must match ALL criteria to pass.
type Criteria struct {
	Square   string // Algebraic square the entry must touch, empty = no filter
	Endpoint string // Algebraic square the entry must start or end on, empty = no filter
	MinMoves int    // Minimum move count, 0 = no filter
	MaxMoves int    // Maximum move count, 0 = no filter
}

// Matches returns true if the entry matches all filter criteria.
// Empty/zero criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(e *history.Entry) bool {
	// Square filtering - any square along the path counts
	if c.Square != "" {
		touched := false
		for _, sq := range e.Path {
			if sq == c.Square {
				touched = true
				break
			}
		}
		if !touched {
			return false
		}
	}

	// Endpoint filtering - start or goal only
	if c.Endpoint != "" && e.Start != c.Endpoint && e.Goal != c.Endpoint {
		return false
	}

	// Move count filtering
	if c.MinMoves > 0 && e.Moves < c.MinMoves {
		return false
	}
	if c.MaxMoves > 0 && e.Moves > c.MaxMoves {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
// Used to skip the filtering pass entirely on plain listings.
func (c *Criteria) HasFilters() bool {
	return c.Square != "" ||
		c.Endpoint != "" ||
		c.MinMoves > 0 ||
		c.MaxMoves > 0
}

// Apply returns the entries matching the criteria, preserving order.
func (c *Criteria) Apply(entries []*history.Entry) []*history.Entry {
	if !c.HasFilters() {
		return entries
	}

	matched := make([]*history.Entry, 0, len(entries))
	for _, e := range entries {
		if c.Matches(e) {
			matched = append(matched, e)
		}
	}
	return matched
}
