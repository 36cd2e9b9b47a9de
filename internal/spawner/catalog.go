package spawner

import (
	"errors"
	"fmt"

	"vault/internal/motion"
)

// Rand is the uniform [0,1) source used for draws and placement.
type Rand = motion.Rand

// Kind names a reward type.
type Kind string

const (
	KindUp        Kind = "up"
	KindHeart     Kind = "heart"
	KindMoneyBag  Kind = "money-bag"
	KindGenieLamp Kind = "genie-lamp"
	KindGenie     Kind = "genie"
)

var (
	ErrEmptyCatalog  = errors.New("catalog has no entries")
	ErrInvalidWeight = errors.New("reward weight must be positive")
	ErrInvalidValue  = errors.New("reward value must be positive")
)

// RewardType is one immutable catalog entry.
type RewardType struct {
	ImageRef string `json:"imageRef"`
	Value    int    `json:"value"`
	Kind     Kind   `json:"kind"`
	Weight   int    `json:"weight"`
}

// Catalog is an ordered, validated set of reward types.
type Catalog struct {
	entries []RewardType
	total   int
}

// NewCatalog validates entries and returns a catalog. Every weight and value
// must be positive, so a draw is always well defined.
func NewCatalog(entries ...RewardType) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyCatalog
	}
	total := 0
	for i, e := range entries {
		if e.Weight <= 0 {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Kind, ErrInvalidWeight)
		}
		if e.Value <= 0 {
			return nil, fmt.Errorf("entry %d (%s): %w", i, e.Kind, ErrInvalidValue)
		}
		total += e.Weight
	}
	return &Catalog{entries: append([]RewardType(nil), entries...), total: total}, nil
}

// Entries returns a copy of the catalog in draw order.
func (c *Catalog) Entries() []RewardType {
	return append([]RewardType(nil), c.entries...)
}

// TotalWeight is the sum of all weights.
func (c *Catalog) TotalWeight() int {
	return c.total
}

// Pick draws one entry with probability proportional to its weight.
// r = rng*total is matched against cumulative weights in order; the first
// entry whose cumulative weight reaches r wins. A draw outside [0,total)
// falls back to the first entry.
func (c *Catalog) Pick(rng Rand) RewardType {
	total := float64(c.total)
	r := rng.Float64() * total
	if !(r >= 0 && r < total) {
		return c.entries[0]
	}
	cumulative := 0
	for _, e := range c.entries {
		cumulative += e.Weight
		if float64(cumulative) >= r {
			return e
		}
	}
	return c.entries[0]
}

// GameCatalog is the reward set of the main game.
func GameCatalog() *Catalog {
	return mustCatalog(
		RewardType{ImageRef: "/static/images/up.svg", Value: 1000, Kind: KindUp, Weight: 40},
		RewardType{ImageRef: "/static/images/heart.svg", Value: 2000, Kind: KindHeart, Weight: 30},
		RewardType{ImageRef: "/static/images/money-bag.svg", Value: 5000, Kind: KindMoneyBag, Weight: 20},
		RewardType{ImageRef: "/static/images/genie-lamp.svg", Value: 20000, Kind: KindGenieLamp, Weight: 6},
		RewardType{ImageRef: "/static/images/genie.svg", Value: 50000, Kind: KindGenie, Weight: 4},
	)
}

// PledgeCatalog is the reward set of the pledge page.
func PledgeCatalog() *Catalog {
	return mustCatalog(
		RewardType{ImageRef: "/static/images/up.svg", Value: 100, Kind: KindUp, Weight: 40},
		RewardType{ImageRef: "/static/images/heart.svg", Value: 250, Kind: KindHeart, Weight: 30},
		RewardType{ImageRef: "/static/images/money-bag.svg", Value: 2500, Kind: KindMoneyBag, Weight: 15},
		RewardType{ImageRef: "/static/images/genie-lamp.svg", Value: 5000, Kind: KindGenieLamp, Weight: 10},
		RewardType{ImageRef: "/static/images/genie.svg", Value: 10000, Kind: KindGenie, Weight: 5},
	)
}

func mustCatalog(entries ...RewardType) *Catalog {
	c, err := NewCatalog(entries...)
	if err != nil {
		panic(err)
	}
	return c
}
