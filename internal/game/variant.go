package game

import (
	"fmt"
	"strings"

	"vault/internal/spawner"
)

const (
	TopicScores   = "scores"
	TopicPledges  = "pledges"
	TopicComments = "comments"
)

// Variant is one flavour of the game: which rewards spawn and which channel
// carries the resulting scores.
type Variant struct {
	Name       string
	Title      string
	ScoreTopic string
	Catalog    *spawner.Catalog
}

// GameVariant is the main click-collect game.
func GameVariant() Variant {
	return Variant{Name: "game", Title: "Dragon's Vault", ScoreTopic: TopicScores, Catalog: spawner.GameCatalog()}
}

// PledgeVariant is the pledge page with its smaller rewards.
func PledgeVariant() Variant {
	return Variant{Name: "pledge", Title: "Dragon's Den Pledge", ScoreTopic: TopicPledges, Catalog: spawner.PledgeCatalog()}
}

// VariantByName resolves a configured variant name.
func VariantByName(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "game":
		return GameVariant(), nil
	case "pledge":
		return PledgeVariant(), nil
	}
	return Variant{}, fmt.Errorf("unknown variant %q", name)
}
