package models

// Rule is a catalog entry shown to players. Elo is roughly how many rating
// points the restriction is worth.
type Rule struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Elo         int    `json:"elo"`
	Description string `json:"description"`
}
