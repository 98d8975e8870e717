package app

import (
	"math/rand/v2"
	"testing"

	"github.com/FelixBlom97/EloStealo/app/migrations"
	"github.com/FelixBlom97/EloStealo/app/models"
)

func loadTestCatalog(t *testing.T) ([]models.Rule, map[int]models.Rule) {
	t.Helper()
	c, err := migrations.LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	byID := make(map[int]models.Rule, len(c.Rules))
	for _, r := range c.Rules {
		byID[r.ID] = r
	}
	return c.Rules, byID
}

func TestAssignRulesKeepsRequestedIDs(t *testing.T) {
	catalog, _ := loadTestCatalog(t)
	rng := rand.New(rand.NewPCG(1, 2))

	cases := []struct {
		name       string
		elo1, elo2 int
		catalog    []models.Rule
	}{
		{"no rating", 0, 1200, catalog},
		{"negative rating", 1200, -5, catalog},
		{"empty catalog", 1500, 1200, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, b := AssignRules(tc.elo1, tc.elo2, 7, 9, tc.catalog, rng)
			if w != 7 || b != 9 {
				t.Fatalf("AssignRules = (%d,%d), want (7,9)", w, b)
			}
		})
	}
}

func TestAssignRulesPaysForTheGap(t *testing.T) {
	catalog, byID := loadTestCatalog(t)

	for seed := uint64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed+1))

		// Player 2 is stronger here, so they take the heavier rule.
		w, b := AssignRules(1300, 1600, 0, 0, catalog, rng)
		strong, weak := byID[b], byID[w]
		if strong.Elo < 300 {
			t.Fatalf("seed %d: stronger player got rule %d worth %d", seed, strong.ID, strong.Elo)
		}
		target := strong.Elo - 300
		inWindow := weak.Elo >= target-ruleEloWindow && weak.Elo <= target+ruleEloWindow
		if !inWindow && weak.Elo != 0 {
			t.Fatalf("seed %d: weaker rule %d worth %d, target %d", seed, weak.ID, weak.Elo, target)
		}
	}
}

func TestAssignRulesFallbacks(t *testing.T) {
	catalog, _ := loadTestCatalog(t)
	rng := rand.New(rand.NewPCG(3, 4))

	// No rule covers a 3000 point gap: the strongest rule is used and the
	// weaker player plays without one.
	w, b := AssignRules(4000, 1000, 5, 5, catalog, rng)
	if w != 56 || b != 0 {
		t.Fatalf("AssignRules = (%d,%d), want (56,0)", w, b)
	}
}
