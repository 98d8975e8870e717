package app

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"

	"github.com/FelixBlom97/EloStealo/app/migrations"
	"github.com/FelixBlom97/EloStealo/app/models"
	"github.com/FelixBlom97/EloStealo/app/rules"
)

const (
	// ruleEloWindow is how far the weaker player's rule may sit from the
	// target value.
	ruleEloWindow = 150
	maxRuleElo    = 1500
)

// AssignRules picks a rule for each player so that the rating gap is paid
// for. The stronger player draws a rule worth at least the gap; the weaker
// player gets one worth roughly what is left over. Non-positive ratings or an
// empty catalog keep the requested ids.
func AssignRules(elo1, elo2, rule1, rule2 int, catalog []models.Rule, rng *rand.Rand) (int, int) {
	if elo1 <= 0 || elo2 <= 0 || len(catalog) == 0 {
		return rule1, rule2
	}

	high, low := elo1, elo2
	if elo2 > elo1 {
		high, low = elo2, elo1
	}
	diff := high - low

	strong, ok := pick(catalog, rng, func(r models.Rule) bool { return r.Elo >= diff })
	if !ok {
		strong, ok = pick(catalog, rng, func(r models.Rule) bool { return r.Elo == maxRuleElo })
	}
	if !ok {
		return rule1, rule2
	}

	target := strong.Elo - diff
	weak, ok := pick(catalog, rng, func(r models.Rule) bool {
		return r.Elo >= target-ruleEloWindow && r.Elo <= target+ruleEloWindow
	})
	if !ok {
		weak, ok = pick(catalog, rng, func(r models.Rule) bool { return r.Elo == 0 })
	}
	if !ok {
		weak = models.Rule{ID: 0}
	}

	if elo1 == high {
		return strong.ID, weak.ID
	}
	return weak.ID, strong.ID
}

func pick(catalog []models.Rule, rng *rand.Rand, keep func(models.Rule) bool) (models.Rule, bool) {
	var candidates []models.Rule
	for _, r := range catalog {
		if keep(r) {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return models.Rule{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}

// MigrateRules replaces the stored catalog with the embedded one when the
// version recorded in versionFile is behind. It reports whether it migrated.
func MigrateRules(ctx context.Context, st GameStore, versionFile string) (bool, error) {
	c, err := migrations.LoadCatalog()
	if err != nil {
		return false, err
	}
	current, err := migrations.ReadVersion(versionFile)
	if err != nil {
		return false, err
	}
	if current >= c.Version {
		log.Printf("rule catalog up to date at version %d", current)
		return false, nil
	}
	if err := ValidateCatalog(c.Rules); err != nil {
		return false, err
	}
	if err := st.ReplaceRules(ctx, c.Rules); err != nil {
		return false, fmt.Errorf("replace rules: %w", err)
	}
	if err := migrations.WriteVersion(versionFile, c.Version); err != nil {
		return false, err
	}
	log.Printf("migrated rule catalog from version %d to %d (%d rules)", current, c.Version, len(c.Rules))
	return true, nil
}

// ValidateCatalog checks every entry against the built-in rule registry.
func ValidateCatalog(list []models.Rule) error {
	for _, r := range list {
		reg, err := rules.Lookup(r.ID)
		if err != nil {
			return fmt.Errorf("catalog rule %d: %w", r.ID, err)
		}
		if reg.Name != r.Name {
			return fmt.Errorf("catalog rule %d is %q but the registry has %q", r.ID, r.Name, reg.Name)
		}
	}
	return nil
}
