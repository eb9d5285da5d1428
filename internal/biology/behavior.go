package biology

import (
	"strings"

	"biosphere-server/internal/dice"
)

func resolveBehavior(r *dice.Roller, c Creature) Behavior {
	var b Behavior
	b.AnimalIntelligence = dice.Seek(intelligenceTable, r.RollDice(2, 6, intelligenceModifier(c)))
	b.MatingBehavior = dice.Seek(matingTable, r.RollDice(2, 6, matingModifier(c)))
	b.SocialOrganization = dice.Seek(socialTable, r.RollDice(2, 6, socialModifier(c, b)))

	b.MentalTraits = make(map[string]int, len(MentalTraits))
	for _, trait := range MentalTraits {
		b.MentalTraits[trait] = r.D6(1) - r.D6(1) + mentalTraitModifier(trait, c, b)
	}
	return b
}

func intelligenceModifier(c Creature) int {
	modifier := 0
	switch {
	case c.Autotroph(), c.TrophicLevel == TrophicFilterFeeder, c.TrophicLevel == TrophicGrazing:
		modifier--
	case c.TrophicLevel == TrophicGathering, c.TrophicLevel == TrophicOmnivore:
		modifier++
	}
	switch c.Size.Category {
	case SizeSmall:
		modifier--
	case SizeLarge:
		modifier++
	}
	switch c.Reproduction.ReproductiveStrategy {
	case StrategyStrongK:
		modifier++
	case StrategyStrongR:
		modifier--
	}
	return modifier
}

// matingModifier reads combined sexes results loosely, so "Two Sexes /
// Hermaphrodite" counts as both.
func matingModifier(c Creature) int {
	modifier := 0
	sexes := c.Reproduction.Sexes
	if strings.Contains(sexes, SexesAsexual) {
		modifier -= 3
	}
	if strings.Contains(sexes, SexesHermaphrodite) {
		modifier--
	}
	if strings.Contains(sexes, SexesThreeOrMore) {
		modifier++
	}
	switch c.Reproduction.Gestation {
	case GestationLiveBearing:
		modifier++
	case GestationPouch:
		modifier += 2
	case GestationSpawning:
		modifier -= 2
	}
	return modifier
}

func socialModifier(c Creature, b Behavior) int {
	modifier := 0
	switch c.TrophicLevel {
	case TrophicGrazing:
		modifier += 2
	case TrophicFilterFeeder, TrophicGathering:
		modifier++
	case TrophicPouncing, TrophicTrapping:
		modifier--
	case TrophicParasite, TrophicSymbiote:
		modifier -= 2
	}
	switch c.Size.Category {
	case SizeSmall:
		modifier++
	case SizeLarge:
		modifier--
	}
	switch b.MatingBehavior {
	case MatingHive:
		modifier += 3
	case MatingHarem:
		modifier++
	case MatingNone:
		modifier--
	}
	return modifier
}

func mentalTraitModifier(trait string, c Creature, b Behavior) int {
	trophic := c.TrophicLevel
	social := b.SocialOrganization
	strategy := c.Reproduction.ReproductiveStrategy
	modifier := 0

	switch trait {
	case TraitChauvinism:
		switch social {
		case SocialMediumGroup, SocialLargeHerd:
			modifier++
		case SocialSolitary:
			modifier--
		}
	case TraitConcentration:
		switch trophic {
		case TrophicChasing, TrophicPouncing, TrophicTrapping:
			modifier++
		case TrophicGrazing:
			modifier--
		}
	case TraitCuriosity:
		switch trophic {
		case TrophicOmnivore:
			modifier++
		case TrophicGrazing, TrophicFilterFeeder:
			modifier--
		}
	case TraitEgoism:
		switch social {
		case SocialSolitary:
			modifier++
		case SocialLargeHerd:
			modifier--
		}
	case TraitEmpathy:
		switch social {
		case SocialPairBonded, SocialSmallGroup:
			modifier++
		case SocialSolitary:
			modifier--
		}
		if strategy == StrategyStrongK {
			modifier++
		}
	case TraitGregariousness:
		if trophic == TrophicPouncing || trophic == TrophicScavenger || trophic == TrophicFilterFeeder || IsHerbivore(trophic) {
			modifier--
		}
		switch social {
		case SocialLargeHerd:
			modifier += 2
		case SocialMediumGroup:
			modifier++
		case SocialSolitary:
			modifier--
		}
	case TraitImagination:
		switch {
		case trophic == TrophicOmnivore, trophic == TrophicGathering:
			modifier++
		case IsAutotroph(trophic):
			modifier--
		}
	case TraitSuspicion:
		switch {
		case IsHerbivore(trophic):
			modifier++
		case IsCarnivore(trophic):
			modifier--
		}
		if strategy == StrategyStrongR {
			modifier++
		}
	case TraitPlayfulness:
		switch strategy {
		case StrategyStrongK:
			modifier++
		case StrategyStrongR:
			modifier--
		}
		if c.Reproduction.Sexes == SexesAsexual {
			modifier--
		}
	}
	return modifier
}

// MentalTraitLabel maps a score to its label. Non-negative scores take the
// highest non-negative threshold not above the score; negative scores take
// the most extreme negative threshold the score reaches, or the neutral
// label when none is reached.
func MentalTraitLabel(trait string, score int) string {
	table, ok := mentalLabels[trait]
	if !ok || len(table) == 0 {
		return ""
	}

	label := ""
	if score >= 0 {
		for _, e := range table {
			if e.Threshold >= 0 && e.Threshold <= score {
				label = e.Outcome
			}
		}
		return label
	}

	for _, e := range table {
		if e.Threshold >= 0 {
			break
		}
		if e.Threshold >= score {
			return e.Outcome
		}
	}
	return dice.Seek(table, 0)
}
