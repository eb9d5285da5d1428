// Package naming synthesizes scientific names for creatures and
// descriptive names for biomes, unique within a naming session.
package naming

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"biosphere-server/internal/biology"
	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
)

var prefixes = []string{
	"Xeno", "Neo", "Mega", "Micro", "Crypto", "Proto", "Pseudo", "Para", "Meta", "Hyper",
	"Ultra", "Super", "Sub", "Anti", "Quasi", "Semi", "Hemi", "Iso", "Mono", "Poly",
}

var roots = []string{
	"saur", "pod", "derm", "therm", "morph", "phyte", "zoa", "ceph", "arthro", "ichthy",
	"ornith", "mamma", "insect", "myc", "bact", "vir", "phag", "vor", "troph", "phyll",
}

var suffixes = []string{
	"us", "is", "um", "ix", "ox", "ax", "ex", "on", "oid", "idae",
	"inae", "ini", "ina", "ita", "ites", "opsis", "ella", "ula", "arium", "odon",
}

var biomePrefixes = []string{
	"Great", "Lesser", "Northern", "Southern", "Eastern", "Western", "Central", "Coastal",
	"Inner", "Outer", "Upper", "Lower", "High", "Low", "Deep", "Shallow",
}

var biomeSuffixes = []string{
	"Lands", "Region", "Zone", "Territory", "Expanse", "Realm", "Domain", "Basin",
	"Valley", "Plains", "Heights", "Depths", "Waters", "Reaches", "Fields", "Shores",
}

var descriptors = map[string][]string{
	"desert": {"Arid", "Sandy", "Barren"},
	"jungle": {"Verdant", "Lush", "Dense"},
	"arctic": {"Frozen", "Icy", "Frigid"},
	"ocean":  {"Azure", "Vast", "Endless"},
	"sea":    {"Azure", "Vast", "Endless"},
}

// DefaultMaxAttempts bounds the random retries before a namer falls back to
// walking the name space in order.
const DefaultMaxAttempts = 64

// Namer draws names from its own Roller and claims them in a shared
// Registry. A Namer is not safe for concurrent use; give each worker its own
// Namer over the same Registry.
type Namer struct {
	roller      *dice.Roller
	registry    Registry
	logger      *slog.Logger
	maxAttempts int
}

func New(roller *dice.Roller, registry Registry, logger *slog.Logger) *Namer {
	return &Namer{
		roller:      roller,
		registry:    registry,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
	}
}

// WithRoller returns a Namer sharing n's registry but drawing from roller.
func (n *Namer) WithRoller(roller *dice.Roller) *Namer {
	clone := *n
	clone.roller = roller
	return &clone
}

// NameCreature returns a scientific name not yet used in this session.
func (n *Namer) NameCreature(ctx context.Context, c biology.Creature) (string, error) {
	return n.claim(ctx, KindSpecies, func() (string, error) {
		return n.scientificName(c)
	}, speciesSpace)
}

// NameBiome returns a biome name for habitat not yet used in this session.
func (n *Namer) NameBiome(ctx context.Context, habitat string) (string, error) {
	return n.claim(ctx, KindBiome, func() (string, error) {
		return n.biomeName(habitat)
	}, func(yield func(string) bool) {
		biomeSpace(habitat, yield)
	})
}

// Reset forgets every name claimed in this session.
func (n *Namer) Reset(ctx context.Context) error {
	return n.registry.Reset(ctx)
}

func (n *Namer) claim(ctx context.Context, kind Kind, draw func() (string, error), space func(yield func(string) bool)) (string, error) {
	for attempt := 0; attempt < n.maxAttempts; attempt++ {
		name, err := draw()
		if err != nil {
			return "", err
		}
		ok, err := n.registry.Claim(ctx, kind, name)
		if err != nil {
			return "", err
		}
		if ok {
			return name, nil
		}
	}

	n.logger.Debug("Random naming exhausted, enumerating",
		"component", "naming",
		"operation", "claim",
		"kind", kind,
		"attempts", n.maxAttempts,
	)

	var (
		found    string
		claimErr error
		first    string
	)
	space(func(name string) bool {
		if first == "" {
			first = name
		}
		ok, err := n.registry.Claim(ctx, kind, name)
		if err != nil {
			claimErr = err
			return false
		}
		if ok {
			found = name
			return false
		}
		return true
	})
	if claimErr != nil {
		return "", claimErr
	}
	if found != "" {
		return found, nil
	}

	for i := 2; ; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		name := fmt.Sprintf("%s %d", first, i)
		ok, err := n.registry.Claim(ctx, kind, name)
		if err != nil {
			return "", err
		}
		if ok {
			return name, nil
		}
	}
}

func (n *Namer) scientificName(c biology.Creature) (string, error) {
	prefix, err := n.component(prefixes, c)
	if err != nil {
		return "", err
	}
	root, err := n.component(roots, c)
	if err != nil {
		return "", err
	}
	suffix, err := n.component(suffixes, c)
	if err != nil {
		return "", err
	}

	if n.roller.D6(1) == 6 {
		second, err := n.component(roots, c)
		if err != nil {
			return "", err
		}
		root += second
	}
	return prefix + root + suffix, nil
}

func (n *Namer) component(options []string, c biology.Creature) (string, error) {
	weights := make([]float64, len(options))
	for i, o := range options {
		weights[i] = morphemeWeight(o, c)
	}
	return dice.Choice(n.roller, options, weights)
}

// morphemeWeight favors fragments that describe the creature and penalizes
// ones that contradict it.
func morphemeWeight(morpheme string, c biology.Creature) float64 {
	m := strings.ToLower(morpheme)
	favor := func(match bool, hit, miss float64) float64 {
		if match {
			return hit
		}
		return miss
	}

	switch {
	case strings.Contains(m, "mega"):
		return favor(c.Size.Category == biology.SizeLarge, 2, 0.5)
	case strings.Contains(m, "micro"):
		return favor(c.Size.Category == biology.SizeSmall, 2, 0.5)
	case strings.Contains(m, "therm"):
		hot := c.ChemicalBasis == environment.ChemistrySulfur || c.ChemicalBasis == environment.ChemistrySilicon
		return favor(hot, 2, 0.5)
	case strings.Contains(m, "phyte"):
		return favor(c.TrophicLevel == biology.TrophicPhotosynthetic, 2, 0.5)
	case strings.Contains(m, "pod"):
		return favor(c.Locomotion == biology.LocomotionWalking, 1.5, 0.7)
	case strings.Contains(m, "phag"):
		return favor(biology.IsCarnivore(c.TrophicLevel), 1.5, 0.7)
	}
	return 1
}

func (n *Namer) biomeName(habitat string) (string, error) {
	prefix := dice.Pick(n.roller, biomePrefixes)
	suffix := dice.Pick(n.roller, biomeSuffixes)

	descriptor := ""
	if n.roller.D6(1) > 3 {
		if options, ok := descriptors[strings.ToLower(habitat)]; ok {
			descriptor = dice.Pick(n.roller, options)
		}
	}
	return joinWords(prefix, descriptor, habitat, suffix), nil
}

func joinWords(words ...string) string {
	kept := words[:0:0]
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

func speciesSpace(yield func(string) bool) {
	for _, p := range prefixes {
		for _, r := range roots {
			for _, s := range suffixes {
				if !yield(p + r + s) {
					return
				}
			}
		}
	}
}

func biomeSpace(habitat string, yield func(string) bool) {
	for _, p := range biomePrefixes {
		for _, s := range biomeSuffixes {
			if !yield(joinWords(p, habitat, s)) {
				return
			}
		}
	}
}
