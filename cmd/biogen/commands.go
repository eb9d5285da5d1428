package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"biosphere-server/internal/archive"
	"biosphere-server/internal/auth"
	"biosphere-server/internal/biology"
	"biosphere-server/internal/ecosystem"
	"biosphere-server/internal/environment"
)

type speciesOutput struct {
	Seed       int64                  `json:"seed"`
	Creature   *archive.CreatureDTO   `json:"creature,omitempty"`
	Ecosystems []archive.EcosystemDTO `json:"ecosystems,omitempty"`
}

type planetOutput struct {
	Seed   int64             `json:"seed"`
	ID     *uuid.UUID        `json:"id,omitempty"`
	Planet archive.PlanetDTO `json:"planet"`
}

func newSpeciesCmd(opts *options) *cobra.Command {
	var (
		habitat string
		count   int
	)

	cmd := &cobra.Command{
		Use:   "species",
		Short: "Generate one species, or a batch spread over every habitat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			ctx := cmd.Context()
			svc, closeSvc, err := opts.service(ctx, "")
			if err != nil {
				return err
			}
			defer closeSvc()

			req, err := opts.request(cmd, svc)
			if err != nil {
				return err
			}

			if count <= 1 {
				var creature biology.Creature
				var seed int64
				creature, seed, err = svc.Species(ctx, req, habitat)
				if err != nil {
					return err
				}
				dto := archive.FromCreature(creature)
				ids := settingsRoller(seed)
				eco := ecosystem.Ecosystem{
					HabitatType: creature.Habitat.Habitat,
					Zone:        creature.Habitat.Zone,
					EcosystemID: ids.D6(3),
					LocationID:  ids.D6(3),
					Creatures:   []biology.Creature{creature},
				}
				if err := opts.export(archive.NewSpeciesDocument([]ecosystem.Ecosystem{eco})); err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), opts.format, speciesOutput{Seed: seed, Creature: &dto})
			}

			ecosystems, seed, err := svc.SpeciesBatch(ctx, req, count)
			if err != nil {
				return err
			}
			doc := archive.NewSpeciesDocument(ecosystems)
			if err := opts.export(doc); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.format, speciesOutput{Seed: seed, Ecosystems: doc.Ecosystems})
		},
	}

	cmd.Flags().StringVar(&habitat, "habitat", "", "habitat to generate in; empty rolls one")
	cmd.Flags().IntVar(&count, "count", 1, "number of species; above one spreads them over every habitat")
	return cmd
}

func newPlanetCmd(opts *options) *cobra.Command {
	var store string

	cmd := &cobra.Command{
		Use:   "planet",
		Short: "Generate a whole planet of land masses, water bodies and biomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			ctx := cmd.Context()
			svc, closeSvc, err := opts.service(ctx, store)
			if err != nil {
				return err
			}
			defer closeSvc()

			req, err := opts.request(cmd, svc)
			if err != nil {
				return err
			}

			p, rec, seed, err := svc.Planet(ctx, req, store != "")
			if err != nil {
				return err
			}
			if err := opts.export(archive.NewPlanetDocument(p)); err != nil {
				return err
			}

			out := planetOutput{Seed: seed, Planet: archive.FromPlanet(p)}
			if rec != nil {
				out.ID = &rec.ID
				fmt.Fprintf(opts.stderr, "archived %s as %s\n", rec.Name, rec.ID)
			}
			return render(cmd.OutOrStdout(), opts.format, out)
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "sqlite file to archive the planet in")
	return cmd
}

func newHabitatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "habitats",
		Short: "List the habitats available under the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			svc, closeSvc, err := opts.service(cmd.Context(), "")
			if err != nil {
				return err
			}
			defer closeSvc()

			req, err := opts.request(cmd, svc)
			if err != nil {
				return err
			}
			habitats, err := svc.Habitats(req)
			if err != nil {
				return err
			}
			if habitats == nil {
				habitats = []string{}
			}
			return render(cmd.OutOrStdout(), opts.format, habitats)
		},
	}
}

func newPresetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Show the settings of every planet archetype",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.validateFormat(); err != nil {
				return err
			}
			presets := make(map[environment.PlanetType]environment.Settings)
			for _, p := range environment.PlanetTypes() {
				s, _ := environment.Preset(p)
				presets[p] = s
			}
			return render(cmd.OutOrStdout(), opts.format, presets)
		},
	}
}

func newTokenCmd(opts *options) *cobra.Command {
	var (
		subject string
		scope   string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed token for the server's write endpoints (needs JWT_SECRET)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := auth.GenerateToken(subject, scope, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "biogen", "token subject")
	cmd.Flags().StringVar(&scope, "scope", auth.ScopeWrite, "token scope")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTokenTTL, "token lifetime")
	return cmd
}
