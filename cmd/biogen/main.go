// Command biogen generates species, ecosystems and whole planets from the
// command line.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"biosphere-server/internal/dice"
	"biosphere-server/internal/environment"
	"biosphere-server/internal/naming"
	"biosphere-server/internal/planet"
	"biosphere-server/internal/shared/config"
	"biosphere-server/internal/shared/database"
	"biosphere-server/internal/shared/logger"
)

type options struct {
	preset      string
	temperature float64
	hydrology   float64
	gravity     float64
	landMasses  int
	chemistry   string
	seed        int64
	random      bool
	format      string
	out         string
	logLevel    string
	workers     int

	stderr io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stderr: stderr}

	root := &cobra.Command{
		Use:           "biogen",
		Short:         "Generate alien species, biomes and planets",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.preset, "preset", "Gaian", "planet archetype the settings start from")
	flags.Float64Var(&opts.temperature, "temperature", 0, "surface temperature in kelvin")
	flags.Float64Var(&opts.hydrology, "hydrology", 0, "percentage of surface covered by water (0-120)")
	flags.Float64Var(&opts.gravity, "gravity", 0, "surface gravity in G")
	flags.IntVar(&opts.landMasses, "land-masses", 0, "target number of land masses")
	flags.StringVar(&opts.chemistry, "chemistry", "", "primary chemistry basis, e.g. carbon or silicon")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed; 0 picks one from the clock")
	flags.BoolVar(&opts.random, "random", false, "roll random settings instead of using a preset")
	flags.StringVar(&opts.format, "format", "json", "output format: json or yaml")
	flags.StringVar(&opts.out, "out", "", "write an archive document to this path (zstd when it ends in .zst)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.IntVar(&opts.workers, "workers", 4, "parallel workers for species batches")

	root.AddCommand(
		newSpeciesCmd(opts),
		newPlanetCmd(opts),
		newHabitatsCmd(opts),
		newPresetsCmd(opts),
		newTokenCmd(opts),
	)
	return root
}

func (o *options) logger() *slog.Logger {
	return logger.New(o.stderr, config.LoggingConfig{Level: o.logLevel})
}

// service builds a generation service. A non-empty store path opens a
// sqlite archive; the returned close func must always be called.
func (o *options) service(ctx context.Context, store string) (*planet.Service, func(), error) {
	log := o.logger()
	cfg := config.GenerationConfig{
		Seed:            o.seed,
		DefaultPreset:   o.preset,
		MaxSpeciesBatch: 100000,
		Workers:         o.workers,
	}

	if store == "" {
		return planet.NewService(nil, naming.NewMemoryRegistry(), cfg, log), func() {}, nil
	}

	db, err := database.Open(config.DriverSQLite, store)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close archive", "error", err)
		}
	}
	if err := db.RunMigrations(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	return planet.NewService(planet.NewRepository(db, log), naming.NewMemoryRegistry(), cfg, log), closeDB, nil
}

// request resolves the preset (or random roll) and overlays every settings
// flag the user set explicitly.
func (o *options) request(cmd *cobra.Command, svc *planet.Service) (planet.Request, error) {
	var req planet.Request
	if cmd.Flags().Changed("seed") {
		seed := o.seed
		req.Seed = &seed
	}

	var settings environment.Settings
	if o.random {
		settings = environment.Randomize(settingsRoller(o.seed))
	} else {
		base, err := svc.ResolveSettings(planet.Request{Preset: o.preset})
		if err != nil {
			return req, err
		}
		settings = base
	}

	flags := cmd.Flags()
	if flags.Changed("temperature") {
		settings.Temperature = o.temperature
	}
	if flags.Changed("hydrology") {
		settings.Hydrology = o.hydrology
	}
	if flags.Changed("gravity") {
		settings.Gravity = o.gravity
	}
	if flags.Changed("land-masses") {
		settings.LandMasses = o.landMasses
	}
	if flags.Changed("chemistry") {
		settings.PrimaryChemistry = environment.ChemistryBasis(o.chemistry)
	}

	req.Settings = &settings
	return req, nil
}

// settingsRoller seeds the CLI's own rolls: --random settings and the ids of
// exported single-species documents. Generation draws from the service.
func settingsRoller(seed int64) *dice.Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return dice.NewRoller(seed)
}

func (o *options) validateFormat() error {
	switch o.format {
	case "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format %q, want json or yaml", o.format)
	}
}
