// Package main provides sleepctl, the admin CLI for the sleep engine's store.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/logger"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/config"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sleep-engine/internal/core/services"
)

type options struct {
	userID        string
	asJSON        bool
	noColor       bool
	duration      float64
	deep          float64
	rem           float64
	light         float64
	interruptions int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "sleepctl",
		Short:         "Inspect and maintain the sleep engine store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable coloured output")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSeedCmd(opts))
	rootCmd.AddCommand(newWeeksCmd(opts))
	rootCmd.AddCommand(newPredictCmd(opts))

	return rootCmd
}

// env is the shared state of one subcommand run.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	rdb   *redis.Client
	store *repository.Store
	gen   *services.DefaultDataGenerator
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	// Writes go through the API's entry cache so seeded weeks are visible
	// there at once.
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = cache.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, cached entry lists may be stale until they expire", zap.Error(err))
			rdb = nil
		}
	}

	store, err := repository.NewStore(ctx, cfg, rdb, log)
	if err != nil {
		if rdb != nil {
			_ = rdb.Close()
		}
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &env{cfg: cfg, log: log, rdb: rdb, store: store, gen: services.NewDefaultDataGenerator(nil)}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("failed to close store", zap.Error(err))
	}
	if e.rdb != nil {
		if err := e.rdb.Close(); err != nil {
			e.log.Warn("failed to close redis", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}

func (e *env) statsService() *services.StatsService {
	predictor := services.NewScorePredictor(
		services.NewKNNPredictor(e.cfg.PredictorNeighbours),
		e.cfg.PredictorMinSamples,
		e.log,
	)
	return services.NewStatsService(e.store.Entries, predictor, e.gen)
}

func requireUser(opts *options) error {
	if opts.userID == "" {
		return errors.New("--user is required")
	}
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := repository.OpenSQL(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := repository.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", cfg.StorageBackend)
			return nil
		},
	}
}

func newSeedCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Store a generated default week for a user without data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(opts); err != nil {
				return err
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			generated, err := services.NewSleepService(e.store.Entries, e.gen).GenerateDefaultSleepData(cmd.Context(), opts.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !generated {
				fmt.Fprintf(out, "user %s already has sleep data, nothing to do\n", opts.userID)
				return nil
			}
			fmt.Fprintf(out, "seeded %d nights for user %s\n", services.DefaultWeekLength, opts.userID)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.userID, "user", "", "user id")
	return cmd
}

func newWeeksCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Print a user's weekly records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(opts); err != nil {
				return err
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			weeks, err := e.statsService().GetWeeklyRecords(cmd.Context(), opts.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(weeks)
			}
			renderWeeks(out, weeks, useColor(out, opts.noColor))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.userID, "user", "", "user id")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newPredictCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the quality score of a night from the user's history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireUser(opts); err != nil {
				return err
			}
			if !cmd.Flags().Changed("duration") {
				return errors.New("--duration is required")
			}
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.Close()

			prediction, err := e.statsService().PredictScore(cmd.Context(), opts.userID, domain.SleepCandidate{
				SleepDuration: opts.duration,
				DeepSleep:     opts.deep,
				RemSleep:      opts.rem,
				LightSleep:    opts.light,
				Interruptions: opts.interruptions,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderPrediction(out, prediction, useColor(out, opts.noColor))
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.userID, "user", "", "user id")
	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "hours slept")
	cmd.Flags().IntVar(&opts.interruptions, "interruptions", 0, "times woken during the night")
	cmd.Flags().Float64Var(&opts.deep, "deep", 0, "hours of deep sleep")
	cmd.Flags().Float64Var(&opts.rem, "rem", 0, "hours of REM sleep")
	cmd.Flags().Float64Var(&opts.light, "light", 0, "hours of light sleep")
	return cmd
}
