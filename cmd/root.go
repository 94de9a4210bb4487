package cmd

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/config"
	"github.com/abhisek/onthi/internal/controller"
	"github.com/abhisek/onthi/internal/logger"
	"github.com/abhisek/onthi/internal/questionbank"
	"github.com/abhisek/onthi/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "onthi",
	Short: "Ôn thi lý thuyết giấy phép lái xe",
	Long:  "onthi: practice and mock exams for the Vietnamese driving-licence theory test, in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ONTHI_DB env var)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: sqlite, redis or memory (overrides ONTHI_BACKEND)")
	rootCmd.PersistentFlags().String("redis-url", "", "Redis URL for the redis backend (overrides ONTHI_REDIS_URL)")
	rootCmd.PersistentFlags().String("bank", "", "Path to the question bank JSON (overrides ONTHI_BANK)")

	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(wrongCmd)
	rootCmd.AddCommand(achievementsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()
	flags := []struct {
		name string
		dst  *string
	}{
		{"db", &cfg.DBPath},
		{"backend", &cfg.Backend},
		{"redis-url", &cfg.RedisURL},
		{"bank", &cfg.BankPath},
	}
	for _, f := range flags {
		if v, _ := cmd.Flags().GetString(f.name); v != "" {
			*f.dst = v
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveDBPath returns the database path using the --db flag or ONTHI_DB,
// then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// env is everything a command needs to run sessions.
type env struct {
	cfg   *config.Config
	log   zerolog.Logger
	store *store.Store
	bank  *questionbank.Bank
	ctl   *controller.Controller

	closers []io.Closer
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i].Close()
	}
}

// openEnv loads configuration, opens the storage backend and the question
// bank, and builds the controller. Logs go to logOut.
func openEnv(cmd *cobra.Command, logOut io.Writer) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	if cfg.LogFile != "" {
		f, err := logger.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, f)
		logOut = f
	}
	e.log = logger.Setup(logOut, cfg.LogLevel, cfg.LogFormat)

	kv, err := openBackend(cmd.Context(), cfg, e.log)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = store.New(kv, e.log)
	e.closers = append(e.closers, e.store)

	e.bank, err = questionbank.Load(cfg.BankPath)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.log.Debug().Str("bank", cfg.BankPath).Int("questions", e.bank.Len()).Msg("question bank loaded")

	opts := controller.Options{Logger: e.log}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed)))
	}
	e.ctl = controller.New(e.bank, e.store, opts)
	return e, nil
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.KV, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return store.OpenRedis(ctx, cfg.RedisURL, cfg.RedisPrefix, log)
	case config.BackendMemory:
		return store.NewMemoryKV(), nil
	default:
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		kv, err := store.OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("path", dbPath).Msg("sqlite opened")
		return kv, nil
	}
}

// cliEnv opens an env for a plain CLI command, logging to stderr.
func cliEnv(cmd *cobra.Command) (*env, error) {
	return openEnv(cmd, os.Stderr)
}
