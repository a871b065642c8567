package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/packlane-io/packlane/internal/infrastructure/config"
	"github.com/packlane-io/packlane/internal/infrastructure/database"
	"github.com/packlane-io/packlane/internal/infrastructure/migration"
	"github.com/packlane-io/packlane/internal/shared/logger"
)

var (
	env         string
	scriptsDir  string
	tool        string
	name        string
	steps       int
	forceTarget int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, and inspect the current version.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVar(&scriptsDir, "path", "./internal/infrastructure/migration/scripts", "Path to migration scripts")
	cmd.PersistentFlags().StringVar(&tool, "tool", "golang-migrate", "Migration tool (golang-migrate, goose)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newVersionCommand(),
		newForceCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the current migration version",
		RunE:  runVersion,
	}
}

func newForceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Force the migration version without running migrations",
		Long:  `Set the recorded migration version to recover from a dirty state. Use with care.`,
		RunE:  runForce,
	}

	cmd.Flags().IntVar(&forceTarget, "version", 0, "Version to force (required)")
	cmd.MarkFlagRequired("version")

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new migration",
		Long:  `Create a pair of empty up/down migration files with the next sequence number.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the migration (required)")
	cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv() (string, logger.Interface, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return "", nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return "", nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()

	if err := database.Init(&cfg.Database); err != nil {
		return "", nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	scriptsPath, err := filepath.Abs(scriptsDir)
	if err != nil {
		return "", nil, fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	return scriptsPath, log, nil
}

func newStrategy(scriptsPath string) migration.Strategy {
	if tool == "goose" {
		return migration.NewGooseStrategy(scriptsPath)
	}
	return migration.NewGolangMigrateStrategy(scriptsPath)
}

func runUp(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running up migrations", "environment", env, "tool", tool)

	strategy := newStrategy(scriptsPath)
	if err := strategy.Migrate(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	log.Infow("running down migrations", "environment", env, "tool", tool, "steps", steps)

	switch strategy := newStrategy(scriptsPath).(type) {
	case *migration.GolangMigrateStrategy:
		err = strategy.MigrateDown(database.Get(), steps)
	case *migration.GooseStrategy:
		err = strategy.MigrateDown(database.Get(), steps)
	default:
		err = fmt.Errorf("down migration is not supported by %s", strategy.GetName())
	}
	if err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runVersion(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	switch strategy := newStrategy(scriptsPath).(type) {
	case *migration.GolangMigrateStrategy:
		version, dirty, err := strategy.GetVersion(database.Get())
		if err != nil {
			return fmt.Errorf("failed to get migration version: %w", err)
		}
		fmt.Printf("\nMigration Status:\n")
		fmt.Printf("  Environment:     %s\n", env)
		fmt.Printf("  Current Version: %d\n", version)
		fmt.Printf("  Dirty:           %t\n", dirty)
	case *migration.GooseStrategy:
		if err := strategy.Status(database.Get()); err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}
	default:
		return fmt.Errorf("version is not supported by %s", strategy.GetName())
	}

	log.Infow("migration status check completed")
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	scriptsPath, err := filepath.Abs(scriptsDir)
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	entries, err := os.ReadDir(scriptsPath)
	if err != nil {
		return fmt.Errorf("failed to read scripts directory: %w", err)
	}

	// Next sequence number after the highest existing NNNNNN_ prefix.
	next := 1
	for _, entry := range entries {
		var seq int
		if _, err := fmt.Sscanf(entry.Name(), "%d_", &seq); err == nil && seq >= next {
			next = seq + 1
		}
	}

	slug := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	base := fmt.Sprintf("%06d_%s", next, slug)

	for _, direction := range []string{"up", "down"} {
		path := filepath.Join(scriptsPath, fmt.Sprintf("%s.%s.sql", base, direction))
		if err := os.WriteFile(path, []byte("-- "+base+" ("+direction+")\n"), 0o644); err != nil {
			return fmt.Errorf("failed to create migration file: %w", err)
		}
		fmt.Printf("created %s\n", path)
	}

	return nil
}

func runForce(cmd *cobra.Command, args []string) error {
	scriptsPath, log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	strategy, ok := newStrategy(scriptsPath).(*migration.GolangMigrateStrategy)
	if !ok {
		return fmt.Errorf("force is only supported by golang-migrate")
	}

	log.Warnw("forcing migration version", "version", forceTarget)

	if err := strategy.Force(database.Get(), forceTarget); err != nil {
		log.Errorw("force failed", "error", err)
		return fmt.Errorf("force failed: %w", err)
	}

	log.Infow("migration version forced", "version", forceTarget)
	return nil
}
