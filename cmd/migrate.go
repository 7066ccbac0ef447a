package cmd

import (
	"fmt"
	"sort"

	"github.com/killallgit/scriptify/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the session store schema.

Available subcommands:
  up      - Create or update the session store tables
  status  - Show which tables exist`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the session store tables",
	RunE:  runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE:  runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func openDatabase(cmd *cobra.Command) (*database.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		for _, table := range pendingTables(db.MigrationStatus()) {
			fmt.Fprintf(out, "would migrate %s\n", table)
		}
		return nil
	}

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintln(out, "Migrations applied successfully")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer db.Close()

	status := db.MigrationStatus()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Migration Status:")
	for _, table := range sortedKeys(status) {
		state := "pending"
		if status[table] {
			state = "applied"
		}
		fmt.Fprintf(out, "  %-24s %s\n", table, state)
	}
	return nil
}

func pendingTables(status map[string]bool) []string {
	var pending []string
	for _, table := range sortedKeys(status) {
		if !status[table] {
			pending = append(pending, table)
		}
	}
	return pending
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
