package db

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"

	"github.com/banshee-data/trackeval/internal/monitoring"
)

// ErrUnknownMigrateAction is returned for an unrecognised migrate action.
var ErrUnknownMigrateAction = errors.New("unknown migrate action")

// RunMigrateCommand handles the 'migrate' subcommand dispatching.
func RunMigrateCommand(w io.Writer, args []string, dbPath string) error {
	if len(args) < 1 {
		PrintMigrateHelp(w)
		return fmt.Errorf("%w: none given", ErrUnknownMigrateAction)
	}
	action := args[0]
	if action == "help" {
		PrintMigrateHelp(w)
		return nil
	}

	migrationsFS := MigrationsFS()

	// Open without running migrations; the action manages the schema.
	database, err := OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	switch action {
	case "up":
		monitoring.Logf("Running migrations...")
		if err := database.MigrateUp(migrationsFS); err != nil {
			return err
		}
		return printVersion(w, database, migrationsFS)

	case "down":
		monitoring.Logf("Rolling back one migration...")
		if err := database.MigrateDown(migrationsFS); err != nil {
			return err
		}
		return printVersion(w, database, migrationsFS)

	case "status":
		return printVersion(w, database, migrationsFS)

	case "force":
		if len(args) < 2 {
			return errors.New("usage: trackeval migrate force <version_number>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version number %q: %w", args[1], err)
		}
		if err := database.MigrateForce(migrationsFS, version); err != nil {
			return err
		}
		return printVersion(w, database, migrationsFS)

	default:
		PrintMigrateHelp(w)
		return fmt.Errorf("%w: %s", ErrUnknownMigrateAction, action)
	}
}

func printVersion(w io.Writer, database *DB, migrationsFS fs.FS) error {
	version, dirty, err := database.MigrateVersion(migrationsFS)
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	fmt.Fprintf(w, "Current version: %d\n", version)
	fmt.Fprintf(w, "Dirty: %v\n", dirty)
	if dirty {
		fmt.Fprintln(w, "A migration failed mid-execution; inspect the database, then run: trackeval migrate force <version>")
	}
	return nil
}

// PrintMigrateHelp displays help for migrate commands.
func PrintMigrateHelp(w io.Writer) {
	fmt.Fprint(w, `Usage: trackeval migrate <action> -db <path>

Actions:
  up              Apply all pending migrations
  down            Roll back the most recent migration
  status          Show the current schema version
  force <version> Set the schema version without running migrations
  help            Show this help
`)
}
