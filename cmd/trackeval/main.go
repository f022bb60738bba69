// Command trackeval scores storm-cell tracker output against ground truth.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/banshee-data/trackeval/internal/db"
	"github.com/banshee-data/trackeval/internal/version"
)

// errUsage marks command line mistakes; usage has already been printed.
var errUsage = errors.New("invalid usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(stdout)
		return errUsage
	}

	switch args[0] {
	case "analyze":
		return runAnalyze(args[1:], stdout)
	case "multi":
		return runMulti(args[1:], stdout)
	case "scenarios":
		return runScenarios(args[1:], stdout)
	case "migrate":
		fs := newFlagSet("migrate", stdout)
		dbPath := fs.String("db", defaultDBPath, "Path to the results database")
		if err := fs.Parse(args[1:]); err != nil {
			return errUsage
		}
		return db.RunMigrateCommand(stdout, fs.Args(), *dbPath)
	case "version":
		fmt.Fprintln(stdout, version.String())
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", args[0])
		printUsage(stdout)
		return errUsage
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `Usage: trackeval <command> [flags] [args]

Commands:
  analyze   [flags] SIMNAME SKILL...        Score the tracker runs of one simulation
  multi     [flags] MULTISIM SKILL...       Score every simulation of a scenario
  scenarios [flags] MULTISIM MULTISIM...    Compare tracker runs across scenarios
  migrate   [-db path] up|down|status|force Manage the results database schema
  version                                   Print version information

Run 'trackeval <command> -h' for the flags of a command.
`)
}
