package main

import (
	"flag"
	"fmt"
	"os"

	_ "github.com/lib/pq"

	"github.com/ykuzmenko/smartsend/internal/infrastructure/migrate"
)

func main() {
	var (
		databaseURL    = flag.String("database-url", os.Getenv("DATABASE_URL"), "database connection URL")
		migrationsPath = flag.String("migrations", "migrations", "path to migrations directory")
		command        = flag.String("command", "up", "migration command: up, down, version")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "database URL is required (set DATABASE_URL or pass -database-url)")
		os.Exit(1)
	}

	runner := migrate.NewRunner(&migrate.Config{
		DatabaseURL:    *databaseURL,
		MigrationsPath: *migrationsPath,
	})

	switch *command {
	case "up":
		if err := runner.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migrations applied")
	case "down":
		if err := runner.Rollback(); err != nil {
			fmt.Fprintf(os.Stderr, "rollback failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("rollback complete")
	case "version":
		version, dirty, err := runner.Version()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to get version: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("version: %d, dirty: %t\n", version, dirty)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", *command)
		os.Exit(1)
	}
}
