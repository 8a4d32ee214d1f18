package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/applicant-portal/internal/compat"
	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/fadilmartias/applicant-portal/internal/database"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the applications table schema",
		Long: `Applies the applications schema to the Postgres database configured by
DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME and DB_SSLMODE.`,
	}
	rootCmd.AddCommand(upCmd())
	rootCmd.AddCommand(legacyCmd())
	rootCmd.AddCommand(statusCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func connect() (*gorm.DB, error) {
	return database.Connect(config.LoadDBConfig(), config.LoadAppConfig().IsProduction())
}

func upCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Create or extend the applications table with every column",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, false); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println(color.New(color.FgGreen).Sprint("✓"), "applications table is up to date")
			return printStatus(db)
		},
	}
}

func legacyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legacy",
		Short: "Create the applications table with only the original columns",
		Long: `Creates the applications table without the optional columns. Submissions
are then saved in compatibility mode, with the optional fields embedded in the
cover letter. Run "migrate up" later to add the columns.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			if err := database.Migrate(db, true); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println(color.New(color.FgYellow).Sprint("!"), "applications table created with base columns only")
			return printStatus(db)
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which optional applications columns exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := connect()
			if err != nil {
				return err
			}
			return printStatus(db)
		},
	}
}

func printStatus(db *gorm.DB) error {
	status := database.ColumnStatus(db, compat.ReadOptionalColumns)
	missing := 0
	fmt.Println("Optional columns:")
	for _, col := range compat.ReadOptionalColumns {
		if status[col] {
			fmt.Printf("  %-22s %s\n", col, color.New(color.FgGreen).Sprint("OK"))
			continue
		}
		missing++
		fmt.Printf("  %-22s %s\n", col, color.New(color.FgYellow).Sprint("MISSING"))
	}
	if missing > 0 {
		fmt.Printf("%d column(s) missing; submissions will use compatibility mode.\n", missing)
	}
	return nil
}
