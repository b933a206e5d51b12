package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/flowershop/app/repositories"
	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/database/seeders"
)

// flowershop migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootDB()
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Migrate(cmd.OutOrStdout())
	},
}

// flowershop migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootDB()
		if err != nil {
			return err
		}
		defer a.Close()
		return a.Rollback(cmd.OutOrStdout())
	},
}

// flowershop migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootDB()
		if err != nil {
			return err
		}
		defer a.Close()
		return a.MigrationStatus(cmd.OutOrStdout())
	},
}

// flowershop seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootDB()
		if err != nil {
			return err
		}
		defer a.Close()
		return seeders.RunAll(a.DB(), cmd.OutOrStdout())
	},
}

var statsOutput string

// flowershop stats -o statistics.json
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Write revenue per seller and customer as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootDB()
		if err != nil {
			return err
		}
		defer a.Close()

		db := a.DB()
		orders := services.NewOrderService(db,
			repositories.NewLotRepository(db),
			repositories.NewOrderRepository(db),
			repositories.NewUserRepository(db),
		)

		out := cmd.OutOrStdout()
		if statsOutput != "-" {
			f, err := os.Create(statsOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		n, err := orders.WriteSalesReport(cmd.Context(), out)
		if err != nil {
			return err
		}
		if statsOutput != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", n, statsOutput)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsOutput, "output", "o", "statistics.json", `output file ("-" for stdout)`)
}
