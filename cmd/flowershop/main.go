// Command flowershop runs the flower marketplace API and its maintenance
// tasks.
//
//	flowershop serve
//	flowershop migrate
//	flowershop seed
//	flowershop stats -o statistics.json
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/flowershop/config"
	"github.com/shashiranjanraj/flowershop/internal/kernel"
	"github.com/shashiranjanraj/flowershop/pkg/app"

	// Register migrations through their init() funcs.
	_ "github.com/shashiranjanraj/flowershop/database/migrations"
)

var (
	configPath string
	envPath    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "flowershop",
	Short:         "Flower marketplace API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "JSON config file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", config.DefaultEnvPath, "dotenv file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
}

// newApp loads configuration and returns an application with the
// marketplace routes attached. Nothing is connected yet.
func newApp() (*app.Application, error) {
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return app.New(cfg).Routes(kernel.API), nil
}

// bootDB returns an application with logger and database ready.
func bootDB() (*app.Application, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	if err := a.BootLogger(); err != nil {
		return nil, err
	}
	if err := a.BootDatabase(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
