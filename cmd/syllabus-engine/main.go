// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the syllabus-engine CLI.
// Implements: prd001-dates, prd002-extraction, prd003-store,
//             prd004-export (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface, § Project Structure.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the syllabus-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "syllabus-engine",
	Short: "Extract assignments from course schedule spreadsheets",
	Long: `syllabus-engine turns loosely structured course schedules (.xlsx or .csv)
into normalized assignment records: title, due date, course, description,
and type. No fixed layout is assumed; the engine infers which columns hold
dates and which cells carry assignments.

Each pipeline stage is a subcommand: extract runs the heuristic engine and
writes result files, store indexes them into a searchable local database,
and export renders assignments for planner import or calendar subscription.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./syllabus-engine.yaml or ~/.config/syllabus-engine/config.yaml)")
	rootCmd.PersistentFlags().String("planner-dir", "planner", "base directory for planner output (contains extracted/, index/)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("syllabus-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "syllabus-engine"))
		}
	}

	viper.SetEnvPrefix("SYLLABUS_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// plannerDir resolves the planner directory from the flag, falling back to
// the config file.
func plannerDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("planner-dir")
	if !cmd.Flags().Changed("planner-dir") && viper.IsSet("planner_dir") {
		dir = viper.GetString("planner_dir")
	}
	if dir == "" {
		dir = "planner"
	}
	return dir
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
