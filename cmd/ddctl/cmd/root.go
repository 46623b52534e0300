// MIT License

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	workers int
	verbose bool
)

// rootCmd is the ddctl entry point. Grounded on
// junjiewwang-perf-analysis's cmd/cli/cmd/root.go: a persistent-flag set
// read through viper, with subcommands doing the actual work.
var rootCmd = &cobra.Command{
	Use:   "ddctl",
	Short: "Demonstration CLI for the ddkit decision-diagram kernel",
	Long: `ddctl drives the ddkit Builder and Serializer against a bundled
demonstration specification. It does not parse arbitrary input graphs into
a Spec -- every subcommand either builds the bundled "subsets of size <= K"
diagram or round-trips a previously exported one.`,
}

// Execute runs the root command, exiting the process with status 1 on
// error (spec.md §7: CLI errors are reported, not panicked).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ddctl:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./ddctl.yaml)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "builder worker-pool size (spec.md §5)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose flag (read from flags/config; no subcommand uses it)")

	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(statsCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ddctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.AutomaticEnv()
	// Config is optional: a missing ddctl.yaml just means defaults apply.
	_ = viper.ReadInConfig()

	if viper.IsSet("workers") {
		workers = viper.GetInt("workers")
	}
	if viper.IsSet("verbose") {
		verbose = viper.GetBool("verbose")
	}
}
