// MIT License

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Build the demo diagram and print node-store/cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, _, err := buildDemo(demoN, demoK)
		if err != nil {
			return err
		}
		fmt.Print(m.Stats())
		return nil
	},
}

func init() {
	statsCmd.Flags().IntVar(&demoN, "n", 6, "universe size")
	statsCmd.Flags().IntVar(&demoK, "k", 3, "maximum subset size")
}
