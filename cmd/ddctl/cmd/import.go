// MIT License

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dalzilio/ddkit"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a previously exported ZDD and print its stats (C7 serializer)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("ddctl: import: %w", err)
		}
		defer in.Close()

		m, err := ddkit.New(demoN, ddkit.WithWorkers(workers))
		if err != nil {
			return err
		}
		roots, err := m.ImportZDD(in)
		if err != nil {
			return fmt.Errorf("ddctl: import: %w", err)
		}
		fmt.Printf("imported %d root(s) from %s\n", len(roots), args[0])
		for i, r := range roots {
			fmt.Printf("  root %d: cardinality=%s\n", i, m.CardinalityBig(r).String())
		}
		fmt.Print(m.Stats())
		return nil
	},
}

func init() {
	importCmd.Flags().IntVar(&demoN, "n", 6, "initial universe size (the import adds variables its levels need)")
}
