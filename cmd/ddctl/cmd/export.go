// MIT License

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Build the demo diagram and export it to a file (C7 serializer)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, f, err := buildDemo(demoN, demoK)
		if err != nil {
			return err
		}
		out, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("ddctl: export: %w", err)
		}
		defer out.Close()
		if err := m.ExportOne(out, f); err != nil {
			return fmt.Errorf("ddctl: export: %w", err)
		}
		fmt.Printf("exported demo diagram to %s\n", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&demoN, "n", 6, "universe size")
	exportCmd.Flags().IntVar(&demoK, "k", 3, "maximum subset size")
}
