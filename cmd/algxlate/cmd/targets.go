package cmd

import (
	"fmt"

	"github.com/algxlate/algxlate/internal/compiler"
	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List or describe the registered transpilation targets",
}

var targetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered target names",
	Run: func(cmd *cobra.Command, args []string) {
		reg := compiler.NewRegistry()
		for _, name := range reg.List() {
			fmt.Println(name)
		}
	},
}

var targetsDescribeCmd = &cobra.Command{
	Use:   "describe [name]",
	Short: "Print a registered target's plugin record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := compiler.NewRegistry()
		t, err := reg.Find(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("name:        %s\n", t.Name)
		fmt.Printf("extension:   %s\n", t.Extension)
		fmt.Printf("description: %s\n", t.Description)
		fmt.Printf("mime:        %s\n", t.MIME)
		fmt.Printf("version:     %s\n", t.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsListCmd)
	targetsCmd.AddCommand(targetsDescribeCmd)
}
