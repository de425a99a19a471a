package cmd

import (
	"fmt"
	"os"

	"github.com/algxlate/algxlate/internal/lowering"
	"github.com/algxlate/algxlate/internal/types"
	"github.com/algxlate/algxlate/pkg/il"
	"github.com/algxlate/algxlate/pkg/srcast"
	"github.com/spf13/cobra"
)

var inspectILCmd = &cobra.Command{
	Use:   "inspect-il [source-ast.json]",
	Short: "Lower and type-infer a Source AST, then print the resulting IL tree",
	Long: `inspect-il runs only the first two pipeline stages (lowering and type
inference) and prints the resulting IL module as an indented tree, for
debugging the lowerer or type inference without committing to a target.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspectIL,
}

func init() {
	rootCmd.AddCommand(inspectILCmd)
}

func runInspectIL(cmd *cobra.Command, args []string) error {
	filename := args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	prog, err := srcast.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode Source AST from %s: %w", filename, err)
	}

	mod, diags, err := lowering.Lower(prog, filename, string(data))
	if err != nil {
		return err
	}
	types.Infer(mod)

	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.Format(false))
	}
	fmt.Print(il.Dump(mod))
	return nil
}
