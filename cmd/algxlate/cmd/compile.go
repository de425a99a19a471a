package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/algxlate/algxlate/internal/compiler"
	"github.com/algxlate/algxlate/internal/config"
	"github.com/algxlate/algxlate/pkg/srcast"
	"github.com/spf13/cobra"
)

var (
	targetName   string
	outputFile   string
	jsonOutput   bool
	warningsOnly bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [source-ast.json]",
	Short: "Transpile a Source AST into one target language",
	Long: `compile reads a JSON-encoded Source AST, lowers it to the intermediate
language, infers types, and emits target-language source text.

Examples:
  # Transpile to C, writing alongside the input
  algxlate compile program.json --target c

  # Transpile to Ruby and print the structured result as JSON
  algxlate compile program.json --target ruby --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&targetName, "target", "t", "", "target language (c, ruby, typescript)")
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: derived from input name + target extension)")
	compileCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the structured (code, dependencies, warnings) result as JSON")
	compileCmd.Flags().BoolVar(&warningsOnly, "warnings-only", false, "with --json, omit the code field from the result")
	compileCmd.MarkFlagRequired("target")
}

func runCompile(cmd *cobra.Command, args []string) error {
	filename := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Compiling %s -> %s...\n", filename, targetName)
	}

	prog, err := srcast.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode Source AST from %s: %w", filename, err)
	}

	proj, err := config.Load(configPath)
	if err != nil {
		return err
	}

	reg := compiler.NewRegistry()
	opts := proj.OptionsFor(targetName)

	res, err := compiler.Compile(reg, prog, filename, string(data), targetName, opts)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		fmt.Fprintln(os.Stderr, w.Format(false))
	}

	if jsonOutput {
		out, err := compiler.ToJSON(res)
		if err != nil {
			return err
		}
		if warningsOnly {
			out, err = compiler.WarningsOnlyJSON(out)
			if err != nil {
				return err
			}
		}
		fmt.Println(out)
		return nil
	}

	t, err := reg.Find(targetName)
	if err != nil {
		return err
	}
	outFile := outputFile
	if outFile == "" {
		ext := filepath.Ext(filename)
		base := filename
		if ext != "" {
			base = filename[:len(filename)-len(ext)]
		}
		outFile = base + t.Extension
	}

	if err := os.WriteFile(outFile, []byte(res.Code), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outFile, err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes, %d warning(s))\n", outFile, len(res.Code), len(res.Warnings))
	} else {
		fmt.Printf("Compiled %s -> %s\n", filename, outFile)
	}
	return nil
}
