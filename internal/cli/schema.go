package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tinalabs/tina/internal/layout"
	"github.com/tinalabs/tina/internal/schema"
)

func init() {
	schemaCmd.AddCommand(schemaValidateCmd)
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Work with the project's schema definition",
}

var schemaValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a schema definition file",
	Long: `Validate a schema definition against the collection/field rules:
structural shape, unique field names within a collection, and reference
targets that resolve to existing collections.

Defaults to the project's .tina/schema.yaml when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			path = layout.Detect(cwd).SchemaFile
		}

		result, err := schema.ValidateFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if result.Valid {
			fmt.Fprintf(out, "%s is valid.\n", path)
			return nil
		}

		for _, issue := range result.Issues {
			if issue.Path != "" {
				fmt.Fprintf(out, "  ✗ %s: %s\n", issue.Path, issue.Message)
			} else {
				fmt.Fprintf(out, "  ✗ %s\n", issue.Message)
			}
		}
		return fmt.Errorf("%s: %d validation issue(s)", path, len(result.Issues))
	},
}
