package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tinalabs/tina/internal/branding"
	"github.com/tinalabs/tina/internal/installer"
	"github.com/tinalabs/tina/internal/layout"
	"github.com/tinalabs/tina/internal/scaffold"
	"github.com/tinalabs/tina/internal/telemetry"
	"github.com/tinalabs/tina/internal/ui"
)

var (
	initNoTelemetry bool
	initYes         bool
)

func init() {
	initCmd.Flags().BoolVar(&initNoTelemetry, "no-telemetry", false, "Do not send a usage event")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Answer yes to every prompt")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold a working blog demo into the current project",
	Long: `Set up the current project for content editing.

Installs the runtime packages, writes sample content, the starter schema,
provider components, a demo blog page, and an admin toggle page, and wires
the dev/build scripts into package.json. Every file write is skipped when
the target already exists, so re-running init is safe; only overwriting an
existing application entry point asks for confirmation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		return runInit(cmd, layout.Detect(cwd))
	},
}

// runInit drives the four pipeline stages in order: usage event, dependency
// install, scaffold, success report.
func runInit(cmd *cobra.Command, l layout.ProjectLayout) error {
	out := cmd.OutOrStdout()

	// Best-effort usage event; awaited so ordering stays deterministic,
	// never fatal.
	var opts []telemetry.Option
	if initNoTelemetry {
		opts = append(opts, telemetry.WithDisabled(true))
	}
	telemetry.New(opts...).Record(telemetry.NewInitEvent(buildVersion))

	ui.Heading(out, "Installing dependencies")
	installer.Install(l.Root, out)

	ui.Heading(out, "Scaffolding files")
	if err := scaffold.New(l, out, confirmFunc(out, cmd.InOrStdin())).Run(); err != nil {
		return err
	}

	ui.Banner(out, fmt.Sprintf("%s is ready!\nRun `npm run %s-dev` and visit /admin to start editing.",
		branding.DisplayName(), branding.CLIName()))
	return nil
}

// confirmFunc returns the prompt used before overwriting user files.
// With --yes it answers without asking; otherwise it reads one line from
// in, treating anything but y/yes as a decline.
func confirmFunc(out io.Writer, in io.Reader) scaffold.ConfirmFunc {
	if initYes {
		return func(string) bool { return true }
	}

	scanner := bufio.NewScanner(in)
	return func(prompt string) bool {
		fmt.Fprint(out, "? "+prompt)
		if !scanner.Scan() {
			return false
		}
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes"
	}
}
