package cli

import (
	"github.com/spf13/cobra"
	"github.com/tinalabs/tina/internal/branding"
	"github.com/tinalabs/tina/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` scaffolds content-managed sites: a declarative collection/field
schema consumed by the CMS runtime, plus an init command that writes the
boilerplate a host project needs to become editable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
