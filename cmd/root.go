package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time from the embedded VERSION file.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "mediasort",
	Short:   "Organize media and document files into date-based folders",
	Version: Version,
}

// ApplyVersion re-applies Version after an embed updates it.
func ApplyVersion() {
	rootCmd.Version = Version
}

func Execute() error {
	return rootCmd.Execute()
}
