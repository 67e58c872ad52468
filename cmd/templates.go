package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mediasort/internal"
)

var templatesProfilesPath string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List built-in templates and loaded profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		profiles, err := internal.LoadTemplateProfiles(templatesProfilesPath)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTEMPLATE\tDESCRIPTION")

		names := make([]string, 0, len(internal.DefaultTemplates))
		for name := range internal.DefaultTemplates {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "%s\t%s\tbuilt-in\n", name, internal.DefaultTemplates[name])
		}

		profileNames := make([]string, 0, len(profiles))
		for name := range profiles {
			profileNames = append(profileNames, name)
		}
		sort.Strings(profileNames)
		for _, name := range profileNames {
			p := profiles[name]
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Template, p.Description)
		}
		return w.Flush()
	},
}

func init() {
	templatesCmd.Flags().StringVar(&templatesProfilesPath, "profiles-path", "", "YAML file with additional template profiles")
	rootCmd.AddCommand(templatesCmd)
}
