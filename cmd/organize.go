package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mediasort/internal"
)

var (
	sourceFlag       string
	destinationFlag  string
	profileFlag      string
	templateFlag     string
	profilesPathFlag string
	actionFlag       string
	dryRunFlag       bool
	recursiveFlag    bool
	followSymlinks   bool
	includeExtFlag   []string
	excludeExtFlag   []string
	extraFlag        []string
	useExifTool      bool
	reportFlag       string
	verboseFlag      bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Classify files by capture date and relocate them",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		applyFlags(cmd, conf)

		if conf.Source == "" || conf.Destination == "" {
			return fmt.Errorf("missing --source or --destination and no defaults set")
		}
		action, err := internal.ParseAction(string(conf.Action))
		if err != nil {
			return err
		}
		conf.Action = action

		extra, err := parseExtra(extraFlag)
		if err != nil {
			return err
		}
		for k, v := range extra {
			conf.Extra[k] = v
		}

		profiles, err := internal.LoadTemplateProfiles(profilesPathFlag)
		if err != nil {
			return err
		}
		if templateFlag == "" && (cmd.Flags().Changed("profile") || conf.Template == "") {
			if _, ok := internal.DefaultTemplates[profileFlag]; !ok {
				if _, ok := profiles[profileFlag]; !ok {
					return fmt.Errorf("profile %q is not defined", profileFlag)
				}
			}
			conf.Template = profileFlag
		}

		files, err := internal.ScanMediaFiles(conf.Source, internal.ScanOptions{
			Recursive:      conf.Recursive,
			FollowSymlinks: conf.FollowSymlinks,
			IncludeExt:     conf.NormalizedIncludeExt(),
			ExcludeExt:     conf.NormalizedExcludeExt(),
		})
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No files found to process.")
			return nil
		}

		logger, err := internal.NewLogger("mediasort.log", conf.Verbose)
		if err != nil {
			return err
		}
		defer logger.Close()

		internal.InitImageSupport()

		organizer, err := internal.NewOrganizer(conf, profiles, logger)
		if err != nil {
			return err
		}
		defer organizer.Close()

		if reportFlag != "" {
			report, err := internal.NewReportWriter(reportFlag)
			if err != nil {
				return err
			}
			defer report.Close()
			organizer.SetReport(report)
		}

		fmt.Printf("Processing %d files from %s to %s...\n", len(files), conf.Source, conf.Destination)
		if conf.DryRun {
			fmt.Println("Dry run mode: no files will be touched")
		}

		summary := organizer.Organize(files)
		renderSummary(summary)
		return nil
	},
}

// applyFlags overlays explicitly-set flags on the loaded config.
func applyFlags(cmd *cobra.Command, conf *internal.Config) {
	if sourceFlag != "" {
		conf.Source = sourceFlag
	}
	if destinationFlag != "" {
		conf.Destination = destinationFlag
	}
	if actionFlag != "" {
		conf.Action = internal.Action(strings.ToLower(actionFlag))
	}
	if templateFlag != "" {
		conf.Template = templateFlag
	}
	if len(includeExtFlag) > 0 {
		conf.IncludeExt = includeExtFlag
	}
	if len(excludeExtFlag) > 0 {
		conf.ExcludeExt = excludeExtFlag
	}
	if cmd.Flags().Changed("dry-run") {
		conf.DryRun = dryRunFlag
	}
	if cmd.Flags().Changed("recursive") {
		conf.Recursive = recursiveFlag
	}
	if cmd.Flags().Changed("follow-symlinks") {
		conf.FollowSymlinks = followSymlinks
	}
	if cmd.Flags().Changed("exiftool") {
		conf.UseExifTool = useExifTool
	}
	if cmd.Flags().Changed("verbose") {
		conf.Verbose = verboseFlag
	}
}

// parseExtra turns repeated key=value arguments into template context fields.
func parseExtra(items []string) (map[string]string, error) {
	extra := make(map[string]string, len(items))
	for _, item := range items {
		key, value, ok := strings.Cut(item, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("extra argument %q must have the form key=value", item)
		}
		extra[key] = value
	}
	return extra, nil
}

func renderSummary(summary *internal.OrganizeSummary) {
	statusColors := map[string]*color.Color{
		internal.StatusMoved:   color.New(color.FgGreen),
		internal.StatusCopied:  color.New(color.FgGreen),
		internal.StatusLinked:  color.New(color.FgGreen),
		internal.StatusDryRun:  color.New(color.FgCyan),
		internal.StatusSkipped: color.New(color.FgYellow),
		internal.StatusFailed:  color.New(color.FgRed),
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tDESTINATION\tSTATUS\tCATEGORY\tMESSAGE")
	for _, r := range summary.Results {
		status := r.Status
		if c, ok := statusColors[r.Status]; ok {
			status = c.Sprint(r.Status)
		}
		category := "-"
		if r.Category != "" {
			category = r.Category.Label()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Source, r.Destination, status, category, r.Message)
	}
	w.Flush()

	total := summary.Total()
	counts := summary.StatusCounts()
	fmt.Println()
	for _, status := range []string{
		internal.StatusMoved, internal.StatusCopied, internal.StatusLinked,
		internal.StatusDryRun, internal.StatusSkipped, internal.StatusFailed,
	} {
		if counts[status] == 0 {
			continue
		}
		fmt.Printf("  %s: %d (%.1f%%)\n", status, counts[status], float64(counts[status])/float64(total)*100)
	}

	categories := summary.CategoryCounts()
	if len(categories) > 0 {
		labels := make([]string, 0, len(categories))
		for label := range categories {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		fmt.Println("By category:")
		for _, label := range labels {
			fmt.Printf("  %s: %d\n", label, categories[label])
		}
	}

	fmt.Printf("Total: %d files, %s\n", total, humanize.Bytes(uint64(summary.TotalBytes())))
}

func init() {
	organizeCmd.Flags().StringVarP(&sourceFlag, "source", "s", "", "Source directory to scan")
	organizeCmd.Flags().StringVarP(&destinationFlag, "destination", "d", "", "Destination directory")
	organizeCmd.Flags().StringVarP(&profileFlag, "profile", "p", "default", "Template profile name")
	organizeCmd.Flags().StringVar(&templateFlag, "template", "", "Custom template (overrides --profile)")
	organizeCmd.Flags().StringVar(&profilesPathFlag, "profiles-path", "", "YAML file with additional template profiles")
	organizeCmd.Flags().StringVarP(&actionFlag, "action", "a", "", "Action to apply: move, copy or link")
	organizeCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Show changes without touching files")
	organizeCmd.Flags().BoolVar(&recursiveFlag, "recursive", true, "Scan the source recursively")
	organizeCmd.Flags().BoolVar(&followSymlinks, "follow-symlinks", false, "Follow symbolic links while scanning")
	organizeCmd.Flags().StringSliceVar(&includeExtFlag, "include-ext", nil, "Extensions to include (repeatable)")
	organizeCmd.Flags().StringSliceVar(&excludeExtFlag, "exclude-ext", nil, "Extensions to exclude (repeatable)")
	organizeCmd.Flags().StringArrayVar(&extraFlag, "extra", nil, "key=value pairs available in the template")
	organizeCmd.Flags().BoolVar(&useExifTool, "exiftool", false, "Read image metadata through the exiftool binary")
	organizeCmd.Flags().StringVar(&reportFlag, "report", "", "Write a JSONL run report to this path")
	organizeCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose run log")

	rootCmd.AddCommand(organizeCmd)
}
