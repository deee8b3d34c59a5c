package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"site-admin/internal/catalog"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "List the content types that can be managed",
	Long: `List every resource with its aliases, how it pages and which facets
it can be filtered by. Any alias works wherever a command takes <resource>.`,
	Args: cobra.NoArgs,
	RunE: runResources,
}

func init() {
	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, args []string) error {
	styles := stylesFor(currentThemeName())
	out := cmd.OutOrStdout()

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render(" Resources "))
	fmt.Fprintln(out)
	for _, r := range catalog.All() {
		facets := make([]string, len(r.Facets))
		for i, f := range r.Facets {
			facets[i] = string(f)
		}
		line := fmt.Sprintf("  %-14s %-7s sort %-12s", r.Name, r.Paging, r.DefaultSort.Param())
		if len(facets) > 0 {
			line += " facets: " + strings.Join(facets, ", ")
		}
		fmt.Fprintln(out, line)
		if len(r.Aliases) > 0 {
			fmt.Fprintln(out, styles.Subtitle.Render("                 aliases: "+strings.Join(r.Aliases, ", ")))
		}
	}
	fmt.Fprintln(out)
	return nil
}
