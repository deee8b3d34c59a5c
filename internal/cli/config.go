package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"site-admin/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
	Long: `Show and change settings stored in the config file.

Every setting can also come from the environment as SITEADMIN_<KEY>, for
example SITEADMIN_API_TOKEN, which takes precedence over the file. A .env
file in the working directory is loaded first.

Examples:
  siteadmin config show
  siteadmin config set api_url https://cms.example.com/api
  siteadmin config set page_size 25
  siteadmin config path`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigFile())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg)

	styles := stylesFor(cfg.ThemeName)
	out := cmd.OutOrStdout()
	values := cfg.Values()

	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Header.Render(" Settings "))
	fmt.Fprintln(out)
	for _, k := range config.Keys() {
		v := fmt.Sprint(values[k])
		if k == "api_token" && v != "" {
			v = maskSecret(v)
		}
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(out, "  %-24s %s\n", k, v)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Subtitle.Render("  file: "+config.GetConfigFile()))
	fmt.Fprintln(out)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := config.Set(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s updated\n", args[0])
	return nil
}

// maskSecret keeps the last four characters of a token.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
