package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"site-admin/internal/logging"
	"site-admin/internal/sandbox"
)

var (
	sandboxAddr  string
	sandboxDB    string
	sandboxToken string
	sandboxSeed  bool
	seedReset    bool
	seedPosts    int
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run a local content API for trying things out",
	Long: `The sandbox is a self-contained content API backed by SQLite. It speaks
the same envelope, pagination, search, facets and sorting as the real API,
so every command and the TUI can be pointed at it.

Examples:
  siteadmin sandbox serve --seed
  siteadmin sandbox serve --addr 127.0.0.1:9090 --token secret
  siteadmin sandbox seed --reset --posts 60`,
}

var sandboxServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sandbox API",
	RunE:  runSandboxServe,
}

var sandboxSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the sandbox with sample content",
	RunE:  runSandboxSeed,
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
	sandboxCmd.AddCommand(sandboxServeCmd)
	sandboxCmd.AddCommand(sandboxSeedCmd)

	sandboxCmd.PersistentFlags().StringVar(&sandboxDB, "db", "", "Sandbox database file (default from sandbox_db_path)")

	sandboxServeCmd.Flags().StringVar(&sandboxAddr, "addr", "", "Listen address (default from sandbox_addr)")
	sandboxServeCmd.Flags().StringVar(&sandboxToken, "token", "", "Require this bearer token")
	sandboxServeCmd.Flags().BoolVar(&sandboxSeed, "seed", false, "Seed sample content when the sandbox is empty")

	sandboxSeedCmd.Flags().BoolVar(&seedReset, "reset", false, "Remove existing records first")
	sandboxSeedCmd.Flags().IntVar(&seedPosts, "posts", 24, "Number of posts to create")
}

func openSandbox() (*sandbox.Store, error) {
	path := sandboxDB
	if path == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		path = cfg.SandboxDBPath
	}
	store, err := sandbox.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox database: %w", err)
	}
	return store, nil
}

func runSandboxServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cfg)
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	addr := sandboxAddr
	if addr == "" {
		addr = cfg.SandboxAddr
	}

	store, err := openSandbox()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if sandboxSeed {
		n, err := store.Count(ctx, "")
		if err != nil {
			return err
		}
		if n == 0 {
			counts, err := sandbox.Seed(ctx, store, sandbox.SeedOptions{})
			if err != nil {
				return fmt.Errorf("failed to seed sandbox: %w", err)
			}
			logger.Info("seeded sandbox", "records", total(counts))
		}
	}

	srv := &http.Server{
		Addr: addr,
		Handler: sandbox.NewServer(store, sandbox.Config{
			Token:       sandboxToken,
			MaxPageSize: cfg.MaxPageSize,
		}, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	styles := stylesFor(cfg.ThemeName)
	fmt.Fprintln(cmd.OutOrStdout(), styles.Success.Render(fmt.Sprintf("✓ Sandbox API listening on http://%s", addr)))
	fmt.Fprintln(cmd.OutOrStdout(), styles.Info.Render(fmt.Sprintf("  siteadmin --api-url http://%s tui", addr)))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("sandbox server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down sandbox")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runSandboxSeed(cmd *cobra.Command, args []string) error {
	store, err := openSandbox()
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := sandbox.Seed(cmd.Context(), store, sandbox.SeedOptions{Reset: seedReset, Posts: seedPosts})
	if err != nil {
		return fmt.Errorf("failed to seed sandbox: %w", err)
	}

	printSeedCounts(cmd, counts)
	return nil
}

func printSeedCounts(cmd *cobra.Command, counts map[string]int) {
	out := cmd.OutOrStdout()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "✓ Seeded %d records\n", total(counts))
	for _, name := range names {
		fmt.Fprintf(out, "  %-14s %d\n", name+":", counts[name])
	}
}

func total(counts map[string]int) int {
	n := 0
	for _, c := range counts {
		n += c
	}
	return n
}
