// Package main provides the docfeed CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/docfeed/internal/config"
	"github.com/gauthierbraillon/docfeed/internal/display"
	"github.com/gauthierbraillon/docfeed/internal/feed"
	"github.com/gauthierbraillon/docfeed/internal/logger"
	"github.com/gauthierbraillon/docfeed/internal/remote"
	"github.com/gauthierbraillon/docfeed/internal/server"
	"github.com/gauthierbraillon/docfeed/internal/site"
	"github.com/gauthierbraillon/docfeed/pkg/browser"
)

func main() {
	err := newRootCmd().Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	contentDir string
	logLevel   string
}

// newRootCmd creates the root command for docfeed CLI.
func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "docfeed",
		Short:         "Generate the RSS feed of a documentation site",
		Long:          "Docfeed reads the site's Markdown collection and builds its RSS feed, newest articles first.",
		Version:       currentVersion(),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.SetVersionTemplate("docfeed version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Site config file (default docfeed.yaml or $DOCFEED_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.contentDir, "content", "", "Content directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newBuildCmd(flags))
	rootCmd.AddCommand(newServeCmd(flags))
	rootCmd.AddCommand(newListCmd(flags))
	rootCmd.AddCommand(newCheckCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))

	return rootCmd
}

// loadConfig resolves configuration from .env, the site file, the
// environment and flags, then initialises logging.
func loadConfig(flags *globalFlags) (config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(config.ResolvePath(flags.configPath))
	if err != nil {
		return config.Config{}, err
	}
	if flags.contentDir != "" {
		cfg.ContentDir = flags.contentDir
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := logger.Init(cfg.Log); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openSite loads configuration and the content collection.
func openSite(ctx context.Context, flags *globalFlags) (*site.Service, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	svc, err := site.Open(ctx, cfg, site.WithLogger(logger.L))
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return svc, nil
}

// newBuildCmd creates the build subcommand.
func newBuildCmd(flags *globalFlags) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Write the RSS feed to the output directory",
		Long:  "Load the content collection and write the generated feed to <out>/<feed path>.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := openSite(ctx, flags)
			if err != nil {
				return err
			}

			out, err := svc.Generate(ctx)
			if err != nil {
				return fmt.Errorf("failed to generate feed: %w", err)
			}

			target := filepath.Join(outDir, filepath.FromSlash(svc.Config().Feed.Path))
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(target, out, 0o644); err != nil { // #nosec G306 -- public site asset
				return fmt.Errorf("failed to write feed: %w", err)
			}

			logger.L.Infow("feed written", "path", target, "bytes", len(out))
			fmt.Fprintf(cmd.OutOrStdout(), "Feed written to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "Output directory")

	return cmd
}

// newServeCmd creates the serve subcommand.
func newServeCmd(flags *globalFlags) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the RSS feed over HTTP",
		Long:  "Serve the feed, regenerated on every request, until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, err := openSite(ctx, flags)
			if err != nil {
				return err
			}
			feedPath := svc.Config().Feed.Path
			srv := server.New(svc, feedPath, logger.L)

			url := "http://" + displayAddr(addr) + feedPath
			fmt.Fprintf(cmd.OutOrStdout(), "Serving feed at %s\n", url)
			if open {
				if err := browser.Open(url); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Could not open browser: %v\n", err)
				}
			}

			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "localhost:4321", "Listen address")
	cmd.Flags().BoolVar(&open, "open", false, "Open the feed in the browser")

	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

// newListCmd creates the list subcommand.
func newListCmd(flags *globalFlags) *cobra.Command {
	var limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Display feed entries",
		Long:  "Display the entries the feed would contain, newest first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := openSite(ctx, flags)
			if err != nil {
				return err
			}

			entries, err := svc.Entries(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			formatter := display.NewTerminalFormatter()
			formatter.ShowDescription = verbose
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeed(entries))
			fmt.Fprint(cmd.OutOrStdout(), "\n"+formatter.FormatSummary(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of entries to display (0 = all)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show descriptions")

	return cmd
}

// newCheckCmd creates the check subcommand.
func newCheckCmd(flags *globalFlags) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check [url]",
		Short: "Fetch and display a deployed feed",
		Long:  "Fetch the feed of a deployed site (default: the configured site) and display its entries.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			target := cfg.Site
			if len(args) == 1 {
				target = args[0]
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client := remote.NewClient(remote.WithFeedPath(cfg.Feed.Path))
			fetched, err := client.Fetch(ctx, target)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			entries := make([]feed.Entry, 0, len(fetched.Items))
			for _, it := range fetched.Items {
				entries = append(entries, feed.Entry{
					Title:       it.Title,
					Description: it.Description,
					Link:        it.Link,
					PubDate:     it.Published,
					Dated:       !it.Published.IsZero(),
				})
			}

			formatter := display.NewTerminalFormatter()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n\n", fetched.Title, fetched.Language)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFeed(entries))
			fmt.Fprint(cmd.OutOrStdout(), "\n"+formatter.FormatSummary(entries))
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Request timeout")

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long:  "Print the configuration after applying the site file, .env and environment overrides.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Feed URL: %s\n\n", cfg.FeedURL())
			fmt.Fprint(cmd.OutOrStdout(), cfg.String())
			return nil
		},
	}

	return cmd
}
