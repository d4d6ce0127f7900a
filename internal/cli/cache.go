package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weeks/pkg/offline"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the offline cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheListCommand())
	cmd.AddCommand(c.cacheInstallCommand())
	cmd.AddCommand(c.cacheActivateCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached response of every version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			keys, err := store.Keys(ctx, offline.NamePrefix)
			if err != nil {
				return fmt.Errorf("list cache: %w", err)
			}
			if len(keys) == 0 {
				printInfo("Cache is empty")
				return nil
			}
			for _, key := range keys {
				if err := store.Delete(ctx, key); err != nil {
					return fmt.Errorf("delete %s: %w", key, err)
				}
			}

			printSuccess("Cleared %d cached entries", len(keys))
			if dir, err := c.cacheDir(); err == nil && c.Config.Offline.RedisAddr == "" {
				printDetail("Directory: %s", dir)
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheListCommand creates the "cache list" subcommand.
func (c *CLI) cacheListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the requests cached by the current version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			transport, err := c.newTransport(store)
			if err != nil {
				return err
			}
			entries, err := transport.Entries(ctx)
			if err != nil {
				return fmt.Errorf("list cache: %w", err)
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), e)
			}
			return nil
		},
	}
}

// cacheInstallCommand creates the "cache install" subcommand.
func (c *CLI) cacheInstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "install [origin]",
		Short: "Precache the app shell of a deployment",
		Long: `Precache the app shell of a deployment.

Every asset listed in [offline] assets is fetched from the origin (default:
offline.origin) and stored under the current cache version. Either all assets
are stored or none are.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			origin := c.Config.Offline.Origin
			if len(args) == 1 {
				origin = args[0]
			}
			if origin == "" {
				return fmt.Errorf("no origin: pass one or set offline.origin")
			}

			store, err := c.newStore(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			transport, err := c.newTransport(store)
			if err != nil {
				return err
			}

			prog := newProgress(loggerFromContext(ctx))
			spinner := newSpinnerWithContext(ctx, "Precaching "+origin)
			spinner.Start()
			if err := transport.Install(ctx, origin, c.Config.Offline.Assets); err != nil {
				spinner.StopWithError("Precache failed")
				return err
			}
			spinner.Stop()
			prog.done(fmt.Sprintf("Precached %d assets into %s", len(c.Config.Offline.Assets), transport.Name()))

			printNextStep("Remove older versions", "weeks cache activate")
			return nil
		},
	}
}

// cacheActivateCommand creates the "cache activate" subcommand.
func (c *CLI) cacheActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Delete the entries of every other cache version",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.newStore(ctx, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			transport, err := c.newTransport(store)
			if err != nil {
				return err
			}
			removed, err := transport.Activate(ctx)
			if err != nil {
				return fmt.Errorf("activate %s: %w", transport.Name(), err)
			}
			printSuccess("Activated %s", transport.Name())
			printDetail("Removed %d outdated entries", removed)
			return nil
		},
	}
}
