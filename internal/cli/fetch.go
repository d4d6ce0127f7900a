package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/offline"
)

// fetchCommand creates the fetch command, a GET through the offline cache.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		output   string
		noCache  bool
		navigate bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Fetch a URL through the offline cache",
		Long: `Fetch a URL through the offline cache.

Responses are served from the cache when present and stored after a
successful network fetch. With --navigate the request is treated as a page
load: when the network is down, the cached root document is returned.`,
		Example: `  weeks fetch https://weeks.example.com/manifest.webmanifest
  weeks fetch https://weeks.example.com/some/page --navigate -o page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := errors.ValidateURL(args[0]); err != nil {
				return err
			}

			store, err := c.newStore(ctx, noCache)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			transport, err := c.newTransport(store)
			if err != nil {
				return err
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, args[0], nil)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
			}
			if navigate {
				req.Header.Set("Sec-Fetch-Mode", "navigate")
				req.Header.Set("Accept", "text/html")
			}

			var spinner *Spinner
			if output != "" {
				spinner = newSpinnerWithContext(ctx, "Fetching "+args[0])
				spinner.Start()
			}
			resp, err := transport.Client().Do(req)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			c.Logger.Info("fetched", "url", args[0], "status", resp.StatusCode, "cache", resp.Header.Get(offline.CacheStatusHeader))
			if resp.StatusCode >= 400 {
				return errors.New(errors.ErrCodeNetwork, "GET %s: %s", args[0], resp.Status)
			}

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if _, err := io.Copy(w, resp.Body); err != nil {
				return fmt.Errorf("write body: %w", err)
			}
			if output != "" {
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the body to a file instead of stdout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the offline cache")
	cmd.Flags().BoolVar(&navigate, "navigate", false, "treat the request as a page navigation")

	return cmd
}
