package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kojioka/kojioka-go/pkg/kojioka"
)

// apiCall is one request against the Kojioka API.
type apiCall func(ctx context.Context, client *kojioka.Client) (kojioka.Response, error)

// statusCommand creates the "status" command.
func (c *CLI) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "status",
		Short:       "Report the Kojioka service status",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationUpdateCheck: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAPI(cmd.Context(), "Checking service status...", "Status",
				func(ctx context.Context, client *kojioka.Client) (kojioka.Response, error) {
					return client.Status(ctx)
				})
		},
	}
}

// streamCommand creates the "stream" command.
func (c *CLI) streamCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stream <query|url>...",
		Short: "Resolve a track name or URL to a playable stream",
		Long: `Resolve a track to a playable stream URL.

The query may be a free-text track name or a YouTube, SoundCloud or Spotify
URL. Multiple arguments are joined with spaces.`,
		Example: `  kojioka stream never gonna give you up
  kojioka stream https://www.youtube.com/watch?v=dQw4w9WgXcQ`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{annotationUpdateCheck: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			query := joinQuery(args)
			return c.runAPI(cmd.Context(), "Resolving stream...", "Fetched stream",
				func(ctx context.Context, client *kojioka.Client) (kojioka.Response, error) {
					return client.FetchStream(ctx, query)
				})
		},
	}
}

// searchCommand creates the "search" command.
func (c *CLI) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "search <query>...",
		Short:       "Search for a track without resolving a stream",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{annotationUpdateCheck: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			query := joinQuery(args)
			return c.runAPI(cmd.Context(), "Searching...", "Searched",
				func(ctx context.Context, client *kojioka.Client) (kojioka.Response, error) {
					return client.SearchTrack(ctx, query)
				})
		},
	}
}

// runAPI performs call and prints the response body to stdout.
func (c *CLI) runAPI(ctx context.Context, waiting, done string, call apiCall) error {
	client, err := c.newClient()
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	logger.Debug("using API", "base_url", client.BaseURL())

	var spinner *Spinner
	if isTerminal(c.errOut) {
		spinner = newSpinnerWithContext(ctx, c.errOut, waiting)
		spinner.Start()
	}
	prog := newProgress(logger)

	body, err := call(ctx, client)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	prog.done(done, "bytes", len(body))
	return printBody(c.out, body)
}

// isTerminal reports whether w is an interactive terminal. Redirects to
// /dev/null or a pipe are not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
