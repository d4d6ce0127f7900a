package cli

import (
	stderrors "errors"
	"fmt"
	"net/url"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weeks/pkg/errors"
	"github.com/matzehuels/weeks/pkg/i18n"
	"github.com/matzehuels/weeks/pkg/render/sink"
	"github.com/matzehuels/weeks/pkg/share"
	"github.com/matzehuels/weeks/pkg/state"
	"github.com/matzehuels/weeks/pkg/weeks"
)

// writeClipboard is replaced in tests.
var writeClipboard = func(text string) error {
	if clipboard.Unsupported {
		return stderrors.New("no clipboard utility available")
	}
	return clipboard.WriteAll(text)
}

// copyToClipboard writes text to the system clipboard.
func copyToClipboard(text string) error {
	if err := writeClipboard(text); err != nil {
		return errors.Wrap(errors.ErrCodeClipboardUnavailable, err, "copy to clipboard")
	}
	return nil
}

// shareCommand creates the share command.
func (c *CLI) shareCommand() *cobra.Command {
	var (
		lang        string
		base        string
		toClipboard bool
	)

	cmd := &cobra.Command{
		Use:   "share <birth-date>",
		Short: "Build a link that reopens the grid for a birth date",
		Long: `Build a link that reopens the grid for a birth date.

The language travels in clear text, the birth date as an opaque token:

  https://weeks.example.com/?lang=en&date=MTk5MC0wNS0xNw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.language(lang)
			if err != nil {
				return err
			}
			if base == "" {
				base = c.Config.Share.BaseURL
			}
			date := args[0]
			if err := weeks.ValidateBirthDate(date, c.now()); err != nil {
				return err
			}

			link, err := share.State{BirthDate: date, Language: l}.URL(base)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)

			if toClipboard {
				if err := copyToClipboard(link); err != nil {
					c.Logger.Warn(l.Messages().CopyFailed, "err", errors.UserMessage(err))
					return nil
				}
				printSuccess("%s", l.Messages().Copied)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "link language: en, de (default: share.language)")
	cmd.Flags().StringVar(&base, "base", "", "base URL (default: share.base_url)")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "copy the link to the clipboard")

	return cmd
}

// openCommand creates the open command, which restores the state of a
// shared link.
func (c *CLI) openCommand() *cobra.Command {
	var preview bool

	cmd := &cobra.Command{
		Use:   "open <link>",
		Short: "Show the view a shared link opens",
		Long: `Show the view a shared link opens.

Unknown languages and undecodable dates are ignored, just as the app ignores
them: such links open the intake screen.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.openLink(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "view: %s\nlanguage: %s\n", s.View, s.Language)
			if s.View != state.Visualization {
				return nil
			}
			l := s.Language
			fmt.Fprintf(out, "born: %s\nlived: %s\nremaining: %s\n",
				i18n.FormatDate(s.BirthDate, l),
				i18n.FormatNumber(s.Lived, l),
				i18n.FormatNumber(s.Remaining(), l))

			if preview {
				cons := c.terminalConstraints()
				r := computeLayout(cmd.Context(), cons.TotalItems, s.Bounds(cons), cons)
				fmt.Fprintln(out, sink.RenderText(r, s.Lived, sink.WithTextItems(cons.TotalItems)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preview, "preview", false, "print a text preview of the grid")

	return cmd
}

// openLink reduces a shared link into the state it opens.
func (c *CLI) openLink(link string) (state.State, error) {
	u, err := url.Parse(link)
	if err != nil {
		return state.State{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse link")
	}
	s := state.New(c.Config.Share.Language, c.Config.Grid.TotalItems)
	s = state.Reduce(s, state.ViewportResized{Box: defaultTerminal})
	s = state.Reduce(s, state.Loaded{Query: u.RawQuery, Now: c.now()})
	return s, nil
}
