package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/weeks/pkg/i18n"
	"github.com/matzehuels/weeks/pkg/weeks"
)

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	var (
		lang   string
		total  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "count <birth-date>",
		Short: "Count the weeks lived and remaining",
		Example: `  weeks count 1990-05-17
  weeks count 1990-05-17 --lang de
  weeks count 1990-05-17 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := c.language(lang)
			if err != nil {
				return err
			}
			date := args[0]
			if err := weeks.ValidateBirthDate(date, c.now()); err != nil {
				return err
			}
			counts, err := weeks.Count(date, c.now(), total)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(countOutput{
					BirthDate: date,
					Lived:     counts.Lived,
					Remaining: counts.Remaining,
					Total:     counts.Total,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("encode counts: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			m := l.Messages()
			printKeyValue(m.Born, i18n.FormatDate(date, l))
			printKeyValue(m.WeeksLived, StyleNumber.Render(i18n.FormatNumber(counts.Lived, l)))
			printKeyValue(m.WeeksRemaining, StyleNumber.Render(i18n.FormatNumber(counts.Remaining, l)))
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "display language: en, de (default: share.language)")
	cmd.Flags().IntVar(&total, "total", weeks.Total, "weeks in the grid")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print counts as JSON")

	return cmd
}

type countOutput struct {
	BirthDate string `json:"birth_date"`
	Lived     int    `json:"lived"`
	Remaining int    `json:"remaining"`
	Total     int    `json:"total"`
}

// language resolves a --lang flag, falling back to the configured language.
func (c *CLI) language(flag string) (i18n.Language, error) {
	if flag == "" {
		return c.Config.Share.Language, nil
	}
	return i18n.ParseLanguage(flag)
}

// lived validates date and returns the weeks lived as of now.
func (c *CLI) lived(date string, total int) (int, error) {
	now := c.now()
	if err := weeks.ValidateBirthDate(date, now); err != nil {
		return 0, err
	}
	return weeks.ElapsedSince(date, now, total)
}
