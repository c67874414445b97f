package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"newsletter-api/core/domain"
	"newsletter-api/pkg/config"
)

func generateCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		theme    string
		period   string
		format   string
		out      string
		sources  []string
		excluded []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one newsletter and write it to a file or stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			a, err := buildApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			req := domain.NewsletterRequest{
				Theme:            theme,
				PreferredSources: sources,
				ExcludedSites:    excluded,
				Format:           domain.Format(strings.ToLower(format)),
			}
			if cmd.Flags().Changed("period") {
				req.Period = &period
			}

			nl, err := a.newsletter.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), nl.Document)
				return err
			}
			if err := os.WriteFile(out, []byte(nl.Document), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d sources, %d actualités, %d compléments -> %s\n",
				nl.ResultsCount, nl.NewsCount, nl.AdditionalCount, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&theme, "theme", "t", "", "newsletter topic")
	cmd.Flags().StringVar(&period, "period", "", "period such as \"24h\", \"cette semaine\" or \"mars 2024\"")
	cmd.Flags().StringVarP(&format, "format", "f", string(domain.FormatHTML), "html or markdown")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "preferred source domain (repeatable)")
	cmd.Flags().StringSliceVar(&excluded, "exclude", nil, "excluded site domain (repeatable)")
	_ = cmd.MarkFlagRequired("theme")

	return cmd
}
