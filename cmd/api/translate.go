package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"newsletter-api/core/domain"
	"newsletter-api/pkg/config"
)

func translateCmd(load func() (*config.Config, error)) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate texts into fr, en or es",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, ok := domain.ParseTargetLanguage(target)
			if !ok {
				return errors.New("target must be one of fr, en, es")
			}

			cfg, err := load()
			if err != nil {
				return err
			}

			a, err := buildApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			results, err := a.translator.Translate(cmd.Context(), args, lang)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", r.DetectedLang, r.Translated)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "to", string(domain.LanguageFrench), "target language")

	return cmd
}
