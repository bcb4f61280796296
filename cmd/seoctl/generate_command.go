package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kumar045/seo-website/internal/export"

	"github.com/spf13/cobra"
)

func newGenerateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate content for a keyword without storing it",
	}
	cmd.AddCommand(newGenerateArticleCommand(a))
	cmd.AddCommand(newGenerateLandingCommand(a))
	return cmd
}

func newGenerateArticleCommand(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "article <keyword>",
		Short: "Generate a blog post and print it as markdown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fm, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			pl, adapter, err := a.newPipeline()
			if err != nil {
				return err
			}
			defer adapter.Close()

			article, err := pl.GenerateArticle(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd, article)
			}
			out, err := export.Markdown(article, fm)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Front matter format: yaml or toml")
	return cmd
}

func newGenerateLandingCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "landing <keyword>",
		Short: "Generate a landing page and print it as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, adapter, err := a.newPipeline()
			if err != nil {
				return err
			}
			defer adapter.Close()

			page, err := pl.GenerateLandingPage(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return writeJSON(cmd, page)
		},
	}
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
