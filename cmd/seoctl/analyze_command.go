package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kumar045/seo-website/internal/model"

	"github.com/spf13/cobra"
)

func newKeywordCommand(a *app) *cobra.Command {
	var surface string

	cmd := &cobra.Command{
		Use:   "keyword <term>",
		Short: "Estimate volume and difficulty for a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := model.ParseSurface(surface)
			if err != nil {
				return err
			}
			pl, adapter, err := a.newPipeline()
			if err != nil {
				return err
			}
			defer adapter.Close()

			kw, err := pl.AnalyzeKeyword(cmd.Context(), strings.Join(args, " "), target)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd, kw)
			}

			printf(cmd, "Keyword:    %s (%s)\n", kw.Term, kw.Surface)
			printf(cmd, "Volume:     %d/month\n", kw.MonthlySearchVolume)
			printf(cmd, "Difficulty: %d/100\n", kw.DifficultyScore)
			printf(cmd, "Trend:      %s\n\n", kw.Trend)

			rows := make([][]string, 0, len(kw.TopCompetitors))
			for _, r := range kw.TopCompetitors {
				rows = append(rows, []string{strconv.Itoa(r.Rank), r.Title, r.URL})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"#", "Title", "URL"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&surface, "surface", "blog", "Target surface: blog or landing")
	return cmd
}

func newCompetitorCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "competitor <url>",
		Short: "Estimate organic reach for a competitor website",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pl, adapter, err := a.newPipeline()
			if err != nil {
				return err
			}
			defer adapter.Close()

			cm, err := pl.AnalyzeCompetitor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd, cm)
			}

			rows := [][]string{
				{"URL", cm.URL},
				{"Organic keywords", strconv.Itoa(cm.OrganicKeywords)},
				{"Monthly traffic", strconv.Itoa(cm.Traffic)},
				{"Top keywords", strings.Join(cm.TopKeywords, ", ")},
				{"Trend", string(cm.Trend)},
			}
			if cm.Title != "" {
				rows = append(rows, []string{"Title", cm.Title})
			}
			if cm.Estimated {
				rows = append(rows, []string{"Note", "estimated from hostname: " + cm.FetchError})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, nil))
			return nil
		},
	}
}
