package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/checkdisout/checkdisout/pkg/export"
	"github.com/checkdisout/checkdisout/pkg/portfolio"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

//nolint:gochecknoglobals // Cobra boilerplate
var statsFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var statsCmd = &cobra.Command{
	Use:   "stats <portfolio-file-or-url>",
	Short: "Summarize a portfolio",
	Long: `Print counts for a portfolio: records per collection, wins and podium
finishes, online and offline events, solo and team efforts, and the most used
technologies and tags.

Example:
  checkdisout stats portfolio.json
  checkdisout stats portfolio.yaml --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsFormat, "format", "text", "Output format: text, json or yaml")
}

func runStats(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	_, err = setup()
	if err != nil {
		return err
	}

	var in export.Input
	in, err = loadDocument(ctx, cmd, args[0], "")
	if err != nil {
		return err
	}

	stats := portfolio.ComputeStats(portfolio.Bundle{
		User:           in.User,
		Achievements:   in.Achievements,
		Projects:       in.Projects,
		Participations: in.Participations,
	})

	var out string
	out, err = formatStats(stats, statsFormat)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return err
}

func formatStats(stats portfolio.Stats, format string) (out string, err error) {
	switch format {
	case "json":
		var data []byte
		data, err = json.MarshalIndent(stats, "", "  ")
		if err != nil {
			err = errors.Wrap(err, "failed to encode stats")
			return out, err
		}
		out = string(data) + "\n"
	case "yaml":
		var data []byte
		data, err = yaml.Marshal(stats)
		if err != nil {
			err = errors.Wrap(err, "failed to encode stats")
			return out, err
		}
		out = string(data)
	case "text", "":
		out = statsText(stats)
	default:
		err = errors.Errorf("invalid format '%s': must be 'text', 'json', or 'yaml'", format)
	}
	return out, err
}

func statsText(stats portfolio.Stats) (out string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Achievements:    %d (%d wins, %d podiums)\n", stats.Achievements, stats.Wins, stats.Podiums)
	fmt.Fprintf(&b, "Projects:        %d\n", stats.Projects)
	fmt.Fprintf(&b, "Participations:  %d\n", stats.Participations)
	fmt.Fprintf(&b, "Events:          %d (%d online, %d offline)\n", stats.Events, stats.Online, stats.Offline)
	fmt.Fprintf(&b, "Effort:          %d solo, %d team\n", stats.Solo, stats.Team)
	fmt.Fprintf(&b, "Top technologies: %s\n", frequencies(stats.TopTechnologies))
	fmt.Fprintf(&b, "Top tags:        %s\n", frequencies(stats.TopTags))
	out = b.String()
	return out
}

func frequencies(list []portfolio.Frequency) (out string) {
	if len(list) == 0 {
		out = "-"
		return out
	}
	parts := make([]string, 0, len(list))
	for _, f := range list {
		parts = append(parts, fmt.Sprintf("%s (%d)", f.Value, f.Count))
	}
	out = strings.Join(parts, ", ")
	return out
}
