package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/checkdisout/checkdisout/pkg/export"
	"github.com/checkdisout/checkdisout/pkg/layout"
	"github.com/checkdisout/checkdisout/pkg/renderer"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var previewSections string

//nolint:gochecknoglobals // Cobra boilerplate
var previewCmd = &cobra.Command{
	Use:   "preview <portfolio-file-or-url>",
	Short: "Print the laid-out portfolio as text",
	Long: `Lay out a portfolio exactly as export would and print each page as text.

Useful for checking pagination and section selection without opening a PDF.

Example:
  checkdisout preview portfolio.json
  checkdisout preview portfolio.yaml --sections projects`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringVar(&previewSections, "sections", "", "Comma-separated sections to include: achievements, projects, participations or all")
}

func runPreview(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	_, err = setup()
	if err != nil {
		return err
	}

	var in export.Input
	in, err = loadDocument(ctx, cmd, args[0], previewSections)
	if err != nil {
		return err
	}

	x := export.New()

	var doc layout.Document
	doc, err = x.Layout(in)
	if err != nil {
		return err
	}

	fmt.Print(renderer.Text(doc))

	if getVerbose() {
		fmt.Printf("\n%d pages, %d lines\n", len(doc.Pages), doc.LineCount())
	}

	return err
}
