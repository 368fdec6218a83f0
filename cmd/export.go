package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/checkdisout/checkdisout/pkg/config"
	"github.com/checkdisout/checkdisout/pkg/export"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var outputPath string

//nolint:gochecknoglobals // Cobra boilerplate
var exportSections string

//nolint:gochecknoglobals // Cobra boilerplate
var exportCmd = &cobra.Command{
	Use:   "export <portfolio-file-or-url>",
	Short: "Export a portfolio to PDF",
	Long: `Export a portfolio document to a paginated PDF.

The document can be provided as:
- A JSON or YAML file (e.g., portfolio.json, portfolio.yaml)
- A URL (e.g., https://example.com/users/ada/portfolio.json)

Sections listed in the document are exported unless --sections overrides them.

Example:
  checkdisout export portfolio.json
  checkdisout export portfolio.yaml --output ~/Documents/ada.pdf
  checkdisout export portfolio.json --sections achievements,projects`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default <output_dir>/portfolio.pdf from config)")
	exportCmd.Flags().StringVar(&exportSections, "sections", "", "Comma-separated sections to include: achievements, projects, participations or all")
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = setup()
	if err != nil {
		return err
	}

	var in export.Input
	in, err = loadDocument(ctx, cmd, args[0], exportSections)
	if err != nil {
		return err
	}

	var x *export.Exporter
	var closer func()
	x, closer, err = newExporter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closer()

	path := getOutputPath(outputPath, cfg)

	out := cmd.OutOrStdout()
	render := func() (renderErr error) {
		renderErr = x.ExportFile(ctx, in, path)
		return renderErr
	}

	if getVerbose() {
		_, _ = fmt.Fprintln(out, "Rendering portfolio...")
		err = render()
	} else {
		err = withProgress(out, "Rendering portfolio...", progressInterval, render)
	}

	if err != nil {
		err = errors.Wrap(err, "export failed")
		return err
	}

	_, _ = fmt.Fprintf(out, "✓ Portfolio saved: %s\n", path)
	return err
}

func getOutputPath(flagValue string, cfg config.Config) (path string) {
	path = flagValue
	if path == "" {
		path = cfg.OutputPath()
	}
	return path
}
