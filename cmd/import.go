package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/checkdisout/checkdisout/pkg/config"
	"github.com/checkdisout/checkdisout/pkg/portfolio"
	"github.com/checkdisout/checkdisout/pkg/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var importUserID string

//nolint:gochecknoglobals // Cobra boilerplate
var importCmd = &cobra.Command{
	Use:   "import <portfolio-file-or-url>",
	Short: "Store a portfolio in the database",
	Long: `Store a portfolio document in the configured database so the server can
export it from GET /api/users/<user-id>/portfolio.pdf.

Anything already stored for the user is replaced.

Example:
  checkdisout import portfolio.json --user-id ada`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importUserID, "user-id", "", "User id to store the portfolio under (required)")
	_ = importCmd.MarkFlagRequired("user-id")
}

func runImport(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	var cfg config.Config
	cfg, err = setup()
	if err != nil {
		return err
	}

	var doc portfolio.Document
	doc, err = portfolio.FetchWithContext(ctx, args[0])
	if err != nil {
		err = errors.Wrap(err, "failed to load portfolio")
		return err
	}

	var repo *store.Repository
	repo, err = openStore(ctx, cfg)
	if err != nil {
		return err
	}

	bundle := doc.Bundle()
	err = repo.Save(ctx, importUserID, bundle)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Stored portfolio for %s: %d achievements, %d projects, %d participations\n",
		importUserID, len(bundle.Achievements), len(bundle.Projects), len(bundle.Participations))
	return err
}
