// Command import-projects loads project records from a CSV file into the
// database. The import is idempotent: rows are matched on
// (title, constituency_code, source_doc_ref) and updated in place when a
// match exists.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pamoja-lab/cdf-tracker/dao/query"
	"github.com/pamoja-lab/cdf-tracker/pkg/config"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/project"
	"github.com/pamoja-lab/cdf-tracker/pkg/importer"
)

func main() {
	var filePath string

	cmd := &cobra.Command{
		Use:   "import-projects --file data/projects.csv",
		Short: "Import projects from a CSV file (idempotent)",
		Long: `Reads a CSV file of project records and upserts each row.

Rows are matched on (title, constituency_code, source_doc_ref); matched rows
are fully replaced, unmatched rows create new projects. A row that fails to
parse or upsert is reported and skipped, the rest of the file still imports.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, filePath)
		},
	}
	cmd.Flags().StringVar(&filePath, "file", "", "CSV file path, e.g. data/projects.csv")
	_ = cmd.MarkFlagRequired("file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, filePath string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	db, err := query.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err = query.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open %s: %w", filePath, err)
	}
	defer f.Close()

	sum, err := importer.ImportCSV(cmd.Context(), project.NewService(db), f, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Printf("Import complete. Created: %d, Updated: %d, Failed: %d\n", sum.Created, sum.Updated, sum.Failed)
	if sum.Failed > 0 {
		return fmt.Errorf("%d rows failed", sum.Failed)
	}
	return nil
}
