package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/minwoo-jeong/asreco/internal/config"
	"github.com/minwoo-jeong/asreco/internal/export"
	"github.com/minwoo-jeong/asreco/internal/ingest"
	"github.com/minwoo-jeong/asreco/internal/service"
	"github.com/minwoo-jeong/asreco/internal/tabular"
)

var (
	maintPath string
	partsPath string
	outDir    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run the maintenance/parts reconciliation offline",
		Long:  `Reconciles a maintenance-log spreadsheet against the parts-issuance ledger and the static reference tables, then writes the enriched CSVs to disk.`,
		RunE:  runReconcile,
	}

	rootCmd.Flags().StringVar(&maintPath, "maintenance", "", "maintenance-log spreadsheet (xlsx or csv)")
	rootCmd.Flags().StringVar(&partsPath, "parts", "", "parts-issuance spreadsheet (optional)")
	rootCmd.Flags().StringVar(&outDir, "out", "out", "directory for the output CSVs")
	_ = rootCmd.MarkFlagRequired("maintenance")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runReconcile(cmd *cobra.Command, args []string) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	conf, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	maint, err := ingest.ReadFile(maintPath)
	if err != nil {
		return fmt.Errorf("read maintenance log: %w", err)
	}
	var parts *tabular.Table
	if partsPath != "" {
		parts, err = ingest.ReadFile(partsPath)
		if err != nil {
			return fmt.Errorf("read parts ledger: %w", err)
		}
	}

	refs, refIssues := ingest.LoadStaticReferences(conf.Data.Dir, conf.Data.AssetFile, conf.Data.OrgFile)

	pipeline := service.NewPipeline(conf.Schema.Classifier(), service.Options{
		Match: service.MatchOptions{
			WindowDays:         conf.Matching.WindowDays,
			MatchBlankIdentity: conf.Matching.MatchBlankIdentity,
		},
		ShortRepeatDays: conf.Matching.ShortRepeatDays,
	})

	result, err := pipeline.Run(maint, parts, refs.Assets, refs.Org)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeCSV(filepath.Join(outDir, "enriched.csv"), result.Enriched); err != nil {
		return err
	}
	if result.Parts != nil {
		if err := writeCSV(filepath.Join(outDir, "parts.csv"), result.Parts); err != nil {
			return err
		}
	}
	if result.AffiliationStats != nil {
		if err := writeCSV(filepath.Join(outDir, "affiliation_stats.csv"), result.AffiliationStats); err != nil {
			return err
		}
	}

	for _, issue := range append(refIssues, result.Issues...) {
		log.Printf("issue: %s", issue)
	}
	fmt.Printf("records: %d\n", result.Match.TotalRecords)
	fmt.Printf("matched: %d (%.1f%%)\n", result.Match.MatchedRecords, result.Match.MatchRate)
	return nil
}

func writeCSV(path string, t *tabular.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := export.WriteCSV(f, t); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
