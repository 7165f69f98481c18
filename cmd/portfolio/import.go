package main

import (
	"fmt"

	"github.com/d4zhu/portfolio/internal/ingestion"
	"github.com/d4zhu/portfolio/internal/storage"
	"github.com/spf13/cobra"
)

var (
	importDB     string
	importSource string
)

var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Import loc.csv into the sqlite store",
	Long: `Parse loc.csv and store its line records in sqlite so serve can run
without the CSV. Records are stored under the CSV location unless --as is
given; serve reads the records stored under meta.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importDB, "db", "", "sqlite database (default: storage.sqlite_path)")
	importCmd.Flags().StringVar(&importSource, "as", "", "source name to store the records under")
}

func runImport(cmd *cobra.Command, args []string) error {
	path := importDB
	if path == "" {
		path = cfg.Storage.SQLitePath
	}
	if path == "" {
		return fmt.Errorf("no database: pass --db or set storage.sqlite_path")
	}

	loader, err := newLoader()
	if err != nil {
		return err
	}
	records, err := loader.Load(cmd.Context(), ingestion.NewSource(args[0]))
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStore(path, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	name := importSource
	if name == "" {
		name = args[0]
	}
	if err := store.SaveRecords(cmd.Context(), name, records); err != nil {
		return err
	}

	sources, err := store.Sources(cmd.Context())
	if err != nil {
		return err
	}
	for _, s := range sources {
		fmt.Printf("%s\t%d lines\n", s.Name, s.Lines)
	}
	return nil
}
