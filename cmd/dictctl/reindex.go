package main

import (
	"fmt"

	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/internal/search"
	pkges "github.com/amchigale/konkani-dictionary/pkg/elasticsearch"
	"github.com/spf13/cobra"
)

func newReindexCommand() *cobra.Command {
	var batchSize int

	cmd := &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the Elasticsearch index from the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, closeDB, err := loadConfigAndDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if !cfg.Elasticsearch.Enabled || len(cfg.Elasticsearch.Addresses) == 0 {
				return fmt.Errorf("elasticsearch is not configured (ELASTICSEARCH_URL)")
			}
			client, err := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
			if err != nil {
				return err
			}

			index := search.NewEntryIndex(client, cfg.Elasticsearch.Index)
			n, err := index.Reindex(cmd.Context(), repository.NewEntryRepository(db), batchSize)
			if err != nil {
				return fmt.Errorf("reindex after %d entries: %w", n, err)
			}
			cmd.Printf("indexed %d entries into %s\n", n, cfg.Elasticsearch.Index)
			return nil
		},
	}
	cmd.Flags().IntVar(&batchSize, "batch-size", 500, "entries per bulk request")
	return cmd
}
