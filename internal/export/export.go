// Package export dumps the dictionary as a JSON array.
package export

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/amchigale/konkani-dictionary/internal/domain"
)

// DefaultBatchSize rows read per query
const DefaultBatchSize = 500

// Source walks entries ordered by entry_number
type Source interface {
	FindInBatches(ctx context.Context, batchSize int, fn func([]domain.DictionaryEntry) error) error
}

// WriteJSON streams every entry to w as one JSON array and returns the entry count
func WriteJSON(ctx context.Context, src Source, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("["); err != nil {
		return 0, err
	}

	count := 0
	err := src.FindInBatches(ctx, DefaultBatchSize, func(batch []domain.DictionaryEntry) error {
		for i := range batch {
			if count > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
			data, err := json.Marshal(&batch[i])
			if err != nil {
				return fmt.Errorf("encode entry %d: %w", batch[i].EntryNumber, err)
			}
			if _, err := bw.Write(data); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	if count > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return count, err
		}
	}
	if _, err := bw.WriteString("]\n"); err != nil {
		return count, err
	}
	return count, bw.Flush()
}
