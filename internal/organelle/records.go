package organelle

import (
	"github.com/Dooders/Pyology/internal/config"
	"github.com/Dooders/Pyology/internal/metabolite"
)

// ApplyRecords registers each configured metabolite record into the store.
// Names already registered are topped up under the store's merge rule. The
// record's metadata travels with the pool.
func ApplyRecords(store *metabolite.Store, records map[string]config.Record) error {
	for name, record := range records {
		var meta map[string]any
		if max := record.Meta.Concentration.Range.Max; max > 0 {
			meta = map[string]any{
				"concentration": map[string]any{
					"range": map[string]any{"max": max},
				},
			}
		}
		if err := store.Register(name, record.Quantity, record.MaxQuantity(), meta); err != nil {
			return err
		}
	}
	return nil
}
