package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/abdiaxatov/zapchas-dokoni-sub000/internal/service"
)

// LowStockWorker periodically scans every catalog and logs items whose
// stock has fallen to or below their minimum level.
type LowStockWorker struct {
	catalogService *service.CatalogService
	interval       time.Duration
}

func NewLowStockWorker(catalogService *service.CatalogService, interval time.Duration) *LowStockWorker {
	return &LowStockWorker{catalogService: catalogService, interval: interval}
}

// Start runs the scan loop until ctx is cancelled. The first scan runs
// immediately.
func (w *LowStockWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Low stock worker started")

	w.scan(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Low stock worker stopped")
			return
		case <-ticker.C:
			w.scan(ctx)
		}
	}
}

func (w *LowStockWorker) scan(ctx context.Context) {
	for _, kind := range w.catalogService.Kinds() {
		result, err := w.catalogService.ListItems(ctx, kind, &service.ListItemsFilter{
			LowStock: true,
			Limit:    100,
		})
		if err != nil {
			log.Error().Err(err).Str("catalog", kind).Msg("Low stock scan failed")
			continue
		}
		for _, item := range result.Items {
			log.Warn().
				Str("catalog", kind).
				Str("item_id", item.ID).
				Str("code", item.Code).
				Str("name", item.DisplayName).
				Int("stock", item.Stock).
				Int("min_stock", item.MinStock).
				Msg("Item is low on stock")
		}
		if result.TotalItems > 0 {
			log.Info().Str("catalog", kind).Int("count", result.TotalItems).Msg("Low stock scan completed")
		}
	}
}
