package event

import (
	"context"
	"log/slog"
)

func (s *Service) handleProductCreatedEvent(ctx context.Context, ev ProductCreatedEvent) error {
	s.logger.InfoContext(ctx, "product created",
		slog.Int64("product_id", ev.ProductID),
		slog.String("code", ev.Code),
		slog.Int("stock", ev.Stock),
	)
	return nil
}

// handleSaleCompletedEvent warns once per sold product whose remaining stock is at
// or below the low-stock threshold.
func (s *Service) handleSaleCompletedEvent(ctx context.Context, ev SaleCompletedEvent) error {
	seen := make(map[int64]struct{}, len(ev.Items))
	for _, item := range ev.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}

		if item.RemainingStock > s.cfg.LowStockThreshold {
			continue
		}

		s.logger.WarnContext(ctx, "product stock is low",
			slog.Int64("sale_id", ev.SaleID),
			slog.String("product_code", item.ProductCode),
			slog.Int("remaining_stock", item.RemainingStock),
			slog.Int("threshold", s.cfg.LowStockThreshold),
		)
	}
	return nil
}
