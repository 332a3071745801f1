package billing

import (
	"context"
	"fmt"

	"github.com/rentora/backend/internal/domain/billing"
	"github.com/rentora/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReadingRecordedHandler patches an already generated bill when a water
// reading for its period is recorded or revised. The bill's water
// component is replaced and the total recomputed; if no bill exists yet
// the event is a no-op, the composer will pick the reading up later.
type ReadingRecordedHandler struct {
	billRepo billing.MonthlyBillRepository
	logger   *zap.Logger
}

// NewReadingRecordedHandler creates a new ReadingRecordedHandler
func NewReadingRecordedHandler(billRepo billing.MonthlyBillRepository, logger *zap.Logger) *ReadingRecordedHandler {
	return &ReadingRecordedHandler{
		billRepo: billRepo,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *ReadingRecordedHandler) EventTypes() []string {
	return []string{billing.EventTypeWaterReadingRecorded}
}

// Handle processes a WaterReadingRecordedEvent
func (h *ReadingRecordedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	evt, ok := event.(*billing.WaterReadingRecordedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %T", event)
	}

	bill, err := h.billRepo.FindByTenantAndPeriod(ctx, evt.TenantID, evt.Period)
	if err != nil {
		return fmt.Errorf("failed to load bill: %w", err)
	}
	if bill == nil {
		return nil
	}

	if err := bill.ApplyWaterAmount(evt.AmountDue); err != nil {
		// Settled bills are immutable; the revision only affects the
		// reading record itself.
		h.logger.Warn("Skipping water adjustment on settled bill",
			zap.String("bill_id", bill.ID.String()),
			zap.String("period", evt.Period.String()),
			zap.Error(err))
		return nil
	}

	if err := h.billRepo.Update(ctx, bill); err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}

	h.logger.Info("Bill water amount patched",
		zap.String("bill_id", bill.ID.String()),
		zap.String("tenant_id", evt.TenantID.String()),
		zap.String("period", evt.Period.String()),
		zap.String("water_amount", evt.AmountDue.String()))

	return nil
}

var _ shared.EventHandler = (*ReadingRecordedHandler)(nil)
