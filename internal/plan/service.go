// internal/plan/service.go
package plan

import (
	"context"

	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/models"
)

// Service builds, stores and shares plans.
type Service struct {
	builder *Builder
	store   Store
	sharer  *Sharer
	logger  logger.Logger
}

func NewService(builder *Builder, store Store, sharer *Sharer, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if store == nil {
		store = NewMemoryStore()
	}
	if sharer == nil {
		sharer = NewSharer(nil, nil, log)
	}
	return &Service{builder: builder, store: store, sharer: sharer, logger: log}
}

// Create builds and saves a plan, then shares it with recipients.
func (s *Service) Create(ctx context.Context, venue models.Venue, req models.EventRequirement, recipients []models.ShareRecipient) (models.PlanSummary, []models.ShareReceipt, error) {
	plan, err := s.builder.Build(venue, req)
	if err != nil {
		return models.PlanSummary{}, nil, err
	}
	if err := s.store.Save(ctx, plan); err != nil {
		return models.PlanSummary{}, nil, err
	}

	s.logger.Info("plan created", map[string]interface{}{
		"planId":    plan.ID,
		"venueId":   venue.ID,
		"totalCost": plan.TotalCost,
	})

	receipts := s.sharer.Share(ctx, plan, recipients)
	return plan, receipts, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.PlanSummary, error) {
	return s.store.Get(ctx, id)
}
