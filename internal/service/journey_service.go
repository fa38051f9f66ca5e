package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/cache"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// JourneyService implements the Connect JourneyService.
type JourneyService struct {
	store     storage.Store
	cache     *cache.Cache
	metrics   *metrics.Metrics
	publisher events.Publisher
	now       func() time.Time
}

// JourneyOption customizes a JourneyService.
type JourneyOption func(*JourneyService)

// WithClock sets the time source used to date archived journeys.
func WithClock(now func() time.Time) JourneyOption {
	return func(s *JourneyService) { s.now = now }
}

// WithPublisher sets where journey archived events are sent.
func WithPublisher(p events.Publisher) JourneyOption {
	return func(s *JourneyService) { s.publisher = p }
}

// NewJourneyService creates a JourneyService. cache and m may be nil.
func NewJourneyService(store storage.Store, c *cache.Cache, m *metrics.Metrics, opts ...JourneyOption) *JourneyService {
	s := &JourneyService{
		store:     store,
		cache:     c,
		metrics:   m,
		publisher: events.NopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListJourneys returns the owner's journeys, newest first.
func (s *JourneyService) ListJourneys(ctx context.Context, req *connect.Request[api.ListJourneysRequest]) (*connect.Response[api.ListJourneysResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ListJourneys request received", "user_id", userID)

	journeys, err := s.store.ListJourneys(ctx, userID)
	if err != nil {
		slog.Error("ListJourneys failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.Journey, len(journeys))
	for i, j := range journeys {
		out[i] = toAPIJourney(j)
	}

	slog.Info("ListJourneys successful", "count", len(journeys))
	return connect.NewResponse(&api.ListJourneysResponse{Journeys: out}), nil
}

// GetJourney retrieves a journey by ID.
func (s *JourneyService) GetJourney(ctx context.Context, req *connect.Request[api.GetJourneyRequest]) (*connect.Response[api.GetJourneyResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("GetJourney request received", "journey_id", req.Msg.ID)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	journey, err := s.store.GetJourney(ctx, userID, req.Msg.ID)
	if err != nil {
		slog.Error("GetJourney failed", "journey_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetJourneyResponse{Journey: toAPIJourney(*journey)}), nil
}

// ArchiveJourney snapshots the active ledger into a journey and clears the
// archived expenses. People and groups are kept.
func (s *JourneyService) ArchiveJourney(ctx context.Context, req *connect.Request[api.ArchiveJourneyRequest]) (*connect.Response[api.ArchiveJourneyResponse], error) {
	userID, err := ownerID(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("ArchiveJourney request received", "user_id", userID, "name", req.Msg.Name)

	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	now := s.now()
	var settlementErr error
	journey, err := s.store.ArchiveLedger(ctx, userID, func(persons []string, expenses []models.Expense) (*models.ArchivePlan, error) {
		plan, err := calculator.ArchiveJourney(userID, req.Msg.Name, persons, expenses, now)
		if err != nil {
			return nil, err
		}
		settlementErr = plan.SettlementErr
		return plan, nil
	})
	if err != nil {
		slog.Error("ArchiveJourney failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Journey archived",
		"journey_id", journey.ID,
		"expenses", journey.ExpenseCount,
		"settlements", len(journey.Settlements),
		"total", journey.TotalAmount.String(),
	)

	// The archive is committed; everything below is best-effort.
	s.metrics.JourneyArchived()
	if settlementErr != nil {
		s.metrics.InvariantViolation()
		slog.Error("Archived settlement invariant violated", "journey_id", journey.ID, "error", settlementErr)
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		slog.Warn("Cache invalidation failed", "user_id", userID, "error", err)
	}
	if err := s.publisher.PublishJourneyArchived(ctx, events.NewJourneyArchived(journey)); err != nil {
		slog.Warn("Failed to publish journey archived event", "journey_id", journey.ID, "error", err)
	}

	return connect.NewResponse(&api.ArchiveJourneyResponse{Journey: toAPIJourney(*journey)}), nil
}
