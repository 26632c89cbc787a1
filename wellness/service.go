// server/wellness/service.go
package wellness

import (
	"context"
	"math"

	"github.com/ViniZap4/calmrush-server/domain"
)

// RecentLimit is how many sessions List returns.
const RecentLimit = 10

type Service struct {
	store domain.WellnessStore
}

func NewService(store domain.WellnessStore) *Service {
	return &Service{store: store}
}

// Record stores a completed session. The duration is self-reported in
// minutes and rounded to a whole number.
func (s *Service) Record(ctx context.Context, userID string, kind domain.SessionKind, minutes float64) (*domain.WellnessSession, error) {
	if math.IsNaN(minutes) || minutes <= 0 {
		return nil, domain.ErrInvalidDuration
	}

	ws := &domain.WellnessSession{
		UserID:    userID,
		Kind:      kind,
		Duration:  int(math.Round(minutes)),
		Completed: true,
	}
	if err := s.store.CreateSession(ctx, ws); err != nil {
		return nil, err
	}
	return ws, nil
}

func (s *Service) List(ctx context.Context, userID string, kind domain.SessionKind) ([]*domain.WellnessSession, error) {
	return s.store.ListSessions(ctx, userID, kind, RecentLimit)
}
