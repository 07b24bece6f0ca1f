package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/logger"
)

// SuggestionEngine proposes users that userID has no connection row with.
type SuggestionEngine struct {
	users       repositories.UserRepository
	connections repositories.ConnectionRepository
}

func NewSuggestionEngine(users repositories.UserRepository, connections repositories.ConnectionRepository) *SuggestionEngine {
	return &SuggestionEngine{users: users, connections: connections}
}

// GetSuggestions excludes userID and every user sharing a connection row with
// it, pending or accepted, in either direction.
func (s *SuggestionEngine) GetSuggestions(ctx context.Context, userID uint, search string) ([]models.Suggestion, error) {
	users, err := s.users.SearchUsers(ctx, search)
	if err != nil {
		return nil, err
	}
	related, err := s.connections.GetRelatedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	excluded := make(map[uint]bool, len(related)+1)
	excluded[userID] = true
	for _, id := range related {
		excluded[id] = true
	}

	candidates := make([]models.User, 0, len(users))
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		if excluded[u.ID] {
			continue
		}
		candidates = append(candidates, u)
		ids = append(ids, u.ID)
	}

	counts, err := s.users.GetCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.Suggestion, 0, len(candidates))
	for i := range candidates {
		u := &candidates[i]
		out = append(out, models.Suggestion{
			User: models.ConnectionUser{
				UserCompact: u.ToCompact(),
				UserCounts:  counts[u.ID],
			},
			State: DeriveConnectionState(userID, nil),
		})
	}
	logger.Debug("Suggestions computed", "user_id", userID, "candidates", len(out), "excluded", len(excluded))
	return out, nil
}
