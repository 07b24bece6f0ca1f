package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"github.com/anonto42/nano-social/backend/pkg/logger"
	"github.com/anonto42/nano-social/backend/pkg/metrics"
)

// DefaultConnectionsLimit caps GetConnections when no limit is given.
const DefaultConnectionsLimit = 999

// DeriveConnectionState computes the state of the pair (userID, other) from
// the single row between them, or nil when there is none.
func DeriveConnectionState(userID uint, conn *models.Connection) models.ConnectionState {
	switch {
	case conn == nil:
		return models.ConnectionStateAdd
	case !conn.Pending:
		return models.ConnectionStateConnected
	case conn.FollowingID == userID:
		return models.ConnectionStateAccept
	default:
		return models.ConnectionStateRequest
	}
}

// ConnectionGraph answers relationship queries and applies connection
// mutations. Every pair lookup goes through the repository's either-ordering
// queries.
type ConnectionGraph struct {
	connections repositories.ConnectionRepository
	users       repositories.UserRepository
	fanout      *NotificationFanout
}

func NewConnectionGraph(connections repositories.ConnectionRepository, users repositories.UserRepository, fanout *NotificationFanout) *ConnectionGraph {
	return &ConnectionGraph{
		connections: connections,
		users:       users,
		fanout:      fanout,
	}
}

// GetConnections lists users with an accepted connection to userID, with
// their denormalized counters.
func (g *ConnectionGraph) GetConnections(ctx context.Context, userID uint, search string, limit int) ([]models.ConnectionResponse, error) {
	if limit <= 0 {
		limit = DefaultConnectionsLimit
	}
	conns, err := g.connections.GetAcceptedConnections(ctx, userID, search, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(conns))
	for _, c := range conns {
		ids = append(ids, c.Other(userID))
	}
	counts, err := g.users.GetCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.ConnectionResponse, 0, len(conns))
	for _, c := range conns {
		other := c.Following
		if c.FollowingID == userID {
			other = c.Follower
		}
		out = append(out, models.ConnectionResponse{
			User: models.ConnectionUser{
				UserCompact: other.ToCompact(),
				UserCounts:  counts[other.ID],
			},
			UserID:  userID,
			Pending: c.Pending,
		})
	}
	return out, nil
}

// GetConnectionRequests lists pending requests awaiting userID's decision.
func (g *ConnectionGraph) GetConnectionRequests(ctx context.Context, userID uint) ([]models.ConnectionRequest, error) {
	conns, err := g.connections.GetIncomingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.ConnectionRequest, 0, len(conns))
	for _, c := range conns {
		out = append(out, models.ConnectionRequest{
			User:        c.Follower.ToCompact(),
			RequesterID: c.FollowerID,
			TargetID:    c.FollowingID,
			CreatedAt:   c.CreatedAt,
		})
	}
	return out, nil
}

func (g *ConnectionGraph) GetConnectionState(ctx context.Context, userID, otherID uint) (*models.ConnectionStateResponse, error) {
	conn, err := g.connections.FindBetween(ctx, userID, otherID)
	if err != nil && !errors.Is(err, errors.ErrCodeNotFound) {
		return nil, err
	}
	return &models.ConnectionStateResponse{
		State:        DeriveConnectionState(userID, conn),
		UserID:       userID,
		ConnectionID: otherID,
	}, nil
}

// RequestConnection creates a pending connection from followerID to
// followingID. Any existing row between the pair, in either direction, is a
// conflict.
func (g *ConnectionGraph) RequestConnection(ctx context.Context, followerID, followingID uint) (*models.Connection, error) {
	if followerID == followingID {
		return nil, errors.Conflict("cannot connect to yourself")
	}
	requester, err := g.users.GetUserByID(ctx, followerID)
	if err != nil {
		return nil, err
	}
	if _, err := g.users.GetUserByID(ctx, followingID); err != nil {
		return nil, err
	}

	_, err = g.connections.FindBetween(ctx, followerID, followingID)
	if err == nil {
		return nil, errors.Conflict("a connection already exists between these users")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	conn := &models.Connection{FollowerID: followerID, FollowingID: followingID, Pending: true}
	if err := g.connections.CreateConnection(ctx, conn); err != nil {
		return nil, err
	}
	metrics.ConnectionEvents.WithLabelValues("request").Inc()
	logger.Info("Connection requested", "follower_id", followerID, "following_id", followingID)

	g.fanout.NotifyConnectionRequest(ctx, requester, followingID)
	return conn, nil
}

// AcceptConnection accepts the pending request from followerID to followingID.
func (g *ConnectionGraph) AcceptConnection(ctx context.Context, followerID, followingID uint) (*models.Connection, error) {
	conn, err := g.connections.AcceptConnection(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	metrics.ConnectionEvents.WithLabelValues("accept").Inc()
	logger.Info("Connection accepted", "follower_id", followerID, "following_id", followingID)

	follower, err := g.users.GetUserByID(ctx, followerID)
	if err != nil {
		logger.Warn("Follower lookup failed after accept", "follower_id", followerID, "error", err)
		return conn, nil
	}
	g.fanout.NotifyNewFollower(ctx, conn, follower)
	return conn, nil
}

// RemoveConnection deletes the row between the pair whichever direction it
// has. It serves unfollow, cancel and reject.
func (g *ConnectionGraph) RemoveConnection(ctx context.Context, userID, otherID uint) error {
	if err := g.connections.DeleteBetween(ctx, userID, otherID); err != nil {
		return err
	}
	metrics.ConnectionEvents.WithLabelValues("remove").Inc()
	logger.Info("Connection removed", "user_id", userID, "other_id", otherID)
	return nil
}

func (g *ConnectionGraph) AreConnected(ctx context.Context, userID, otherID uint) (bool, error) {
	return g.connections.AreConnected(ctx, userID, otherID)
}
