package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/pkg/errors"
)

// ContentClass selects which privacy setting governs a piece of content.
type ContentClass int

const (
	ContentDetails ContentClass = iota
	ContentConnections
	ContentPosts
)

func (c ContentClass) setting(s *models.Settings) models.Privacy {
	switch c {
	case ContentDetails:
		return s.DetailsPrivacy
	case ContentConnections:
		return s.ConnectionsPrivacy
	default:
		return s.PostsPrivacy
	}
}

// IsVisible decides whether viewerID may see content owned by ownerID under
// the given privacy setting. Unknown settings are treated as private.
func IsVisible(ownerID, viewerID uint, privacy models.Privacy, connected bool) bool {
	if ownerID == viewerID {
		return true
	}
	switch privacy {
	case models.PrivacyPublic:
		return true
	case models.PrivacyFollowers:
		return connected
	default:
		return false
	}
}

// PrivacyFilter resolves the owner's settings and the viewer's relationship
// before applying IsVisible.
type PrivacyFilter struct {
	settings    repositories.SettingsRepository
	connections repositories.ConnectionRepository
}

func NewPrivacyFilter(settings repositories.SettingsRepository, connections repositories.ConnectionRepository) *PrivacyFilter {
	return &PrivacyFilter{settings: settings, connections: connections}
}

// Privacy returns the owner's setting for class. Owners without a settings
// row are public.
func (p *PrivacyFilter) Privacy(ctx context.Context, ownerID uint, class ContentClass) (models.Privacy, error) {
	s, err := p.settings.GetSettings(ctx, ownerID)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return models.PrivacyPublic, nil
	}
	if err != nil {
		return "", err
	}
	return class.setting(s), nil
}

func (p *PrivacyFilter) CanView(ctx context.Context, ownerID, viewerID uint, class ContentClass) (bool, error) {
	if ownerID == viewerID {
		return true, nil
	}
	privacy, err := p.Privacy(ctx, ownerID, class)
	if err != nil {
		return false, err
	}

	connected := false
	if privacy == models.PrivacyFollowers {
		connected, err = p.connections.AreConnected(ctx, ownerID, viewerID)
		if err != nil {
			return false, err
		}
	}
	return IsVisible(ownerID, viewerID, privacy, connected), nil
}

// VisibleAuthors filters authorIDs down to those whose posts viewerID may see.
func (p *PrivacyFilter) VisibleAuthors(ctx context.Context, viewerID uint, authorIDs []uint) ([]uint, error) {
	visible := make([]uint, 0, len(authorIDs))
	for _, id := range authorIDs {
		ok, err := p.CanView(ctx, id, viewerID, ContentPosts)
		if err != nil {
			return nil, err
		}
		if ok {
			visible = append(visible, id)
		}
	}
	return visible, nil
}
