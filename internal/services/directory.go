package services

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/security"
	"github.com/anonto42/nano-social/backend/pkg/errors"
)

// ProfileDetails are the fields gated by detailsPrivacy.
type ProfileDetails struct {
	Email  string `json:"email"`
	Bio    string `json:"bio"`
	Gender string `json:"gender,omitempty"`
}

// Profile is a user as seen by a particular viewer. Nil sections are hidden
// by the owner's privacy settings.
type Profile struct {
	User        models.UserCompact          `json:"user"`
	Role        models.Role                 `json:"role"`
	Counts      models.UserCounts           `json:"counts"`
	State       models.ConnectionState      `json:"connectionState"`
	Details     *ProfileDetails             `json:"details,omitempty"`
	Connections []models.ConnectionResponse `json:"connections,omitempty"`
	Posts       []models.PostView           `json:"posts,omitempty"`
}

// UserDirectory serves identity, profile and settings lookups.
type UserDirectory struct {
	users    repositories.UserRepository
	settings repositories.SettingsRepository
	graph    *ConnectionGraph
	privacy  *PrivacyFilter
	posts    *PostService
}

func NewUserDirectory(users repositories.UserRepository, settings repositories.SettingsRepository, graph *ConnectionGraph, privacy *PrivacyFilter, posts *PostService) *UserDirectory {
	return &UserDirectory{
		users:    users,
		settings: settings,
		graph:    graph,
		privacy:  privacy,
		posts:    posts,
	}
}

func (d *UserDirectory) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return d.users.GetUserByID(ctx, id)
}

func (d *UserDirectory) SearchUsers(ctx context.Context, query string) ([]models.UserCompact, error) {
	users, err := d.users.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserCompact, 0, len(users))
	for i := range users {
		out = append(out, users[i].ToCompact())
	}
	return out, nil
}

// GetSettings returns the user's settings, creating the defaults on first access.
func (d *UserDirectory) GetSettings(ctx context.Context, userID uint) (*models.Settings, error) {
	return d.settings.GetOrCreateSettings(ctx, userID)
}

func (d *UserDirectory) UpdateSettings(ctx context.Context, userID uint, req models.UpdateSettingsRequest) (*models.Settings, error) {
	return d.settings.UpsertSettings(ctx, userID, req)
}

func (d *UserDirectory) UpdateProfile(ctx context.Context, userID uint, req models.UpdateUserRequest) (*models.User, error) {
	user, err := d.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name := security.SanitizeText(req.FullName); name != "" {
		user.FullName = name
	}
	if bio := security.SanitizeText(req.Bio); bio != "" {
		user.Bio = bio
	}
	if req.Gender != "" {
		user.Gender = req.Gender
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}
	if err := d.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile assembles username's profile as viewerID may see it.
func (d *UserDirectory) GetProfile(ctx context.Context, username string, viewerID uint) (*Profile, error) {
	user, err := d.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	counts, err := d.users.GetCounts(ctx, []uint{user.ID})
	if err != nil {
		return nil, err
	}
	state, err := d.graph.GetConnectionState(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		User:   user.ToCompact(),
		Role:   user.Role,
		Counts: counts[user.ID],
		State:  state.State,
	}

	if ok, err := d.privacy.CanView(ctx, user.ID, viewerID, ContentDetails); err != nil {
		return nil, err
	} else if ok {
		profile.Details = &ProfileDetails{Email: user.Email, Bio: user.Bio, Gender: user.Gender}
	}

	if ok, err := d.privacy.CanView(ctx, user.ID, viewerID, ContentConnections); err != nil {
		return nil, err
	} else if ok {
		if profile.Connections, err = d.graph.GetConnections(ctx, user.ID, "", 0); err != nil {
			return nil, err
		}
	}

	// GetUserPosts applies the posts privacy check itself.
	posts, err := d.posts.GetUserPosts(ctx, user.ID, viewerID)
	if err != nil && !isForbidden(err) {
		return nil, err
	}
	profile.Posts = posts
	return profile, nil
}

// GetUserConnections lists ownerID's accepted connections when the owner's
// connectionsPrivacy lets viewerID see them.
func (d *UserDirectory) GetUserConnections(ctx context.Context, ownerID, viewerID uint, search string, limit int) ([]models.ConnectionResponse, error) {
	if _, err := d.users.GetUserByID(ctx, ownerID); err != nil {
		return nil, err
	}
	ok, err := d.privacy.CanView(ctx, ownerID, viewerID, ContentConnections)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Forbidden("this user's connections are not visible to you")
	}
	return d.graph.GetConnections(ctx, ownerID, search, limit)
}
