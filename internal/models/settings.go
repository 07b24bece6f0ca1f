package models

type Privacy string

const (
	PrivacyPublic    Privacy = "public"
	PrivacyFollowers Privacy = "followers"
	PrivacyPrivate   Privacy = "private"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Settings holds per-user preferences and privacy policies (1:1 with User).
type Settings struct {
	ID                 uint    `json:"-" gorm:"primaryKey"`
	UserID             uint    `json:"userId" gorm:"uniqueIndex;not null"`
	Theme              Theme   `json:"theme" gorm:"size:10"`
	Language           string  `json:"language" gorm:"size:10"`
	DetailsPrivacy     Privacy `json:"detailsPrivacy" gorm:"size:10"`
	ConnectionsPrivacy Privacy `json:"connectionsPrivacy" gorm:"size:10"`
	PostsPrivacy       Privacy `json:"postsPrivacy" gorm:"size:10"`
}

// DefaultSettings returns the settings created lazily for a user on first access.
func DefaultSettings(userID uint) *Settings {
	return &Settings{
		UserID:             userID,
		Theme:              ThemeDark,
		Language:           "en",
		DetailsPrivacy:     PrivacyPublic,
		ConnectionsPrivacy: PrivacyPublic,
		PostsPrivacy:       PrivacyPublic,
	}
}

type UpdateSettingsRequest struct {
	Theme              Theme   `json:"theme,omitempty" validate:"omitempty,oneof=dark light"`
	Language           string  `json:"language,omitempty" validate:"omitempty,min=2,max=10"`
	DetailsPrivacy     Privacy `json:"detailsPrivacy,omitempty" validate:"omitempty,oneof=public followers private"`
	ConnectionsPrivacy Privacy `json:"connectionsPrivacy,omitempty" validate:"omitempty,oneof=public followers private"`
	PostsPrivacy       Privacy `json:"postsPrivacy,omitempty" validate:"omitempty,oneof=public followers private"`
}

// Apply copies every non-empty field of the request onto s.
func (r UpdateSettingsRequest) Apply(s *Settings) {
	if r.Theme != "" {
		s.Theme = r.Theme
	}
	if r.Language != "" {
		s.Language = r.Language
	}
	if r.DetailsPrivacy != "" {
		s.DetailsPrivacy = r.DetailsPrivacy
	}
	if r.ConnectionsPrivacy != "" {
		s.ConnectionsPrivacy = r.ConnectionsPrivacy
	}
	if r.PostsPrivacy != "" {
		s.PostsPrivacy = r.PostsPrivacy
	}
}
