package repositories

import (
	"context"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/errors"
	"gorm.io/gorm"
)

type SettingsRepository interface {
	GetSettings(ctx context.Context, userID uint) (*models.Settings, error)
	GetOrCreateSettings(ctx context.Context, userID uint) (*models.Settings, error)
	UpsertSettings(ctx context.Context, userID uint, req models.UpdateSettingsRequest) (*models.Settings, error)
}

type PostgresSettingsRepository struct {
	db *gorm.DB
}

func NewPostgresSettingsRepository(db *gorm.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

// GetSettings returns NOT_FOUND when the user has no settings row yet.
func (r *PostgresSettingsRepository) GetSettings(ctx context.Context, userID uint) (*models.Settings, error) {
	var settings models.Settings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, translate(err, "settings not found", "", "failed to get settings")
	}
	return &settings, nil
}

// GetOrCreateSettings lazily creates the default settings row.
func (r *PostgresSettingsRepository) GetOrCreateSettings(ctx context.Context, userID uint) (*models.Settings, error) {
	settings, err := r.GetSettings(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		return nil, err
	}

	settings = models.DefaultSettings(userID)
	err = translate(r.db.WithContext(ctx).Create(settings).Error, "user not found", "settings already exist", "failed to create settings")
	if errors.Is(err, errors.ErrCodeConflict) {
		// Another request created the row first.
		return r.GetSettings(ctx, userID)
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *PostgresSettingsRepository) UpsertSettings(ctx context.Context, userID uint, req models.UpdateSettingsRequest) (*models.Settings, error) {
	settings, err := r.GetOrCreateSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	req.Apply(settings)
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, errors.Internal(err, "failed to update settings")
	}
	return settings, nil
}
