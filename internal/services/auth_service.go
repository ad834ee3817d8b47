package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"farmgate/internal/models"
	"farmgate/internal/types"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// operatorKeyHashSetting is the system_settings key holding the bcrypt hash
// of the operator key.
const operatorKeyHashSetting = "operator_key_hash"

// AuthService verifies the operator key for the admin login endpoint. The
// configured AUTH_KEY is hashed with bcrypt and persisted on first startup;
// subsequent logins compare against the stored hash so the plaintext key
// never has to live in the database.
type AuthService struct {
	db            *gorm.DB
	configManager types.ConfigManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *gorm.DB, configManager types.ConfigManager) *AuthService {
	return &AuthService{
		db:            db,
		configManager: configManager,
	}
}

// EnsureOperatorKeyHash persists the bcrypt hash of the configured operator
// key if none is stored yet, or refreshes it after an AUTH_KEY rotation.
func (s *AuthService) EnsureOperatorKeyHash(ctx context.Context) error {
	key := s.configManager.GetAuthConfig().Key

	var setting models.SystemSetting
	err := s.db.WithContext(ctx).
		Where("setting_key = ?", operatorKeyHashSetting).
		First(&setting).Error

	switch {
	case err == gorm.ErrRecordNotFound:
		return s.storeHash(ctx, key)
	case err != nil:
		return fmt.Errorf("failed to load operator key hash: %w", err)
	}

	// AUTH_KEY changed since the hash was written
	if bcrypt.CompareHashAndPassword([]byte(setting.SettingValue), []byte(key)) != nil {
		logrus.Info("Operator key changed, refreshing stored hash")
		return s.storeHash(ctx, key)
	}

	return nil
}

func (s *AuthService) storeHash(ctx context.Context, key string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash operator key: %w", err)
	}

	setting := models.SystemSetting{
		SettingKey:   operatorKeyHashSetting,
		SettingValue: string(hash),
		Description:  "bcrypt hash of the operator key",
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"setting_value", "updated_at"}),
		}).
		Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to store operator key hash: %w", err)
	}
	return nil
}

// VerifyOperatorKey reports whether the presented key matches the stored
// operator key hash. When no hash row exists yet the configured key is
// compared directly in constant time.
func (s *AuthService) VerifyOperatorKey(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	var setting models.SystemSetting
	err := s.db.WithContext(ctx).
		Where("setting_key = ?", operatorKeyHashSetting).
		First(&setting).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logrus.WithError(err).Warn("Failed to load operator key hash, falling back to configured key")
		}
		configured := s.configManager.GetAuthConfig().Key
		return configured != "" && subtle.ConstantTimeCompare([]byte(key), []byte(configured)) == 1
	}

	return bcrypt.CompareHashAndPassword([]byte(setting.SettingValue), []byte(key)) == nil
}
