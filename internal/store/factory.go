package store

import (
	"farmgate/internal/types"

	"github.com/sirupsen/logrus"
)

// NewStore creates a Store based on the application configuration. A
// configured Redis DSN selects the Redis store; otherwise the process runs
// on the in-memory store.
func NewStore(configManager types.ConfigManager) (Store, error) {
	redisDSN := configManager.GetRedisDSN()

	if redisDSN == "" {
		logrus.Info("Using in-memory store")
		return NewMemoryStore(), nil
	}

	logrus.Info("Using redis store")
	return NewRedisStore(redisDSN)
}
