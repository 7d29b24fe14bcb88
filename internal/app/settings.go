package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiendalabs/tiendago/internal/domain"
)

const DefaultSettingsCacheTTL = 30 * time.Second

// ConfigManager reads runtime settings from the sys_config table with a short
// refresh cache so handlers don't hit the database on every call.
type ConfigManager struct {
	db  *gorm.DB
	ttl time.Duration

	mu       sync.RWMutex
	cache    map[string]string
	loadedAt time.Time
}

func NewConfigManager(db *gorm.DB, ttl time.Duration) *ConfigManager {
	if ttl <= 0 {
		ttl = DefaultSettingsCacheTTL
	}
	return &ConfigManager{db: db, ttl: ttl}
}

func settingKey(category, name string) string {
	return fmt.Sprintf("%s.%s", category, name)
}

func (m *ConfigManager) snapshot() map[string]string {
	m.mu.RLock()
	if m.cache != nil && time.Since(m.loadedAt) < m.ttl {
		defer m.mu.RUnlock()
		return m.cache
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cache != nil && time.Since(m.loadedAt) < m.ttl {
		return m.cache
	}

	var rows []domain.SysConfig
	if err := m.db.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load sys_config", zap.Error(err))
		if m.cache == nil {
			m.cache = map[string]string{}
		}
		return m.cache
	}
	fresh := make(map[string]string, len(rows))
	for _, row := range rows {
		fresh[settingKey(row.Type, row.Name)] = row.Value
	}
	m.cache = fresh
	m.loadedAt = time.Now()
	return m.cache
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.snapshot()[settingKey(category, name)]
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.GetString(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.GetString(category, name))
}

// Set upserts one setting row and invalidates the cache.
func (m *ConfigManager) Set(category, name, value string) error {
	var row domain.SysConfig
	err := m.db.Where("type = ? AND name = ?", category, name).First(&row).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		err = m.db.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	case err == nil:
		err = m.db.Model(&domain.SysConfig{}).Where("id = ?", row.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.loadedAt = time.Time{}
	m.mu.Unlock()
	return nil
}
