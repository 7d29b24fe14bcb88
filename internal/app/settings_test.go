package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tiendalabs/tiendago/config"
	"github.com/tiendalabs/tiendago/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func TestConfigManagerGetAndSet(t *testing.T) {
	db := newTestDB(t)
	m := NewConfigManager(db, time.Millisecond)

	assert.Empty(t, m.GetString("auth", "token_expire_hours"))
	assert.Zero(t, m.GetInt64("auth", "token_expire_hours"))
	assert.False(t, m.GetBool("auth", "strict"))

	require.NoError(t, m.Set("auth", "token_expire_hours", "48"))
	require.NoError(t, m.Set("auth", "strict", "true"))

	assert.Equal(t, "48", m.GetString("auth", "token_expire_hours"))
	assert.Equal(t, int64(48), m.GetInt64("auth", "token_expire_hours"))
	assert.True(t, m.GetBool("auth", "strict"))

	// update path, not a duplicate row
	require.NoError(t, m.Set("auth", "token_expire_hours", "12"))
	assert.Equal(t, int64(12), m.GetInt64("auth", "token_expire_hours"))

	var count int64
	require.NoError(t, db.Model(&domain.SysConfig{}).
		Where("type = ? AND name = ?", "auth", "token_expire_hours").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCheckSettingsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	a := NewApplication(config.DefaultAppConfig)
	a.OverrideDB(db)

	a.checkSettings()
	a.checkSettings()

	var count int64
	require.NoError(t, db.Model(&domain.SysConfig{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultSettings)), count)

	m := NewConfigManager(db, time.Minute)
	assert.Equal(t, int64(24), m.GetInt64("auth", "token_expire_hours"))
}

func TestDemoSeedIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	a := NewApplication(config.DefaultAppConfig)
	a.OverrideDB(db)

	a.checkDemoCatalog()
	a.checkDemoCatalog()
	a.checkDemoCustomers()
	a.checkDemoCustomers()

	var products, customers int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&domain.Customer{}).Count(&customers).Error)
	assert.Equal(t, int64(7), products)
	assert.Equal(t, int64(3), customers)
}

func TestSplitSettingKey(t *testing.T) {
	category, name := splitSettingKey("auth.token_expire_hours")
	assert.Equal(t, "auth", category)
	assert.Equal(t, "token_expire_hours", name)

	category, _ = splitSettingKey("nodot")
	assert.Empty(t, category)
}
