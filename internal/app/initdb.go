package app

import (
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tiendalabs/tiendago/internal/domain"
)

// settingSchema declares one default sys_config entry.
type settingSchema struct {
	Key         string
	Default     string
	Description string
}

var defaultSettings = []settingSchema{
	{Key: "auth.token_expire_hours", Default: "24", Description: "Bearer token lifetime in hours"},
	{Key: "auth.log_retention_days", Default: "365", Description: "Days to keep auth audit rows"},
	{Key: "catalog.page_size", Default: "20", Description: "Default catalog page size"},
	{Key: "catalog.page_size_max", Default: "500", Description: "Maximum catalog page size"},
}

func (a *Application) checkSettings() {
	for sortid, schema := range defaultSettings {
		category, name := splitSettingKey(schema.Key)
		if category == "" {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

func splitSettingKey(key string) (category, name string) {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[:i], key[i+1:]
		}
	}
	return "", key
}

// checkDemoCatalog seeds the sample catalog when the products table is empty.
func (a *Application) checkDemoCatalog() {
	var count int64
	if err := a.gormDB.Model(&domain.Product{}).Count(&count).Error; err != nil || count > 0 {
		return
	}

	demo := []domain.Product{
		{Name: "Camiseta Básica", Description: "Camiseta de algodón cómoda", Price: 19.99, Stock: 50, Category: "Ropa", ImageURL: "https://via.placeholder.com/300x300?text=Camiseta", Active: true},
		{Name: "Pantalón Vaquero", Description: "Vaqueros clásicos azules", Price: 49.99, Stock: 30, Category: "Ropa", ImageURL: "https://via.placeholder.com/300x300?text=Pantalon", Active: true},
		{Name: "Zapatillas Sport", Description: "Zapatillas cómodas para deporte", Price: 79.99, Stock: 25, Category: "Ropa", ImageURL: "https://via.placeholder.com/300x300?text=Zapatillas", Active: true},
		{Name: "El Quijote", Description: "Clásico de la literatura española", Price: 12.50, Stock: 20, Category: "Libros", ImageURL: "https://via.placeholder.com/300x300?text=Libro", Active: true},
		{Name: "Guía JavaScript", Description: "Manual para programadores", Price: 35.99, Stock: 15, Category: "Libros", ImageURL: "https://via.placeholder.com/300x300?text=JS+Book", Active: true},
		{Name: "Smartphone Basic", Description: "Teléfono inteligente sencillo", Price: 199.99, Stock: 10, Category: "Electrónica", ImageURL: "https://via.placeholder.com/300x300?text=Phone", Active: true},
		{Name: "Auriculares", Description: "Auriculares con buen sonido", Price: 29.99, Stock: 40, Category: "Electrónica", ImageURL: "https://via.placeholder.com/300x300?text=Audio", Active: true},
	}
	if err := a.gormDB.Create(&demo).Error; err != nil {
		zap.L().Error("failed to seed demo catalog", zap.Error(err))
		return
	}
	zap.L().Info("seeded demo catalog", zap.Int("products", len(demo)))
}

// checkDemoCustomers seeds demo accounts (password "123456") when no
// customers exist. Intended for the teaching setup, harmless elsewhere since
// registration is open anyway.
func (a *Application) checkDemoCustomers() {
	var probe domain.Customer
	err := a.gormDB.Where("email = ?", "test@example.com").First(&probe).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("failed to hash demo password", zap.Error(err))
		return
	}

	demo := []domain.Customer{
		{Name: "Juan Pérez", Email: "test@example.com", Password: string(hash)},
		{Name: "Ana García", Email: "ana@example.com", Password: string(hash)},
		{Name: "Carlos López", Email: "carlos@example.com", Password: string(hash)},
	}
	if err := a.gormDB.Create(&demo).Error; err != nil {
		zap.L().Error("failed to seed demo customers", zap.Error(err))
		return
	}
	zap.L().Info("seeded demo customers", zap.Int("customers", len(demo)))
}
