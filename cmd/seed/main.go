package main

import (
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"aurelia-api/internal/core/config"
	"aurelia-api/internal/core/database"
	"aurelia-api/internal/core/logger"
	"aurelia-api/internal/domain"
	"aurelia-api/pkg/utils"
)

// Populates the store with demo products and an admin account. Idempotent
// unless -reset is given, which drops and recreates every table first.
func main() {
	reset := flag.Bool("reset", false, "drop and recreate all tables before seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.New(database.Opts{
		Driver:   cfg.DB.Driver,
		DSN:      cfg.DB.DSN,
		LogLevel: cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}

	tables := []any{
		&domain.User{},
		&domain.Product{},
		&domain.CartItem{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.Review{},
	}
	if *reset {
		if err := db.Migrator().DropTable(tables...); err != nil {
			log.Fatal("drop tables", zap.Error(err))
		}
		log.Info("all tables dropped")
	}
	if err := db.AutoMigrate(tables...); err != nil {
		log.Fatal("automigrate", zap.Error(err))
	}

	seedAdmin(db, log)
	seedProducts(db, log)
	log.Info("seeding complete")
}

func seedAdmin(db *gorm.DB, log *zap.Logger) {
	admin := domain.User{
		Email:        "admin@aurelia.test",
		PasswordHash: utils.HashPassword("admin123"),
		FullName:     str("Store Admin"),
		IsActive:     true,
		IsAdmin:      true,
	}
	var existing domain.User
	err := db.Where("email = ?", admin.Email).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(&admin).Error; err != nil {
			log.Fatal("seed admin", zap.Error(err))
		}
		log.Info("admin user created", zap.String("email", admin.Email))
		return
	}
	log.Info("admin user already present", zap.String("email", admin.Email))
}

func seedProducts(db *gorm.DB, log *zap.Logger) {
	var count int64
	if err := db.Model(&domain.Product{}).Count(&count).Error; err != nil {
		log.Fatal("count products", zap.Error(err))
	}
	if count > 0 {
		log.Info("products already present, skipping", zap.Int64("count", count))
		return
	}
	if err := db.Create(demoProducts()).Error; err != nil {
		log.Fatal("seed products", zap.Error(err))
	}
	log.Info("products seeded", zap.Int("count", len(demoProducts())))
}

func demoProducts() []domain.Product {
	return []domain.Product{
		{
			Name: "Solitaire Diamond Ring", Price: 28000, OriginalPrice: f64(32000), Discount: f64(12.5),
			Category: str("rings"), Sub: str("solitaire"),
			Description: str("Stunning solitaire diamond ring with certified diamond stone"),
			Image:       str("/images/rings.jpg"),
			Images:      []string{"/images/rings.jpg", "/images/rings-2.jpg"},
			Highlights:  []string{"100% Certified", "Hallmarked Gold", "Lifetime Warranty"},
			Features:    []string{"Free Shipping", "Easy Returns", "30-Day Exchange"},
			InStock:     true, StockQuantity: 15, IsFeatured: true,
		},
		{
			Name: "Halo Diamond Ring", Price: 32000, OriginalPrice: f64(38000), Discount: f64(15.8),
			Category: str("rings"), Sub: str("halo"),
			Description: str("Elegant halo diamond ring with surrounding diamonds"),
			Image:       str("/images/rings.jpg"),
			Images:      []string{"/images/rings.jpg", "/images/rings-2.jpg"},
			Highlights:  []string{"100% Certified", "22K Gold", "BIS Hallmarked"},
			InStock:     true, StockQuantity: 10, IsFeatured: true,
		},
		{
			Name: "Stackable Gold Ring Set", Price: 9500, OriginalPrice: f64(11000), Discount: f64(13.6),
			Category: str("rings"), Sub: str("stackable"),
			Description: str("Set of three stackable gold rings in matte and gloss finish"),
			Image:       str("/images/rings.jpg"),
			InStock:     true, StockQuantity: 25,
		},
		{
			Name: "Pearl Drop Necklace", Price: 14500, OriginalPrice: f64(16000), Discount: f64(9.4),
			Category: str("necklaces"), Sub: str("pearl"),
			Description: str("Freshwater pearl drop necklace on an 18K gold chain"),
			Image:       str("/images/necklaces.jpg"),
			Highlights:  []string{"Natural Pearls", "18K Gold Chain"},
			InStock:     true, StockQuantity: 8, IsFeatured: true,
		},
		{
			Name: "Gold Chain Necklace", Price: 21000,
			Category: str("necklaces"), Sub: str("chain"),
			Description: str("Classic 22K gold rope chain, 20 inch"),
			Image:       str("/images/necklaces.jpg"),
			InStock:     true, StockQuantity: 12,
		},
		{
			Name: "Diamond Stud Earrings", Price: 18500, OriginalPrice: f64(21000), Discount: f64(11.9),
			Category: str("earrings"), Sub: str("studs"),
			Description: str("Round brilliant diamond studs with screw backs"),
			Image:       str("/images/earrings.jpg"),
			Highlights:  []string{"100% Certified", "VS Clarity"},
			Features:    []string{"Free Shipping", "Easy Returns"},
			InStock:     true, StockQuantity: 20, IsFeatured: true,
		},
		{
			Name: "Gold Hoop Earrings", Price: 7200,
			Category: str("earrings"), Sub: str("hoops"),
			Description: str("Lightweight 18K gold hoops for everyday wear"),
			Image:       str("/images/earrings.jpg"),
			InStock:     true, StockQuantity: 30,
		},
	}
}

func str(s string) *string   { return &s }
func f64(f float64) *float64 { return &f }
