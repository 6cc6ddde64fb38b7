package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	config "github.com/RockInMyHead/tendersyte-sub000/configs"
	"github.com/RockInMyHead/tendersyte-sub000/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens Postgres when DATABASE_URL is set, otherwise a SQLite file
// under data/ so local development needs no running server. The schema is the
// same either way.
func ConnectDB() {
	var err error

	if dsn := config.Config("DATABASE_URL"); dsn != "" {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			PrepareStmt:                              false,
			SkipDefaultTransaction:                   true,
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	} else {
		path := config.ConfigOr("SQLITE_PATH", "data/tendersyte.db")
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			log.Fatalf("🔥 Failed to create data directory: %v", mkErr)
		}
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			SkipDefaultTransaction: true,
		})
	}
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Tender{},
		&models.TenderBid{},
		&models.MarketplaceListing{},
		&models.Message{},
		&models.Review{},
		&models.BankGuarantee{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminUsername := config.Config("ADMIN_USERNAME")
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")
	if adminUsername == "" || adminEmail == "" || adminPassword == "" {
		log.Println("Admin seed skipped: ADMIN_USERNAME, ADMIN_EMAIL or ADMIN_PASSWORD not set.")
		return
	}

	var count int64
	err := DB.Model(&models.User{}).Where("username = ?", adminUsername).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		Username:   adminUsername,
		Email:      adminEmail,
		Password:   string(hashedPassword),
		FullName:   config.ConfigOr("ADMIN_FULL_NAME", "Administrator"),
		UserType:   models.UserTypeIndividual,
		IsAdmin:    true,
		IsVerified: true,
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
