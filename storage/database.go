package storage

import (
	"log"

	"buildestate-server/config"
	"buildestate-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB(cfg *config.Config) *gorm.DB {
	db, dbError := gorm.Open(postgres.Open(cfg.DBConnectionString), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Appointment{},
		&models.Testimonial{},
		&models.Visitor{},
		&models.Form{},
		&models.EmailOutbox{},
		&models.AuditLog{},
	)
}

func InitializeDB(cfg *config.Config) *gorm.DB {
	db := connectToDB(cfg)
	performMigrations(db)
	return db
}
