package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"buildestate-server/config"
	"buildestate-server/models"
	"buildestate-server/storage"

	"golang.org/x/crypto/bcrypt"
)

// Creates or promotes an admin account. Run once per deployment:
//
//	go run ./scripts/createadmin -email admin@example.com -password secret -name "Site Admin"
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password")
	name := flag.String("name", "Admin", "display name")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg := config.Load()
	storage.InitializeDB(cfg)

	hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if hashErr != nil {
		log.Fatalf("failed to hash password: %v", hashErr)
	}

	var user models.User
	query := storage.DB.Where("email = ?", strings.ToLower(*email)).Limit(1).Find(&user)
	if query.Error != nil {
		log.Fatalf("database error: %v", query.Error)
	}

	if query.RowsAffected > 0 {
		updates := map[string]interface{}{
			"is_admin":    true,
			"is_verified": true,
			"password":    string(hashed),
		}
		if err := storage.DB.Model(&user).Updates(updates).Error; err != nil {
			log.Fatalf("failed to promote user: %v", err)
		}
		fmt.Printf("Existing user %s promoted to admin\n", user.Email)
		return
	}

	user = models.User{
		Name:       *name,
		Email:      strings.ToLower(*email),
		Password:   string(hashed),
		IsAdmin:    true,
		IsVerified: true,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("Admin account %s created successfully!\n", user.Email)
}
