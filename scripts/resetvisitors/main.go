package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"buildestate-server/config"
	"buildestate-server/models"
	"buildestate-server/storage"
)

// Prunes visitor rows older than the retention window. Intended for a cron.
func main() {
	days := flag.Int("days", 90, "delete visitors not seen in this many days; 0 wipes everything")
	flag.Parse()

	cfg := config.Load()
	storage.InitializeDB(cfg)

	query := storage.DB
	if *days > 0 {
		cutoff := time.Now().AddDate(0, 0, -*days)
		query = query.Where("last_visit < ?", cutoff)
	} else {
		query = query.Where("1 = 1")
	}

	result := query.Unscoped().Delete(&models.Visitor{})
	if result.Error != nil {
		log.Fatalf("failed to delete visitors: %v", result.Error)
	}

	fmt.Printf("Removed %d visitor records\n", result.RowsAffected)
}
