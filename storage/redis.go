package storage

import (
	"log"

	"buildestate-server/config"

	"github.com/go-redis/redis/v8"
)

var Redis *redis.Client

func InitializeRedis(cfg *config.Config) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: "",
		DB:       0,
	})

	log.Println("Redis initialized with address:", cfg.RedisURL)
}
