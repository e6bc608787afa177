package db

import (
	"context"
	"crypto/tls"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"github.com/thesrcielos/TournamentHub/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB
var Rdb *redis.Client

// Init opens postgres for accounts and, with the redis driver, the redis
// client backing hub state and event fan-out.
func Init(cfg *config.Config) {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}
	if cfg.Hub.StoreDriver == config.DriverRedis {
		redisDBConnection(cfg.Redis)
	}
}

func RedisOptions(rc config.RedisConfig) *redis.Options {
	var tlsConfig *tls.Config
	if rc.TLS {
		tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return &redis.Options{
		Addr:      rc.Addr,
		Username:  rc.Username,
		Password:  rc.Password,
		DB:        rc.DB,
		TLSConfig: tlsConfig,
	}
}

func redisDBConnection(rc config.RedisConfig) {
	ctx := context.Background()
	Rdb = redis.NewClient(RedisOptions(rc))

	pong, err := Rdb.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Infof("Redis connected: %s", pong)
}
