package main

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	v1 "github.com/thesrcielos/TournamentHub/api/v1"
	"github.com/thesrcielos/TournamentHub/internal/clock"
	"github.com/thesrcielos/TournamentHub/internal/config"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/hub"
	"github.com/thesrcielos/TournamentHub/internal/signature"
	"github.com/thesrcielos/TournamentHub/internal/store"
	"github.com/thesrcielos/TournamentHub/internal/user"
	"github.com/thesrcielos/TournamentHub/pkg/db"
	"github.com/thesrcielos/TournamentHub/websocket"
)

type eventBus interface {
	events.Publisher
	events.Subscriber
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db.Init(cfg)
	if err := db.DB.AutoMigrate(&user.Account{}); err != nil {
		log.Fatalf("error migrating accounts: %v", err)
	}

	var backend store.Backend
	var bus eventBus
	switch cfg.Hub.StoreDriver {
	case config.DriverMemory:
		log.Warn("Using in-memory store, hub state is lost on restart")
		backend = store.NewMemoryBackend()
		bus = events.NewLocalPublisher()
	default:
		backend = store.NewRedisBackend(db.Rdb, cfg.Hub.KeyPrefix)
		bus = events.NewRedisPublisher(db.Rdb, cfg.Hub.KeyPrefix+"events")
	}

	ctx := context.Background()
	if err := bus.Subscribe(ctx, websocket.RelayEvent); err != nil {
		log.Fatalf("error subscribing to events: %v", err)
	}

	tokens := user.NewJWTIssuer(cfg.Server.JWTSecret)
	websocket.Tokens = tokens
	v1.Accounts = user.NewAccountService(user.NewAccountRepository(db.DB), tokens)
	v1.TokenDecimals = int32(cfg.Hub.TokenDecimals)
	v1.TournamentHub = hub.New(hub.Options{
		Backend:   backend,
		Publisher: bus,
		Owner:     cfg.OwnerAddress(),
		Escrow:    cfg.EscrowAddress(),
		Verifier:  signature.NewMultiVerifier(),
		Clock:     clock.System{},
	})

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	v1.Setup(e, tokens.Secret())
	e.GET("/ws", websocket.WebSocketHandler)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Server.Port)))
}
