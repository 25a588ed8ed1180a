package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/spaceinventor/sidoc/internal/config"
	"github.com/spaceinventor/sidoc/internal/middleware"
	"github.com/spaceinventor/sidoc/internal/param"
	"github.com/spaceinventor/sidoc/internal/routes"
	"github.com/spaceinventor/sidoc/internal/services"
)

func main() {
	once := flag.Bool("once", false, "run every procedure once and exit")
	flag.Parse()

	cfg := config.Load()

	var binding param.Client
	if cfg.BridgeURL == "local" {
		binding = param.LocalClient{}
	} else {
		binding = param.NewBridgeClient(cfg.BridgeURL)
	}

	var notifier services.Notifier
	if cfg.ChatWebhook != "" {
		notifier = services.NewChatNotifier(cfg.ChatWebhook)
	} else {
		log.Println("[NOTIFY] No chat webhook configured, notifications disabled")
	}

	services.InitCheckService(binding, notifier, cfg)

	procs := []services.Procedure{
		services.CANProcedure{},
		services.PowerProcedure{},
	}

	if *once {
		services.RunAll(procs...)
		return
	}

	services.InitAuthService(cfg.TokenSecret, 0)
	services.InitWebSocketHub()

	// Run once at startup, then keep re-running in the background
	services.RunAll(procs...)
	services.StartProcedureRunner(cfg.CheckInterval, procs...)

	r := gin.Default()
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.NewRateLimiter()))

	routes.RegisterCheckRoutes(r)
	routes.RegisterAuthRoutes(r)

	r.Run(cfg.ListenAddr)
}
