package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	pubnub "github.com/pubnub/go"
	"github.com/redis/go-redis/v9"

	"scheduler-backend/config"
	"scheduler-backend/handlers"
	_ "scheduler-backend/migrations"
	"scheduler-backend/monitoring"
	"scheduler-backend/services"
	"scheduler-backend/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Optional Redis cache for ranged event queries
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = utils.NewRedisClient(cfg.RedisURL)
		defer redisClient.Close()
	}

	// Optional PubNub change notifications
	var pn *pubnub.PubNub
	if cfg.PubNubPublishKey != "" && cfg.PubNubSubscribeKey != "" {
		pnConfig := pubnub.NewConfig()
		pnConfig.PublishKey = cfg.PubNubPublishKey
		pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
		pnConfig.SecretKey = cfg.PubNubSecretKey

		pn = pubnub.NewPubNub(pnConfig)
	}

	cache := services.NewEventCache(redisClient, cfg.EventsCacheTTL)
	notifier := services.NewNotifier(pn, cfg.NotifyChannel)

	// Initialize services
	eventService := services.NewEventService(app, cache, notifier)
	calendarService := services.NewCalendarService(app, cache, notifier)
	lookupService := services.NewLookupService(app)

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(eventService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	lookupHandler := handlers.NewLookupHandler(lookupService)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		if err := seedAll(app, cfg.SeedDir); err != nil {
			return err
		}

		// Event endpoints
		e.Router.GET("/events", eventHandler.ListEvents)
		e.Router.POST("/events", eventHandler.CreateEvent)
		e.Router.PUT("/events/{id}", eventHandler.UpdateEvent)
		e.Router.DELETE("/events/{id}", eventHandler.DeleteEvent)

		// Calendar endpoints
		e.Router.GET("/calendars", calendarHandler.ListCalendars)
		e.Router.POST("/calendars", calendarHandler.CreateCalendar)
		e.Router.PUT("/calendars/{id}", calendarHandler.UpdateCalendar)
		e.Router.DELETE("/calendars/{id}", calendarHandler.DeleteCalendar)

		// Read-only lookup endpoints
		e.Router.GET("/units", lookupHandler.ListUnits)
		e.Router.GET("/sections", lookupHandler.ListSections)

		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))

			go monitoring.NewMonitor(app,
				services.CollectionEvents,
				services.CollectionCalendars,
				services.CollectionUnits,
				services.CollectionSections,
			).Run(ctx)
		}

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			var total int
			if err := app.DB().NewQuery("SELECT COUNT(*) FROM events").Row(&total); err != nil {
				return e.JSON(503, map[string]string{
					"status": "unhealthy",
					"error":  err.Error(),
				})
			}
			if redisClient != nil {
				if err := utils.RedisHealthCheck(redisClient); err != nil {
					return e.JSON(503, map[string]string{
						"status": "unhealthy",
						"error":  err.Error(),
					})
				}
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	return app.Start()
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
