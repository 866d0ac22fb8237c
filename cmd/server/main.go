package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"dustbin-dashboard/internal/config"
	"dustbin-dashboard/internal/handlers"
	"dustbin-dashboard/internal/middleware"
	"dustbin-dashboard/internal/models"
	"dustbin-dashboard/internal/notifications"
	"dustbin-dashboard/internal/services"
	"dustbin-dashboard/internal/simulation"
	"dustbin-dashboard/internal/store"
	"dustbin-dashboard/internal/views"
	"dustbin-dashboard/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("🚀 DUSTBIN DASHBOARD SERVER STARTING")
	log.Println("═══════════════════════════════════════════════════════════════════")

	cfg, err := config.Load()
	if err != nil {
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Invalid configuration")
		log.Printf("   Error: %v", err)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Fatal(err)
	}
	log.Printf("✅ Configuration loaded (port %s, tick %s, notification ttl %s)",
		cfg.Port, cfg.SimulationInterval, cfg.NotificationTTL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)
	log.Println("✅ WebSocket hub started")

	// Seed the in-memory store
	st := store.New(models.SeedBins())
	st.Subscribe(func(bins []models.Bin) {
		wsHub.Broadcast(websocket.TypeBinsUpdated, bins)
	})
	log.Printf("🌱 Store seeded with %d bins", st.Len())

	queue := notifications.NewQueue(cfg.NotificationTTL, notifications.WithObserver(
		func(kind string, n models.Notification) {
			resp := n.ToNotificationResponse()
			switch kind {
			case notifications.ChangeAdded:
				wsHub.Broadcast(websocket.TypeNotificationAdded, resp)
			case notifications.ChangeExpired:
				wsHub.Broadcast(websocket.TypeNotificationExpired, resp)
			case notifications.ChangeDismissed:
				wsHub.Broadcast(websocket.TypeNotificationDismissed, resp)
			}
		},
	))
	defer queue.Close()

	selector := views.NewSelector()
	selector.OnChange(func(mode views.Mode) {
		log.Printf("🗂️  View switched to %s", mode)
		wsHub.Broadcast(websocket.TypeViewChanged, mode)
	})

	// Alert side channel
	dispatcher := services.NewDispatcher(services.NewLogAlerter(cfg.AlertEmail, cfg.AlertPhone), cfg.AlertWorkers)
	defer dispatcher.Close()
	log.Printf("✅ Alert dispatcher started (%d workers)", cfg.AlertWorkers)

	sim := simulation.NewSimulator(st, queue, dispatcher, cfg.SimulationInterval)
	// joined before the deferred queue and dispatcher closes run
	var simWG sync.WaitGroup
	simWG.Add(1)
	go func() {
		defer simWG.Done()
		sim.Run(ctx)
	}()

	dashboard := &websocket.Dashboard{Store: st, Queue: queue, Selector: selector}

	// Create router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", handlers.Dashboard(st, selector))
	r.Get("/ws", websocket.HandleWebSocket(wsHub, dashboard))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Bins endpoints
		r.Get("/bins", handlers.GetBins(st))
		r.With(middleware.RequireJSON).Post("/bins", handlers.CreateBin(st))
		r.Get("/bins/table", handlers.GetTable(st))
		r.Get("/bins/{id}", handlers.GetBin(st))
		r.Delete("/bins/{id}", handlers.DeleteBin(st))

		// Presentation endpoints
		r.Get("/statistics", handlers.GetStatistics(st))
		r.Get("/map", handlers.GetMap(st))
		r.Get("/view", handlers.GetView(selector))
		r.With(middleware.RequireJSON).Put("/view", handlers.SelectView(selector))

		// Notifications endpoints
		r.Get("/notifications", handlers.GetNotifications(queue))
		r.Get("/notifications/history", handlers.GetNotificationHistory(queue))
		r.Delete("/notifications/{id}", handlers.DismissNotification(queue))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Println("═══════════════════════════════════════════════════════════════════")
	log.Println("✅ ALL INITIALIZATION COMPLETE")
	log.Printf("🚀 Server starting on http://localhost:%s", cfg.Port)
	log.Println("🔌 Ready to accept requests!")
	log.Println("═══════════════════════════════════════════════════════════════════")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		log.Println("❌ FATAL ERROR: Server failed to start")
		log.Printf("   Error: %v", err)
		log.Printf("   Port: %s", cfg.Port)
		log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
		stop()
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Server shutdown error: %v", err)
	}
	simWG.Wait()
	log.Println("👋 Server stopped")
}
