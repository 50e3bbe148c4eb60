package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartparking/internal/catalog"
	intconfig "smartparking/internal/config"
	router "smartparking/internal/http"
	"smartparking/internal/http/handlers"
	"smartparking/internal/jobs"
	"smartparking/internal/ledger"
	"smartparking/internal/pricing"
	"smartparking/internal/queue"
	"smartparking/internal/realtime"
	"smartparking/internal/repositories"
	"smartparking/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat := catalog.Default()
	if env.CatalogFile != "" {
		loaded, err := catalog.LoadFile(env.CatalogFile)
		if err != nil {
			log.Fatalf("load catalog %s: %v", env.CatalogFile, err)
		}
		cat = loaded
		log.Printf("catalog: loaded %s", env.CatalogFile)
	}

	var (
		store    ledger.Store
		shutdown []func()
	)
	switch env.StoreDriver {
	case intconfig.StoreMySQL:
		conn, err := intconfig.ConnectDB(env.DB)
		if err != nil {
			log.Fatalf("connect database: %v", err)
		}
		shutdown = append(shutdown, intconfig.CloseDB)
		repo := repositories.BookingRepository{DB: conn}
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		store = repo
	default:
		mem := ledger.NewMemory()
		n, err := ledger.LoadFile(env.SnapshotPath, mem)
		if err != nil {
			log.Fatalf("restore ledger from %s: %v", env.SnapshotPath, err)
		}
		log.Printf("ledger: restored %d bookings from %s", n, env.SnapshotPath)

		snap := jobs.SnapshotJob{Ledger: mem, Path: env.SnapshotPath}
		sched := jobs.NewScheduler()
		if err := sched.Every(env.SnapshotSchedule, "snapshot", snap.Run); err != nil {
			log.Fatalf("%v", err)
		}
		sched.Start()
		shutdown = append(shutdown, func() {
			sched.Stop()
			if err := snap.Run(); err != nil {
				log.Printf("final snapshot: %v", err)
			}
		})
		store = mem
	}

	hub := realtime.NewHub(nil)
	shutdown = append(shutdown, hub.Close)
	publishers := services.Publishers{hub}
	if env.AMQPURL != "" {
		pub := queue.NewPublisher(env.AMQPURL)
		publishers = append(publishers, pub)
		shutdown = append(shutdown, func() { _ = pub.Close() })
		if env.ConsumeAudit {
			audit := &queue.AuditConsumer{URL: env.AMQPURL, LogPath: env.EventLogPath}
			go func() {
				if err := audit.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("audit consumer stopped: %v", err)
				}
			}()
		}
	}

	clock := services.Clock{Location: env.Timezone}
	hs := &handlers.Handlers{
		Catalog: cat,
		Bookings: services.BookingService{
			Catalog: cat,
			Ledger:  store,
			Price:   pricing.Default(),
			Events:  publishers,
			Clock:   clock,
		},
		Availability: services.AvailabilityService{Catalog: cat, Ledger: store, Clock: clock},
		Receipts:     services.ReceiptService{Catalog: cat, Ledger: store, Location: env.Timezone},
		Hub:          hub,
	}

	rdb := intconfig.NewRedisClient()
	if rdb != nil {
		shutdown = append(shutdown, func() { _ = rdb.Close() })
	} else {
		log.Println("redis: unavailable, rate limiting disabled")
	}

	r := router.NewRouter(env, hs, router.Options{RateLimit: intconfig.LoadRateLimitConfig(), Redis: rdb})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s (store=%s)", env.AppAddr, env.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	for i := len(shutdown) - 1; i >= 0; i-- {
		shutdown[i]()
	}
	log.Println("server stopped cleanly.")
}
