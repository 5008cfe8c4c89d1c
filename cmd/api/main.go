package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"

	"github.com/weddingmoments/studio-backend/config"
	"github.com/weddingmoments/studio-backend/internal/auth"
	"github.com/weddingmoments/studio-backend/internal/backup"
	"github.com/weddingmoments/studio-backend/internal/bookings/repository"
	bookingssvc "github.com/weddingmoments/studio-backend/internal/bookings/service"
	"github.com/weddingmoments/studio-backend/internal/bootstrap"
	"github.com/weddingmoments/studio-backend/internal/cart"
	catalogsvc "github.com/weddingmoments/studio-backend/internal/catalog/service"
	"github.com/weddingmoments/studio-backend/internal/checkout"
	"github.com/weddingmoments/studio-backend/internal/logging"
	"github.com/weddingmoments/studio-backend/internal/notify"
	offerssvc "github.com/weddingmoments/studio-backend/internal/offers/service"
	"github.com/weddingmoments/studio-backend/internal/storage/postgres"
	userssvc "github.com/weddingmoments/studio-backend/internal/users/service"
)

const serviceName = "studio-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Firebase
	var fb *auth.Clients
	if cfg.Firebase.CredentialsPath != "" {
		fb, err = auth.InitializeFirebase(ctx, &cfg.Firebase, cfg.Store.Backend == config.StoreBackendFirestore)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		defer fb.Close()
		log.Println("Firebase initialized")
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set; admin routes will report the auth gate as unknown")
	}

	var rdb *redis.Client
	if cfg.Store.Backend == config.StoreBackendRedis {
		rdb, err = bootstrap.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
	}

	var fsClient *firestore.Client
	if fb != nil {
		fsClient = fb.Firestore
	}
	cols, err := bootstrap.OpenCollections(cfg.Store.Backend, fsClient, rdb)
	if err != nil {
		log.Fatalf("Failed to open collections: %v", err)
	}

	catalogStore := catalogsvc.NewStore(cols.Services)
	offersStore := offerssvc.NewStore(cols.Offers)

	var (
		provisioner userssvc.Provisioner
		verifier    auth.TokenVerifier
	)
	if fb != nil {
		provisioner = fb.Auth
		verifier = fb.Auth
	}
	directory := userssvc.NewDirectory(cols.Users, provisioner, cfg.Firebase.BootstrapAdmins)
	gate := auth.NewGate(verifier, directory)

	var watchers sync.WaitGroup
	for name, run := range map[string]func(context.Context) error{
		"services": catalogStore.Run,
		"offers":   offersStore.Run,
		"users":    directory.Run,
	} {
		watchers.Add(1)
		go func() {
			defer watchers.Done()
			if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Background(name+"-watch").Error("watch", err)
			}
		}()
	}

	// Roles come from the users collection, so the gate opens once it has
	// been read.
	go func() {
		if err := directory.Feed().Wait(ctx); err == nil {
			gate.MarkReady()
			log.Println("Auth gate ready")
		}
	}()

	if cfg.Store.SeedOnEmpty {
		seedCatalog(ctx, catalogStore)
	}

	// Postgres (optional)
	var (
		db             *bootstrap.DB
		bookingService *bookingssvc.BookingService
		recorder       checkout.BookingRecorder
	)
	if cfg.Database.DSN != "" {
		db, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxConns),
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := postgres.EnsureSchema(ctx, db.SQL); err != nil {
			log.Fatalf("Failed to prepare database schema: %v", err)
		}
		bookingService = bookingssvc.NewBookingService(repository.NewBookingRepository(db.SQL))
		recorder = bookingService
		log.Println("Connected to PostgreSQL; booking requests will be recorded")
	} else {
		log.Println("DB_DSN not set; booking requests will not be recorded")
	}

	checkoutService := checkout.NewService(catalogStore, recorder, notify.New(cfg.Twilio, cfg.Studio.WhatsAppNumber), cart.Contact{
		StudioName:     cfg.Studio.Name,
		Email:          cfg.Studio.Email,
		WhatsAppNumber: cfg.Studio.WhatsAppNumber,
		CurrencySymbol: cfg.Studio.CurrencySymbol,
		CurrencyCode:   cfg.Studio.CurrencyCode,
	})

	var scheduler *backup.Scheduler
	if cfg.Backup.Enabled() {
		uploader, err := backup.NewS3Uploader(ctx, cfg.Backup)
		if err != nil {
			log.Printf("Catalog backup disabled: %v", err)
		} else {
			scheduler = backup.NewScheduler(catalogStore, uploader, cfg.Backup.Prefix)
			if err := scheduler.Start(cfg.Backup.Schedule); err != nil {
				log.Printf("Catalog backup disabled: %v", err)
				scheduler = nil
			}
		}
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Studio:      cfg.Studio,
		DB:          db,
		Bookings:    bookingService,
		Gate:        gate,
		SignIn:      auth.NewSignInClient(cfg.Firebase.WebAPIKey),
		Catalog:     catalogStore,
		Offers:      offersStore,
		Users:       directory,
		Checkout:    checkoutService,
		RateLimit:   checkout.NewClientLimiter(cfg.RateLimit.CheckoutPerMinute, cfg.RateLimit.CheckoutBurst),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Streams end when the process is asked to stop.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Printf("Server starting on port %s (env=%s, store=%s)", cfg.Server.Port, cfg.App.Environment, cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	checkoutService.Wait()
	watchers.Wait()
	log.Println("Server stopped")
}

// seedCatalog writes the default catalog when the collection is empty.
func seedCatalog(ctx context.Context, store *catalogsvc.Store) {
	waitCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := store.Feed().Wait(waitCtx); err != nil {
		log.Printf("Skipping catalog seed: %v", err)
		return
	}
	if len(store.List(catalogsvc.ViewAdmin)) > 0 {
		return
	}
	if err := store.ResetToDefaults(ctx); err != nil {
		log.Printf("Failed to seed catalog: %v", err)
		return
	}
	log.Println("Seeded empty catalog with default services")
}
