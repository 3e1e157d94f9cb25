package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-storefront/internal/auth"
	"github.com/ariefcatur/go-storefront/internal/cart"
	"github.com/ariefcatur/go-storefront/internal/catalog"
	"github.com/ariefcatur/go-storefront/internal/config"
	"github.com/ariefcatur/go-storefront/internal/httpx"
	kafkax "github.com/ariefcatur/go-storefront/internal/kafka"
	"github.com/ariefcatur/go-storefront/internal/notify"
	"github.com/ariefcatur/go-storefront/internal/orders"
	"github.com/ariefcatur/go-storefront/internal/postgres"
	"github.com/ariefcatur/go-storefront/internal/redisx"
	"github.com/ariefcatur/go-storefront/internal/settings"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Settings are read once; admin edits update the in-memory copy.
	store := settings.NewStore(&settings.Repo{DB: db}, redisx.SettingsCache(rdb, settings.GlobalID))
	loadCtx, loadCancel := context.WithTimeout(ctx, 5*time.Second)
	s := store.Load(loadCtx)
	loadCancel()
	log.Printf("[settings] loaded for %q", s.StoreName)

	// Kafka producer for order.created
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	prod.Start(ctx)

	catalogSvc := &catalog.Service{Store: &catalog.Repo{DB: db}}
	orderRepo := &orders.Repo{DB: db}
	admin := &orders.Admin{Store: orderRepo, BaseURL: cfg.WhatsAppBaseURL}
	sessions := cart.NewSessions(cfg.CartIdleTTL)
	authSvc := auth.NewService(&auth.Repo{DB: db}, &redisx.Denylist{RDB: rdb}, cfg.JWTSecret, cfg.SessionTTL)

	// Admin live feed: order.created -> websocket dashboards. Each replica
	// reads every partition under its own group.
	feedGroup := kafkax.InstanceGroup(cfg.FeedGroup, uuid.NewString())
	hub := notify.NewHub(admin, &redisx.Deduper{RDB: rdb, Service: feedGroup})
	consumer := kafkax.NewConsumer(cfg.KafkaBrokers, feedGroup, orders.TopicOrderCreated, cfg.FeedWorkers)
	go func() {
		if err := consumer.Start(ctx, hub.HandleOrderCreated); err != nil {
			log.Printf("[feed] consumer stopped: %v", err)
		}
	}()

	// Idle carts
	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := sessions.Sweep(); n > 0 {
					log.Printf("[cart] dropped %d idle session(s)", n)
				}
			}
		}
	}()

	server := &httpx.Server{
		Catalog: &httpx.CatalogHandler{Catalog: catalogSvc},
		Cart:    &httpx.CartHandler{Sessions: sessions, Catalog: catalogSvc},
		Checkout: &httpx.CheckoutHandler{Sessions: sessions, Pipeline: &orders.Pipeline{
			Store:       orderRepo,
			Settings:    store,
			Notifier:    &orders.KafkaNotifier{Producer: prod, Service: cfg.ServiceName},
			BaseURL:     cfg.WhatsAppBaseURL,
			SaveTimeout: cfg.OrderSaveTimeout,
			// the client follows redirect_to and opens the link itself
			Opener: orders.OpenerFunc(func(_ context.Context, link string) {
				log.Printf("[checkout] handoff ready: %d bytes", len(link))
			}),
		}},
		Settings: &httpx.SettingsHandler{Store: store, BaseURL: cfg.WhatsAppBaseURL},
		Auth:     &httpx.AuthHandler{Auth: authSvc},
		Products: &httpx.ProductsAdminHandler{Catalog: catalogSvc},
		Orders:   &httpx.OrdersAdminHandler{Orders: admin, Feed: hub},
	}

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: server.Routes()}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // stop accepting, flush what is buffered
	prod.WaitClosed() // writer closed
	cancel()          // stop consumer and sweeper
}
