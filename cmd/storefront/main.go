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

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"

	"github.com/alebati123/abshine-storefront/internal/api"
	"github.com/alebati123/abshine-storefront/internal/auth"
	"github.com/alebati123/abshine-storefront/internal/catalog"
	"github.com/alebati123/abshine-storefront/internal/config"
	"github.com/alebati123/abshine-storefront/internal/docstore"
	"github.com/alebati123/abshine-storefront/internal/localstore"
	"github.com/alebati123/abshine-storefront/internal/profile"
	"github.com/alebati123/abshine-storefront/internal/shop"
	"github.com/alebati123/abshine-storefront/internal/view"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Storefront] Configuration error: %v", err)
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[Storefront] JWT_SECRET must be at least 32 characters long")
	}

	log.Println("[Storefront] ========================================")
	log.Println("[Storefront] ABShine storefront client")
	log.Println("[Storefront] ========================================")
	log.Printf("[Storefront] Document store: %s", cfg.DocStoreBackend)
	log.Printf("[Storefront] Session TTL: %s", cfg.SessionTTL)

	// Local persistence for cart/session state
	var state localstore.Store
	if cfg.StateDBPath == "" {
		log.Println("[Storefront] No state file configured, keeping state in memory")
		state = localstore.NewMemoryStore()
	} else {
		sqliteStore, err := localstore.OpenSQLite(cfg.StateDBPath)
		if err != nil {
			log.Fatalf("[Storefront] Failed to open state db: %v", err)
		}
		defer sqliteStore.Close()
		state = sqliteStore
		log.Printf("[Storefront] Local state: %s", cfg.StateDBPath)
	}

	// Remote document store
	docs, err := openDocStore(ctx, cfg)
	if err != nil {
		log.Fatalf("[Storefront] Failed to connect document store: %v", err)
	}

	// Optional catalog snapshot cache
	var cache catalog.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		cache = catalog.NewRedisCache(client)
		log.Printf("[Storefront] Catalog cache: redis %s", cfg.RedisAddr)
	}

	// Optional catalog change feed
	var feed *catalog.Feed
	if len(cfg.KafkaBrokers) > 0 {
		feed = catalog.NewFeed(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer feed.Close()
		log.Printf("[Storefront] Change feed: kafka %v topic %s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	provider := auth.NewStoreProvider(docs, tokens)
	profiles := profile.NewStore(docs)

	shopSvc := shop.NewService(shop.Config{
		State:      state,
		Provider:   provider,
		Profiles:   profiles,
		SessionTTL: cfg.SessionTTL,
		Listener: func(cart []shop.CartLine, sess *shop.Session) {
			vm := view.Project(cart, sess)
			log.Printf("[Storefront] State changed: %d items, total %s, signed in: %v",
				vm.ItemCount, vm.Total, vm.Auth.SignedIn)
		},
	})

	// Catalog snapshot: load once before trusting cart additions; a failed
	// load degrades to an empty catalog instead of crashing.
	loader := catalog.NewLoader(docs, cache)
	reload := func(ctx context.Context) error {
		snap, err := loader.Load(ctx)
		if err != nil {
			return err
		}
		shopSvc.InstallSnapshot(snap)
		return nil
	}
	if err := reload(ctx); err != nil {
		log.Printf("[Storefront] Initial catalog load failed, starting without catalog: %v", err)
	}

	// Refresh the snapshot when the admin panel announces a change
	if len(cfg.KafkaBrokers) > 0 {
		sub := catalog.NewSubscription(cfg.KafkaBrokers, cfg.KafkaTopic, "storefront-client")
		defer sub.Close()
		go func() {
			err := sub.Listen(ctx, func(ctx context.Context, change catalog.ProductChange) error {
				log.Printf("[Storefront] Catalog change: %s %s", change.Op, change.ProductID)
				if err := reload(ctx); err != nil && !errors.Is(err, catalog.ErrSuperseded) {
					return err
				}
				return nil
			})
			if err != nil && ctx.Err() == nil {
				log.Printf("[Storefront] Change feed error: %v", err)
			}
		}()
	}

	adminSvc := catalog.NewAdmin(docs, cache, feed)
	adminHandlers := api.NewAdminHandlers(shopSvc, adminSvc)
	adminHandlers.Reload = reload

	router := api.NewRouter(api.RouterConfig{
		Handlers:      api.NewHandlers(shopSvc),
		AuthHandlers:  api.NewAuthHandlers(shopSvc, profiles),
		AdminHandlers: adminHandlers,
	})

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("[Storefront] Server started on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("[Storefront] Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[Storefront] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}

func openDocStore(ctx context.Context, cfg config.Config) (docstore.Store, error) {
	switch cfg.DocStoreBackend {
	case config.BackendMongo:
		return docstore.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendPostgres:
		return docstore.ConnectPostgres(cfg.PostgresURL)
	case config.BackendDynamo:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		return docstore.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DynamoTable), nil
	}
	return nil, errors.New("unknown document store backend")
}
