package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kubbkoz/MTSTORE-Next/pkg/catalog"
	"github.com/kubbkoz/MTSTORE-Next/pkg/common"
	"github.com/kubbkoz/MTSTORE-Next/pkg/messaging"
	"github.com/kubbkoz/MTSTORE-Next/pkg/query"
	"github.com/kubbkoz/MTSTORE-Next/pkg/server"
	"github.com/kubbkoz/MTSTORE-Next/pkg/sorting"
	"github.com/kubbkoz/MTSTORE-Next/pkg/storage"
	"github.com/kubbkoz/MTSTORE-Next/pkg/tracking"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/text/language"
)

var country = "sk"

func init() {
	c, ok := os.LookupEnv("COUNTRY")
	if ok {
		country = c
	}
}

var (
	enableProfiling = flag.Bool("profiling", false, "serve pprof on the debug listener")
	seed            = flag.Uint64("seed", 1, "seed of the generated demo catalog")
	mockCount       = flag.Int("mock", 120, "products in the demo catalog used when nothing is stored")
	adminToken      = flag.String("admin-token", "", "print an admin token for the given user and exit")
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func loadCatalog(diskStorage *storage.DiskStorage) *catalog.Catalog {
	c, err := diskStorage.LoadCatalog()
	if err == nil {
		return c
	}
	log.Printf("Could not load catalog from storage, using demo catalog: %v", err)
	c = catalog.NewMock(*mockCount, *seed)
	if err = diskStorage.SaveCatalog(c); err != nil {
		log.Printf("Failed to save demo catalog: %v", err)
	}
	return c
}

func connectCache(store *catalog.Store) *server.Cache {
	cache := server.NewMemoryCache()
	if addr, ok := os.LookupEnv("REDIS_URL"); ok && addr != "" {
		remote := server.NewCache(addr, os.Getenv("REDIS_PASSWORD"), 0)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := remote.Ping(ctx); err != nil {
			log.Printf("Redis at %s not reachable, using in memory query cache: %v", addr, err)
			remote.Close()
		} else {
			cache = remote
		}
	} else {
		log.Println("No REDIS_URL set, using in memory query cache")
	}
	store.OnChange(func(*catalog.Catalog) {
		cache.Clear()
	})
	return cache
}

type app struct {
	srv     *server.Server
	conn    *amqp.Connection
	changes *common.QueueHandler[messaging.CatalogChange]
}

func (a *app) ConnectAmqp(amqpUrl string) error {
	conn, err := amqp.DialConfig(amqpUrl, amqp.Config{
		Properties: amqp.NewConnectionProperties(),
	})
	if err != nil {
		return err
	}
	a.conn = conn
	publisher, err := messaging.NewPublisher(conn, country)
	if err != nil {
		return err
	}
	a.srv.Publisher = publisher
	a.changes = common.NewQueueHandler(a.srv.ApplyChanges, 50, time.Second)
	err = messaging.ListenToCatalogChanges(conn, country, a.srv.Origin, func(change messaging.CatalogChange) error {
		log.Printf("Got catalog change, %d upserts %d deletes", len(change.Upserted), len(change.Deleted))
		a.changes.Add(change)
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("Listening for catalog changes")
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.changes != nil {
		a.changes.Close()
	}
	if a.srv.Tracking != nil {
		a.srv.Tracking.Close()
	}
	if a.srv.Cache != nil {
		a.srv.Cache.Close()
	}
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

func main() {
	flag.Parse()

	auth, err := server.NewAuth(os.Getenv("CATALOG_TOKEN_HASH"), os.Getenv("CATALOG_API_KEY"))
	if err != nil {
		log.Printf("Admin api disabled: %v", err)
	}
	if *adminToken != "" {
		if auth == nil {
			log.Fatalf("CATALOG_TOKEN_HASH is required to create tokens")
		}
		token, err := auth.CreateToken(*adminToken, "admin", 24*time.Hour)
		if err != nil {
			log.Fatalf("Failed to create token: %v", err)
		}
		fmt.Println(token)
		return
	}

	diskStorage := storage.NewDiskStorage(country, envOr("DATA_DIR", "data"))
	store := catalog.NewStore(loadCatalog(diskStorage))

	locale, err := language.Parse(envOr("LOCALE", sorting.DefaultLanguage.String()))
	if err != nil {
		log.Printf("Invalid LOCALE, using %s: %v", sorting.DefaultLanguage, err)
		locale = sorting.DefaultLanguage
	}

	srv := &server.Server{
		Store:    store,
		Sessions: server.NewSessionStore(server.DefaultSessionTtl),
		Cache:    connectCache(store),
		Storage:  diskStorage,
		Auth:     auth,
		Origin:   uuid.NewString(),
		Options: query.Options{
			NarrowFacets:        envBool("NARROW_FACETS"),
			ResetWindowOnFilter: envBool("RESET_WINDOW_ON_FILTER"),
			Sorter:              sorting.NewSorter(locale),
		},
	}
	a := &app{srv: srv}

	if amqpUrl, ok := os.LookupEnv("RABBIT_HOST"); ok && amqpUrl != "" {
		if err := a.ConnectAmqp(amqpUrl); err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		var tracker types.Tracking
		tracker, err = tracking.NewRabbitTracking(amqpUrl, country)
		if err != nil {
			log.Printf("Failed to connect to rabbitmq for tracking: %v", err)
		} else {
			srv.Tracking = tracker
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Sessions.RunSweeper(ctx, time.Minute)
	go srv.Cache.RunSweeper(ctx, time.Minute)

	timeouts := common.LoadTimeoutConfig(common.TimeoutConfig{
		ReadHeader: 5 * time.Second,
		Read:       15 * time.Second,
		Write:      30 * time.Second,
		Idle:       60 * time.Second,
		Shutdown:   15 * time.Second,
		Hook:       5 * time.Second,
	})
	api := common.NewServerWithTimeouts(&http.Server{
		Addr:    envOr("LISTEN_ADDR", ":8080"),
		Handler: srv.Handler(),
	}, timeouts)
	debug := common.NewServerWithTimeouts(&http.Server{
		Addr:    envOr("DEBUG_ADDR", ":8081"),
		Handler: server.DebugMux(*enableProfiling),
	}, timeouts)
	stopDebug := common.StartBackgroundServer(debug, "debug server")

	common.RunServerWithShutdown(api, "catalog api", timeouts.Shutdown, timeouts.Hook,
		func(context.Context) error {
			cancel()
			return nil
		},
		stopDebug,
		a.close,
	)
}
