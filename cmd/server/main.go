package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/go-redis/redis/v8"
	"github.com/jrsteele09/go-gym-server/auth"
	"github.com/jrsteele09/go-gym-server/gym"
	fakegymrepo "github.com/jrsteele09/go-gym-server/gym/repofake"
	"github.com/jrsteele09/go-gym-server/internal/config"
	"github.com/jrsteele09/go-gym-server/internal/logging"
	"github.com/jrsteele09/go-gym-server/internal/metrics"
	"github.com/jrsteele09/go-gym-server/memberships"
	fakemembershiprepo "github.com/jrsteele09/go-gym-server/memberships/repofake"
	"github.com/jrsteele09/go-gym-server/revocation"
	fakerevocationrepo "github.com/jrsteele09/go-gym-server/revocation/repofake"
	"github.com/jrsteele09/go-gym-server/server"
	"github.com/jrsteele09/go-gym-server/storage/postgres"
	"github.com/jrsteele09/go-gym-server/token"
	"github.com/jrsteele09/go-gym-server/users"
	fakeuserrepo "github.com/jrsteele09/go-gym-server/users/repofake"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logging.Setup(os.Stdout, c.GetEnv(), c.GetLogLevel())
	displayAppname(c.GetAppName())
	if err := c.Validate(); err != nil {
		return err
	}
	if config.UsingDevSecret() {
		log.Warn().Msg("SECRET_KEY is not set, using the development signing key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, c)
	if err != nil {
		return err
	}
	defer store.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewCollector(reg)

	registry, closeCache, err := revocationChain(ctx, c, store.revocations)
	if err != nil {
		return err
	}
	defer closeCache()

	signer, err := token.NewHMACSigner(c.GetSecretKey())
	if err != nil {
		return err
	}
	tokens, err := token.NewService(signer, token.WithTTL(c.GetTokenTTL()))
	if err != nil {
		return err
	}
	credentials, err := users.NewCredentialStore(store.users, users.WithCost(c.GetBcryptCost()))
	if err != nil {
		return err
	}
	guard, err := auth.NewGuard(tokens, registry, credentials)
	if err != nil {
		return err
	}
	authService, err := auth.NewService(auth.Repos{
		Users:       store.users,
		Memberships: store.memberships,
		Revocations: registry,
	}, credentials, tokens, auth.WithRecorder(recorder))
	if err != nil {
		return err
	}
	gymService, err := gym.NewService(store.gym, store.users)
	if err != nil {
		return err
	}

	handler, err := server.New(ctx, c, server.Deps{
		Users:       store.users,
		Phones:      store.phones,
		Memberships: store.memberships,
		Credentials: credentials,
		Auth:        authService,
		Guard:       guard,
		Gym:         gymService,
		Recorder:    recorder,
		Metrics:     metrics.Handler(reg),
		Health:      store.health,
	})
	if err != nil {
		return err
	}
	defer handler.Close()

	if schedule := c.GetRevocationPruneSchedule(); schedule != "" {
		pruner, err := revocation.NewPruner(registry, schedule, c.GetRevocationPruneGrace(), revocation.WithRecorder(recorder))
		if err != nil {
			return err
		}
		pruner.Start()
		defer func() { <-pruner.Stop().Done() }()
		log.Info().Str("schedule", schedule).Msg("Revocation pruning enabled")
	}

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listenAndServe(httpServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		return shutdown(httpServer)
	})
	return g.Wait()
}

// storage is the set of repositories the process runs against.
type storage struct {
	users       users.UserRepo
	phones      users.PhoneRepo
	memberships memberships.Repo
	revocations revocation.Registry
	gym         gym.Repos
	health      server.HealthCheck
	close       func()
}

// openStorage uses PostgreSQL when DATABASE_URL is set and in-memory
// repositories otherwise.
func openStorage(ctx context.Context, c config.Config) (*storage, error) {
	databaseURL := c.GetDatabaseURL()
	if databaseURL == "" {
		log.Warn().Msg("DATABASE_URL is not set, using in-memory storage")
		userRepo := fakeuserrepo.NewFakeUserRepo()
		return &storage{
			users:       userRepo,
			phones:      fakeuserrepo.NewFakePhoneRepo(userRepo),
			memberships: fakemembershiprepo.NewFakeMembershipRepo(),
			revocations: fakerevocationrepo.NewFakeRegistry(),
			gym:         fakegymrepo.NewRepos(),
			close:       func() {},
		}, nil
	}

	if c.GetAutoMigrate() {
		if err := postgres.RunMigrations(databaseURL); err != nil {
			return nil, err
		}
		log.Info().Msg("Database migrations applied")
	}

	db, err := postgres.Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &storage{
		users:       postgres.NewUserRepo(db),
		phones:      postgres.NewPhoneRepo(db),
		memberships: postgres.NewMembershipRepo(db),
		revocations: postgres.NewRevocationRegistry(db),
		gym:         postgres.NewGymRepos(db),
		health:      db.PingContext,
		close:       func() { closeDB(db) },
	}, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Err(err).Msg("Failed to close database")
	}
}

// revocationChain layers the positive caches over the durable registry:
// LRU in front of Redis (when configured) in front of storage. The returned
// func releases the Redis connection.
func revocationChain(ctx context.Context, c config.Config, registry revocation.Registry) (revocation.Registry, func(), error) {
	closeCache := func() {}
	if redisURL := c.GetRedisURL(); redisURL != "" {
		client, err := revocation.NewRedisClient(ctx, redisURL)
		if err != nil {
			return nil, nil, err
		}
		cache, err := revocation.NewRedisCache(client, registry)
		if err != nil {
			closeRedis(client)
			return nil, nil, err
		}
		registry = cache
		closeCache = func() { closeRedis(client) }
		log.Info().Msg("Revocation cache backed by Redis")
	}
	if size := c.GetRevocationCacheSize(); size > 0 {
		registry = revocation.NewLRUCache(registry, size, c.GetTokenTTL())
	}
	return registry, closeCache, nil
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Err(err).Msg("Failed to close redis client")
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func shutdown(server *http.Server) error {
	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
