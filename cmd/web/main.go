// cmd/web/main.go
//
// PCG site – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Load conf/global.yaml with SITE_* overrides and validate it.
//
//  3. Start daily rotating logger (tees to console when running in a TTY).
//
//  4. Resolve `vault:` secrets, only when the config holds any.
//
//  5. Open MySQL and run every component's migrations, or fall back to the
//     in-memory store when database.driver is "memory".
//
//  6. Pick the session store (sql, redis, or memory) and start the purge
//     loop for stores that need one.
//
//  7. Open the optional GeoIP database.
//
//  8. Build the root handler (middleware, /metrics, components) and serve
//     until SIGINT or SIGTERM, then drain for up to 15 s.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
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

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yanizio/pcgsite/internal/auth"
	"github.com/yanizio/pcgsite/internal/component"
	"github.com/yanizio/pcgsite/internal/config"
	"github.com/yanizio/pcgsite/internal/database"
	"github.com/yanizio/pcgsite/internal/logger"
	"github.com/yanizio/pcgsite/internal/metrics"
	"github.com/yanizio/pcgsite/internal/requestinfo"
	"github.com/yanizio/pcgsite/internal/server"
	"github.com/yanizio/pcgsite/internal/session"
	"github.com/yanizio/pcgsite/internal/store"
	"github.com/yanizio/pcgsite/internal/vault"

	_ "github.com/yanizio/pcgsite/components/auth"
	_ "github.com/yanizio/pcgsite/components/content"
	_ "github.com/yanizio/pcgsite/components/resources"
	_ "github.com/yanizio/pcgsite/components/web"
)

const (
	serverEnvPath   = "/usr/local/etc/pcgsite/global.env"
	shutdownTimeout = 15 * time.Second
)

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(logger.Options{
		Dir:   cfg.Log.Dir,
		Tee:   cfg.Log.Tee || runningInTTY(),
		Level: cfg.Log.Level,
	})
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	if err := run(ctx, cfg, logOut); err != nil {
		logOut.Errorw("server stopped", "err", err)
		_ = logOut.Sync()
		os.Exit(1)
	}
	logOut.Infow("server stopped cleanly")
}

func run(ctx context.Context, cfg *config.Config, logOut *zap.SugaredLogger) error {
	//
	// ── 1.  Secrets ─────────────────────────────────────────────────────
	//
	if cfg.NeedsVault() {
		vc, err := vault.New(ctx, logOut)
		if err != nil {
			return err
		}
		if err := cfg.ResolveSecrets(ctx, vc); err != nil {
			return err
		}
		logOut.Infow("vault secrets resolved")
	}

	//
	// ── 2.  Storage ─────────────────────────────────────────────────────
	//
	var (
		st       store.Storage
		sessions session.Store
		migrate  = component.Migrations()
	)
	if cfg.Database.Driver == "memory" {
		logOut.Warnw("using in-memory storage; edits are lost on restart")
		st = store.NewMemory()
	} else {
		logOut.Infow("connecting to database")
		conn, err := database.OpenWithOptions(ctx, cfg.Database.FormatDSN(), cfg.Database.MaxOpen, cfg.Database.MaxIdle)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close() }()

		if cfg.Session.Driver == "sql" {
			migrate = append(migrate, session.Schema...)
		}
		if err := database.Migrate(ctx, conn, migrate); err != nil {
			return err
		}
		logOut.Infow("database online", "migrations", len(migrate))
		st = store.NewSQL(conn)

		if cfg.Session.Driver == "sql" {
			sessions = session.NewSQLStore(conn)
		}
	}

	//
	// ── 3.  Sessions ────────────────────────────────────────────────────
	//
	switch cfg.Session.Driver {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		sessions = session.NewRedisStore(rdb, cfg.Session.RedisPrefix)
	case "memory":
		sessions = session.NewMemoryStore()
	case "sql":
		if sessions == nil {
			return errors.New("session.driver sql requires database.driver mysql")
		}
	}
	if p, ok := sessions.(session.Purger); ok {
		go session.RunPurger(ctx, p, cfg.Session.PurgeInterval, logOut, func(n int64) {
			metrics.SessionsPurgedTotal.Add(float64(n))
		})
	}
	logOut.Infow("session store ready", "driver", cfg.Session.Driver)

	//
	// ── 4.  GeoIP (optional) ────────────────────────────────────────────
	//
	if err := requestinfo.OpenGeo(cfg.GeoIP.DBPath); err != nil {
		logOut.Warnw("geoip disabled", "path", cfg.GeoIP.DBPath, "err", err)
	}
	defer requestinfo.CloseGeo()

	//
	// ── 5.  Root handler and server ─────────────────────────────────────
	//
	handler, err := server.Router(server.Options{
		Log:        logOut,
		ForceHTTPS: cfg.HTTP.ForceHTTPS,
		Deps: component.Deps{
			Store: st,
			Auth: &auth.Service{
				Store:    st,
				Sessions: sessions,
				Cost:     cfg.Auth.BcryptCost,
				TTL:      cfg.Session.TTL,
			},
			Cookie:       session.Cookie{Name: cfg.Session.CookieName},
			ExposeErrors: cfg.HTTP.ExposeErrors,
		},
	})
	if err != nil {
		return err
	}

	srv := server.New(cfg.HTTP, handler)
	errCh := make(chan error, 1)
	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logOut.Infow("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
