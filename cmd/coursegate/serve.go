package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	cloudspanner "cloud.google.com/go/spanner"
	"github.com/cccteam/coursegate"
	"github.com/cccteam/coursegate/internal/config"
	"github.com/cccteam/coursegate/policy"
	"github.com/cccteam/coursegate/sessionstorage"
	"github.com/cccteam/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/errors/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var configFile, dotEnvFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Run the HTTP server.

Configuration is read from defaults, the optional --config file, the optional --env file
and COURSEGATE_ prefixed environment variables, e.g. COURSEGATE_OIDC_ISSUER.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, dotEnvFile)
			if err != nil {
				return errors.Wrap(err, "config.Load()")
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "config.Config.Validate()")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	cmd.Flags().StringVar(&dotEnvFile, "env", ".env", "dotenv file, ignored when missing")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	p, err := policy.Load(cfg.PolicyFile)
	if err != nil {
		return errors.Wrap(err, "policy.Load()")
	}

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "newStore()")
	}
	defer closeStore()

	cookieKey := cfg.Cookie.Key
	if cookieKey == "" {
		if cookieKey, err = coursegate.GenerateCookieKey(); err != nil {
			return errors.Wrap(err, "coursegate.GenerateCookieKey()")
		}
		logger.Ctx(ctx).Warnf("cookie.key not configured, sessions will not survive a restart")
	}

	gate, err := coursegate.NewOIDC(
		store, cookieKey,
		cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL,
		coursegate.WithCookieName(cfg.Cookie.Name),
		coursegate.WithCookieDomain(cfg.Cookie.Domain),
		coursegate.WithSessionTimeout(cfg.Session.Timeout),
		coursegate.WithLoginURL(cfg.OIDC.LoginURL),
		coursegate.WithRoleClaim(cfg.OIDC.RoleClaim),
		coursegate.WithPolicy(p),
	)
	if err != nil {
		return errors.Wrap(err, "coursegate.NewOIDC()")
	}

	go func() {
		if err := gate.Warm(ctx, cfg.OIDC.WarmInterval); err != nil {
			logger.Ctx(ctx).Error(errors.Wrap(err, "coursegate.OIDC.Warm()"))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(gate, cfg.StaticDir, newLogMiddleware(cfg.Log)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Ctx(ctx).Infof("listening on %s", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http.Server.ListenAndServe()")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http.Server.Shutdown()")
	}
	logger.Ctx(ctx).Infof("server stopped")

	return nil
}

func newStore(ctx context.Context, cfg *config.Config) (store *sessionstorage.OIDC, closeFn func(), err error) {
	switch cfg.Database.Driver {
	case config.DriverSpanner:
		client, err := cloudspanner.NewClient(ctx, cfg.Database.Spanner)
		if err != nil {
			return nil, nil, errors.Wrap(err, "spanner.NewClient()")
		}
		store, closeFn = sessionstorage.NewSpannerOIDC(client), client.Close
	default:
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, errors.Wrap(err, "pgxpool.New()")
		}
		store, closeFn = sessionstorage.NewPostgresOIDC(pool), pool.Close
	}

	store.SetSessionTableName(cfg.Database.SessionTable)

	return store, closeFn, nil
}

// newLogMiddleware returns the request logger middleware of the configured exporter.
func newLogMiddleware(cfg config.Log) func(http.Handler) http.Handler {
	if cfg.Exporter == config.ExporterAWS {
		return logger.NewAWSExporter(cfg.LogAll).Middleware()
	}

	return logger.NewConsoleExporter().NoColor(cfg.NoColor).Middleware()
}

// newRouter mounts the session endpoints, the access API and the guarded views of the
// single page application. logMiddleware wraps every route.
func newRouter(gate *coursegate.OIDC, staticDir string, logMiddleware func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(logMiddleware)
	r.Use(gate.StartSession, gate.ValidateSession)

	r.Get("/auth/login", gate.Login())
	r.Get("/auth/callback", gate.CallbackOIDC())
	r.Get("/auth/frontchannel-logout", gate.FrontChannelLogout())

	r.Route("/api", func(r chi.Router) {
		r.Use(gate.SetXSRFToken, gate.ValidateXSRFToken)

		r.Get("/user/authenticated", gate.Authenticated())
		r.Post("/user/logout", gate.Logout())
		r.Get("/access", gate.Guard().Evaluate())
		r.Get("/access/watch", gate.Guard().Watch())
		r.Get("/notice", gate.Notice())
	})

	index := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
	gate.Guard().Mount(r, index)
	r.Handle("/assets/*", http.FileServer(http.Dir(staticDir)))

	return r
}
