package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/caseadmin/internal/buildinfo"
	"github.com/dmitrijs2005/caseadmin/internal/client/actions"
	"github.com/dmitrijs2005/caseadmin/internal/client/api"
	"github.com/dmitrijs2005/caseadmin/internal/client/cli"
	"github.com/dmitrijs2005/caseadmin/internal/client/client"
	"github.com/dmitrijs2005/caseadmin/internal/client/config"
	"github.com/dmitrijs2005/caseadmin/internal/client/reftypes"
	"github.com/dmitrijs2005/caseadmin/internal/client/repositories/localstore"
	"github.com/dmitrijs2005/caseadmin/internal/client/session"
	"github.com/dmitrijs2005/caseadmin/internal/client/store"
	"github.com/dmitrijs2005/caseadmin/internal/logging"
	"github.com/dmitrijs2005/caseadmin/internal/metrics"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	local := localstore.NewSQLiteRepository(db)
	if n, err := local.Purge(ctx); err != nil {
		logger.Warn(ctx, "purge local storage", "err", err)
	} else if n > 0 {
		logger.Debug(ctx, "purged expired local storage", "rows", n)
	}

	m := metrics.New()
	st := store.New(logger, m)
	sess := session.NewManager(local, cfg.SessionKey, cfg.RememberFor, logger)

	apiClient := api.NewClient(api.ClientConfig{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Tokens:    sess,
		OnUnauthorized: func(context.Context) {
			sess.Clear()
			st.Dispatch(store.Logout{})
		},
		Logger:  logger,
		Metrics: m,
	})

	deps := actions.Deps{Fetcher: apiClient, Store: st, Endpoints: cfg, Log: logger, Metrics: m}
	set := actions.NewSet(deps)

	app := cli.NewApp(cli.Deps{
		Log:     logger,
		Metrics: m,
		Store:   st,
		Actions: set,
		Auth:    actions.NewAuth(deps, sess, cfg.LoginEndpoint),
		Session: sess,
		Refs:    reftypes.NewRegistry(set),
	})

	app.Run(ctx)

}
