// Command brandgate-api serves the gating API: context validation, scoring,
// guardrail checks, persistence, and signal detection
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandgate/internal/adapters/ai/anthropic"
	"brandgate/internal/platform/config"
	"brandgate/internal/platform/logger"
	phttp "brandgate/internal/platform/net/http"
	"brandgate/internal/platform/net/middleware"
	"brandgate/internal/platform/store"
	"brandgate/internal/services/api"
	ctxrepo "brandgate/internal/services/contexts/repo"
	ctxservice "brandgate/internal/services/contexts/service"
	sigdomain "brandgate/internal/services/signals/domain"
	sigservice "brandgate/internal/services/signals/service"
	tracerepo "brandgate/internal/services/traces/repo"
)

func main() {
	logger.Init(logger.FromEnv())
	log := logger.Named("brandgate-api")

	root := config.New()
	apiCfg := root.Prefix("API_")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.FromConf(root.Prefix("STORE_")))
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer st.Close()

	opt := api.Options{}

	if st.PG != nil {
		opt.Contexts = ctxservice.New(ctxrepo.NewPG(st.PG))
	} else {
		log.Warn().Msg("STORE_PG_DSN not set; context endpoints disabled")
	}
	if st.CH != nil {
		opt.Traces = tracerepo.NewCH(st.CH)
	} else {
		log.Warn().Msg("STORE_CH_DSN not set; run traces will not persist")
	}

	var insight sigdomain.InsightPort
	aiOpts := anthropic.FromConf(root.Prefix("ANTHROPIC_"))
	if aiOpts.Enabled() {
		client, err := anthropic.New(aiOpts)
		if err != nil {
			log.Fatal().Err(err).Msg("anthropic adapter init failed")
		}
		insight = client
		log.Info().Str("model", aiOpts.Model).Msg("signal enrichment enabled")
	}

	opt.Signals = sigservice.New(insight, sigservice.Config{
		EnrichTimeout: apiCfg.MayDuration("ENRICH_TIMEOUT", 10*time.Second),
		MaxEnrich:     apiCfg.MayInt("MAX_ENRICH", 5),
	})

	srv := phttp.NewServer(apiCfg)
	r := srv.Router()
	r.Use(middleware.RequestLogger, middleware.AccessLog, middleware.RecoverJSON)
	phttp.MountSwagger(r)
	api.Mount(r, opt)

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.Error().Err(err).Msg("shutdown error")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("bye")
}
