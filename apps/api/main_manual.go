package main

import (
	"fmt"
	"log"
	"os"

	"github.com/benbjohnson/clock"

	echoapi "github.com/trezcool/masomo-admin/apps/api/echo"
	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/auth"
	"github.com/trezcool/masomo-admin/core/dashboard"
	logsvc "github.com/trezcool/masomo-admin/services/logger"
	metricsvc "github.com/trezcool/masomo-admin/services/metrics"
	"github.com/trezcool/masomo-admin/storage/seed"
)

func startManual() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	translator := core.NewTranslator()
	validate := core.NewValidator(translator)

	data, err := seed.Load(validate)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading seed: %v", err), err)
	}

	recorder := metricsvc.NewRecorder()
	clk := clock.New()

	authSvc, err := auth.NewService(conf, clk)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up sign-in: %v", err), err)
	}

	sessions := dashboard.NewRegistry(data, dashboard.Options{
		Clock:    clk,
		UI:       conf.UI,
		Validate: validate,
		Observer: recorder,
	}, recorder)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	startDebugServer(conf, logger, sessions)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Sessions:   sessions,
			AuthSvc:    authSvc,
			Metrics:    recorder,
			Validate:   validate,
			Translator: translator,
		},
	)
	serve(conf, logger, server)
}
