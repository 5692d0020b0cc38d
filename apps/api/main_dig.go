package main

import (
	"fmt"

	dig_container "github.com/trezcool/masomo-admin/apps/api/di/dig"
	echoapi "github.com/trezcool/masomo-admin/apps/api/echo"
	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/dashboard"
)

func startWithDig() {
	c := dig_container.New()

	must(c.Invoke(func(
		conf *core.Config,
		logger core.Logger,
		sessions *dashboard.Registry,
		server echoapi.Server,
	) {
		logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
		defer logger.Info("Application stopped")

		startDebugServer(conf, logger, sessions)
		serve(conf, logger, server)
	}))
}
