package dig_container

import (
	"log"
	"os"

	"github.com/benbjohnson/clock"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/masomo-admin/apps/api/echo"
	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/auth"
	"github.com/trezcool/masomo-admin/core/dashboard"
	logsvc "github.com/trezcool/masomo-admin/services/logger"
	metricsvc "github.com/trezcool/masomo-admin/services/metrics"
	"github.com/trezcool/masomo-admin/storage/seed"
)

type ServerParams struct {
	dig.In
	Conf       *core.Config
	Logger     core.Logger
	Sessions   *dashboard.Registry
	AuthSvc    *auth.Service
	Metrics    *metricsvc.Recorder
	Validate   *validator.Validate
	Translator ut.Translator
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newRegistry(
	conf *core.Config,
	data *dashboard.Seed,
	clk clock.Clock,
	validate *validator.Validate,
	rec *metricsvc.Recorder,
) *dashboard.Registry {
	return dashboard.NewRegistry(data, dashboard.Options{
		Clock:    clk,
		UI:       conf.UI,
		Validate: validate,
		Observer: rec,
	}, rec)
}

func newServer(p ServerParams) echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:       p.Conf,
		Logger:     p.Logger,
		Sessions:   p.Sessions,
		AuthSvc:    p.AuthSvc,
		Metrics:    p.Metrics,
		Validate:   p.Validate,
		Translator: p.Translator,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(core.NewValidator))
	must(c.Provide(clock.New))
	must(c.Provide(seed.Load))
	must(c.Provide(metricsvc.NewRecorder))
	must(c.Provide(auth.NewService))
	must(c.Provide(newRegistry))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
