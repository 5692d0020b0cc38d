package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core/dashboard"
	metricsvc "github.com/trezcool/masomo-admin/services/metrics"
)

const contextDashboardKey = "dashboard"

var errNoDashboardInCtx = errors.New("dashboard not found in echo.Context")

// sessionMiddleware loads the dashboard of the `:sid` session into the context.
func sessionMiddleware(reg *dashboard.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			d, err := reg.Get(ctx.Param("sid"))
			if err != nil {
				return err
			}
			ctx.Set(contextDashboardKey, d)
			return next(ctx)
		}
	}
}

func getContextDashboard(ctx echo.Context) (*dashboard.Dashboard, error) {
	if d, ok := ctx.Get(contextDashboardKey).(*dashboard.Dashboard); ok {
		return d, nil
	}
	return nil, errNoDashboardInCtx
}

// metricsMiddleware counts the handled requests by route & status code.
func metricsMiddleware(rec *metricsvc.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if err := next(ctx); err != nil {
				ctx.Error(err)
			}
			rec.Request(ctx.Request().Method, ctx.Path(), strconv.Itoa(ctx.Response().Status))
			return nil
		}
	}
}
