package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core/settings"
)

type settingsApi struct{}

func registerSettingsAPI(g *echo.Group) {
	api := settingsApi{}

	g.GET("", api.retrieve)
	g.PUT("/school", api.updateSchool)
	g.PUT("/academic-year", api.updateAcademicYear)
	g.PUT("/notifications", api.updateNotifications)
	g.PUT("/security", api.updateSecurity)
	g.POST("/terms", api.addTerm)
	g.PUT("/terms/:index", api.updateTerm)
	g.DELETE("/terms/:index", api.removeTerm)
	g.POST("/save", api.save)
}

func getContextForm(ctx echo.Context) (*settings.Form, error) {
	d, err := getContextDashboard(ctx)
	if err != nil {
		return nil, err
	}
	return d.Settings, nil
}

// change binds the request body to data, then applies it to the form with fn.
func (api settingsApi) change(ctx echo.Context, data interface{}, fn func(f *settings.Form) error) error {
	f, err := getContextForm(ctx)
	if err != nil {
		return err
	}
	if data != nil {
		if err = ctx.Bind(data); err != nil {
			return errors.Wrapf(err, "binding to %T", data)
		}
	}
	if err = fn(f); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, f.State())
}

func (api settingsApi) retrieve(ctx echo.Context) error {
	f, err := getContextForm(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, f.State())
}

func (api settingsApi) updateSchool(ctx echo.Context) error {
	var data settings.SchoolInfo
	return api.change(ctx, &data, func(f *settings.Form) error { return f.UpdateSchool(data) })
}

func (api settingsApi) updateAcademicYear(ctx echo.Context) error {
	var data settings.AcademicYearDates
	return api.change(ctx, &data, func(f *settings.Form) error { return f.UpdateAcademicYear(data) })
}

func (api settingsApi) updateNotifications(ctx echo.Context) error {
	var data settings.Notifications
	return api.change(ctx, &data, func(f *settings.Form) error { return f.UpdateNotifications(data) })
}

func (api settingsApi) updateSecurity(ctx echo.Context) error {
	var data settings.Security
	return api.change(ctx, &data, func(f *settings.Form) error { return f.UpdateSecurity(data) })
}

func (api settingsApi) addTerm(ctx echo.Context) error {
	return api.change(ctx, nil, func(f *settings.Form) error { return f.AddTerm() })
}

func (api settingsApi) updateTerm(ctx echo.Context) error {
	idx, err := bindIndex(ctx)
	if err != nil {
		return err
	}
	var data settings.Term
	return api.change(ctx, &data, func(f *settings.Form) error { return f.UpdateTerm(idx, data) })
}

func (api settingsApi) removeTerm(ctx echo.Context) error {
	idx, err := bindIndex(ctx)
	if err != nil {
		return err
	}
	return api.change(ctx, nil, func(f *settings.Form) error { return f.RemoveTerm(idx) })
}

func (api settingsApi) save(ctx echo.Context) error {
	f, err := getContextForm(ctx)
	if err != nil {
		return err
	}
	if err = f.Save(); err != nil {
		return err
	}
	return ctx.JSON(http.StatusAccepted, f.State())
}
