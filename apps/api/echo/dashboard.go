package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/calendar"
	"github.com/trezcool/masomo-admin/core/classroom"
	"github.com/trezcool/masomo-admin/core/dashboard"
	"github.com/trezcool/masomo-admin/core/employee"
	"github.com/trezcool/masomo-admin/core/news"
	"github.com/trezcool/masomo-admin/core/student"
	"github.com/trezcool/masomo-admin/core/teacher"
	"github.com/trezcool/masomo-admin/core/view"
)

type (
	dashboardApi struct {
		sessions *dashboard.Registry
		validate *validator.Validate
	}

	SessionResponse struct {
		ID string `json:"id"`
	}

	TargetTypeRequest struct {
		TargetType string `json:"target_type" validate:"required,oneof=all class student"`
	}

	TargetClassRequest struct {
		ClassID string `json:"class_id"`
	}
)

func registerDashboardAPI(g *echo.Group, sessions *dashboard.Registry, validate *validator.Validate) {
	api := dashboardApi{
		sessions: sessions,
		validate: validate,
	}

	g.POST("/sessions", api.openSession)

	sg := g.Group("/sessions/:sid", sessionMiddleware(sessions))
	sg.DELETE("", api.closeSession)

	registerCollectionAPI[student.Student](sg.Group("/students"),
		func(d *dashboard.Dashboard) *view.View[student.Student] { return d.Students }, validate, true)
	registerCollectionAPI[teacher.Teacher](sg.Group("/teachers"),
		func(d *dashboard.Dashboard) *view.View[teacher.Teacher] { return d.Teachers }, validate, true)
	registerCollectionAPI[employee.Employee](sg.Group("/employees"),
		func(d *dashboard.Dashboard) *view.View[employee.Employee] { return d.Employees }, validate, false)

	classes := registerCollectionAPI[classroom.ClassRoom](sg.Group("/classes"),
		func(d *dashboard.Dashboard) *view.View[classroom.ClassRoom] { return d.Classes }, validate, false)
	sg.POST("/classes/edit/schedule", api.addScheduleSlot(classes))
	sg.PUT("/classes/edit/schedule/:index", api.updateScheduleSlot(classes))
	sg.DELETE("/classes/edit/schedule/:index", api.removeScheduleSlot(classes))

	newsApi := registerCollectionAPI[news.Item](sg.Group("/news"),
		func(d *dashboard.Dashboard) *view.View[news.Item] { return d.News }, validate, true)
	sg.GET("/news/recipients", api.recipients)
	sg.PUT("/news/edit/target-type", api.setTargetType(newsApi))
	sg.PUT("/news/edit/target-class", api.setTargetClass(newsApi))
	sg.POST("/news/edit/students/:student_id", api.toggleStudent(newsApi))

	sg.GET("/calendar", api.month)
	sg.GET("/calendar/:date", api.day)

	registerSettingsAPI(sg.Group("/settings"))
}

// Sessions

func (api *dashboardApi) openSession(ctx echo.Context) error {
	d, err := api.sessions.Open()
	if err != nil {
		return errors.Wrap(err, "opening session")
	}
	return ctx.JSON(http.StatusCreated, SessionResponse{ID: d.ID})
}

func (api *dashboardApi) closeSession(ctx echo.Context) error {
	if err := api.sessions.Close(ctx.Param("sid")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Classes

func (api *dashboardApi) addScheduleSlot(classes *collectionApi[classroom.ClassRoom, *classroom.ClassRoom]) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return classes.revise(ctx, func(c classroom.ClassRoom) (classroom.ClassRoom, error) {
			return c.AddScheduleSlot(), nil
		})
	}
}

func (api *dashboardApi) updateScheduleSlot(classes *collectionApi[classroom.ClassRoom, *classroom.ClassRoom]) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		idx, err := bindIndex(ctx)
		if err != nil {
			return err
		}
		var slot classroom.Slot
		if err = ctx.Bind(&slot); err != nil {
			return errors.Wrap(err, "binding to Slot")
		}
		slot.Clean()
		if err = api.validate.Struct(slot); err != nil {
			return err
		}
		return classes.revise(ctx, func(c classroom.ClassRoom) (classroom.ClassRoom, error) {
			return c.UpdateScheduleSlot(idx, slot)
		})
	}
}

func (api *dashboardApi) removeScheduleSlot(classes *collectionApi[classroom.ClassRoom, *classroom.ClassRoom]) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		idx, err := bindIndex(ctx)
		if err != nil {
			return err
		}
		return classes.revise(ctx, func(c classroom.ClassRoom) (classroom.ClassRoom, error) {
			c, err := c.RemoveScheduleSlot(idx)
			if errors.Is(err, classroom.ErrLastSlot) {
				return c, core.NewValidationError(nil, core.FieldError{Field: "schedule", Error: err.Error()})
			}
			return c, err
		})
	}
}

// News

func (api *dashboardApi) recipients(ctx echo.Context) error {
	d, err := getContextDashboard(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d.Recipients(core.CleanString(ctx.QueryParam("class_id"))))
}

func (api *dashboardApi) setTargetType(items *collectionApi[news.Item, *news.Item]) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var data TargetTypeRequest
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to TargetTypeRequest")
		}
		if err := api.validate.Struct(data); err != nil {
			return err
		}
		return items.revise(ctx, func(n news.Item) (news.Item, error) {
			n.SetTargetType(data.TargetType)
			return n, nil
		})
	}
}

func (api *dashboardApi) setTargetClass(items *collectionApi[news.Item, *news.Item]) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		var data TargetClassRequest
		if err := ctx.Bind(&data); err != nil {
			return errors.Wrap(err, "binding to TargetClassRequest")
		}
		return items.revise(ctx, func(n news.Item) (news.Item, error) {
			n.SetTargetClass(core.CleanString(data.ClassID))
			return n, nil
		})
	}
}

func (api *dashboardApi) toggleStudent(items *collectionApi[news.Item, *news.Item]) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		studentID := ctx.Param("student_id")
		return items.revise(ctx, func(n news.Item) (news.Item, error) {
			n.ToggleStudent(studentID)
			return n, nil
		})
	}
}

// Calendar

func (api *dashboardApi) month(ctx echo.Context) error {
	d, err := getContextDashboard(ctx)
	if err != nil {
		return err
	}
	month, err := calendar.ParseMonth(ctx.QueryParam("month"), d.Now())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d.Calendar(month))
}

func (api *dashboardApi) day(ctx echo.Context) error {
	d, err := getContextDashboard(ctx)
	if err != nil {
		return err
	}
	date, err := calendar.ParseDate(ctx.Param("date"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, d.Day(date))
}
