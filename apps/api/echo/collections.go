package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/collection"
	"github.com/trezcool/masomo-admin/core/dashboard"
	"github.com/trezcool/masomo-admin/core/view"
)

type (
	// validatable is implemented by the pointer of every entity type: it cleans & validates the form.
	validatable[T any] interface {
		*T
		Validate(*validator.Validate) error
	}

	collectionApi[T collection.Entity[T], PT validatable[T]] struct {
		view     func(*dashboard.Dashboard) *view.View[T]
		validate *validator.Validate
	}

	DeleteResponse struct {
		ID string `json:"id"`
	}
)

// registerCollectionAPI mounts the list, form & confirmation endpoints of one screen under g.
// With registrable, the delayed registration form is mounted as well.
func registerCollectionAPI[T collection.Entity[T], PT validatable[T]](
	g *echo.Group,
	getView func(*dashboard.Dashboard) *view.View[T],
	validate *validator.Validate,
	registrable bool,
) *collectionApi[T, PT] {
	api := &collectionApi[T, PT]{
		view:     getView,
		validate: validate,
	}

	g.GET("", api.query)
	g.POST("", api.create)
	g.GET("/filters", api.filters)
	g.GET("/signals", api.signals)
	if registrable {
		g.POST("/register", api.register)
	}

	// edit form
	g.GET("/edit", api.editing)
	g.PUT("/edit", api.commitEdit)
	g.POST("/edit/save", api.saveEdit)
	g.DELETE("/edit", api.cancelEdit)

	// delete confirmation
	g.POST("/delete/confirm", api.confirmDelete)
	g.DELETE("/delete", api.cancelDelete)

	// detail endpoints
	g.GET("/:id", api.retrieve)
	g.POST("/:id/edit", api.beginEdit)
	g.POST("/:id/delete", api.requestDelete)

	return api
}

func (api *collectionApi[T, PT]) getView(ctx echo.Context) (*view.View[T], error) {
	d, err := getContextDashboard(ctx)
	if err != nil {
		return nil, err
	}
	return api.view(d), nil
}

// bind binds & validates the request body.
func (api *collectionApi[T, PT]) bind(ctx echo.Context, v *view.View[T]) (T, error) {
	var data T
	if err := ctx.Bind(&data); err != nil {
		return data, errors.Wrapf(err, "binding to %s", v.Label())
	}
	if err := PT(&data).Validate(api.validate); err != nil {
		return data, err
	}
	return data, nil
}

// revise applies fn to the working copy of the edit form.
func (api *collectionApi[T, PT]) revise(ctx echo.Context, fn func(T) (T, error)) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	revised, err := v.ReviseEdit(fn)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, revised)
}

// Handlers

func (api *collectionApi[T, PT]) query(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, v.List(bindQuery(ctx, v.Filters())))
}

func (api *collectionApi[T, PT]) filters(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, v.Filters())
}

func (api *collectionApi[T, PT]) signals(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, v.Signals())
}

func (api *collectionApi[T, PT]) create(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	data, err := api.bind(ctx, v)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, v.Add(data))
}

func (api *collectionApi[T, PT]) register(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	data, err := api.bind(ctx, v)
	if err != nil {
		return err
	}
	if !v.Register(data) {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusAccepted, v.Signals())
}

func (api *collectionApi[T, PT]) retrieve(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	e, err := v.Get(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *collectionApi[T, PT]) beginEdit(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	working, err := v.BeginEdit(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, working)
}

func (api *collectionApi[T, PT]) editing(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	working, ok := v.Editing()
	if !ok {
		return core.ErrNoEditTarget
	}
	return ctx.JSON(http.StatusOK, working)
}

func (api *collectionApi[T, PT]) commitEdit(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	if _, ok := v.Editing(); !ok {
		return core.ErrNoEditTarget
	}
	data, err := api.bind(ctx, v)
	if err != nil {
		return err
	}
	updated, err := v.CommitEdit(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (api *collectionApi[T, PT]) saveEdit(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	updated, err := v.SaveEdit(func(working T) (T, error) {
		err := PT(&working).Validate(api.validate)
		return working, err
	})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, updated)
}

func (api *collectionApi[T, PT]) cancelEdit(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	v.CancelEdit()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *collectionApi[T, PT]) requestDelete(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	if err = v.RequestDelete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, v.Signals())
}

func (api *collectionApi[T, PT]) confirmDelete(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	id, err := v.ConfirmDelete()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, DeleteResponse{ID: id})
}

func (api *collectionApi[T, PT]) cancelDelete(ctx echo.Context) error {
	v, err := api.getView(ctx)
	if err != nil {
		return err
	}
	v.CancelDelete()
	return ctx.NoContent(http.StatusNoContent)
}
