package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-admin/core/auth"
)

type (
	authApi struct {
		svc      *auth.Service
		validate *validator.Validate
	}

	SignInRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	SignInResponse struct {
		Token string `json:"token"`
	}
)

func registerAuthAPI(g *echo.Group, svc *auth.Service, validate *validator.Validate) {
	api := authApi{
		svc:      svc,
		validate: validate,
	}

	ag := g.Group("/auth")
	ag.POST("/sign-in", api.signIn)
}

func (api *authApi) signIn(ctx echo.Context) error {
	var data SignInRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SignInRequest")
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	token, err := api.svc.SignIn(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, SignInResponse{Token: token})
}
