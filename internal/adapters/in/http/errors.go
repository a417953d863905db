package http

import (
	"errors"
	"log/slog"
	"net/http"

	"transportation/internal/core/domain/services"
	"transportation/internal/generated/servers"
	"transportation/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps use case errors onto the HTTP error model. Anything that
// is not a not-found or an input error is logged and reported as 500.
func writeError(ctx echo.Context, err error) error {
	var applyErr *services.ApplyError
	if errors.As(err, &applyErr) {
		slog.ErrorContext(ctx.Request().Context(), "package events partially applied",
			"applied", len(applyErr.Applied), "failed", applyErr.Failed.String(), "error", applyErr.Cause)
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Package events were only partly saved, package " + applyErr.Failed.String() + " failed",
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, servers.Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return badRequest(ctx, err.Error())
	}

	slog.ErrorContext(ctx.Request().Context(), "request failed",
		"method", ctx.Request().Method, "path", ctx.Path(), "error", err)

	return ctx.JSON(http.StatusInternalServerError, servers.Error{
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
	})
}

func writeViolation(ctx echo.Context, v *services.Violation) error {
	subjects := v.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return ctx.JSON(http.StatusUnprocessableEntity, servers.Violation{
		Code:     http.StatusUnprocessableEntity,
		Rule:     string(v.Rule),
		Message:  v.Message,
		Subjects: subjects,
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// httpErrorHandler renders errors raised outside the handlers (routing,
// parameter binding, request validation) with the same error model.
func httpErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
}
