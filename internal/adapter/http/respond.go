package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"landbank-backend/internal/adapter/middleware"
	"landbank-backend/internal/domain/workflow"
	"landbank-backend/pkg/apperror"
)

// responder is embedded by every handler for the shared error mapping.
type responder struct{ log *zap.Logger }

func newResponder(l *zap.Logger) responder {
	if l == nil {
		l = zap.NewNop()
	}
	return responder{log: l}
}

// fail maps err onto its HTTP status; joined errors list every condition.
func (r responder) fail(c echo.Context, err error) error {
	primary := apperror.FromError(err)
	resp := ErrorResponse{Error: primary.Message, Code: primary.Code}
	if all := apperror.All(err); len(all) > 1 {
		for _, e := range all {
			resp.Conditions = append(resp.Conditions, Condition{Code: e.Code, Message: e.Message})
		}
	}
	if primary.Status >= http.StatusInternalServerError {
		r.log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return c.JSON(primary.Status, resp)
}

var errBadRequest = errors.New("bad request")

// bind decodes and validates req, writing the 400/422 response itself.
// A non-nil return means the response is already written.
func (r responder) bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		if werr := c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"}); werr != nil {
			return werr
		}
		return errBadRequest
	}
	if err := c.Validate(req); err != nil {
		resp := ErrorResponse{
			Error:   "validation failed",
			Code:    apperror.ErrValidation.Code,
			Details: ToFieldErrors(err),
		}
		if werr := c.JSON(http.StatusUnprocessableEntity, resp); werr != nil {
			return werr
		}
		return errBadRequest
	}
	return nil
}

// parseID reads a positive numeric path parameter.
func (r responder) parseID(c echo.Context, name string) (uint64, error) {
	raw := c.Param(name)
	if raw == "" {
		if err := c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " path param"}); err != nil {
			return 0, err
		}
		return 0, errBadRequest
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		if err := c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"}); err != nil {
			return 0, err
		}
		return 0, errBadRequest
	}
	return id, nil
}

func (r responder) actor(c echo.Context) (workflow.Actor, error) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		if err := r.fail(c, apperror.Clone(apperror.ErrUnauthenticated, "missing actor")); err != nil {
			return a, err
		}
		return a, errBadRequest
	}
	return a, nil
}

// done turns the internal "already answered" marker back into a nil handler error.
func done(err error) error {
	if errors.Is(err, errBadRequest) {
		return nil
	}
	return err
}
