package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"landbank-backend/internal/adapter/middleware"
	"landbank-backend/internal/domain/workflow"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

type call struct {
	method string
	path   string
	body   io.Reader
	params map[string]string
	actor  *workflow.Actor
}

// serve runs one handler against a hand-built echo context.
func serve(t *testing.T, h echo.HandlerFunc, in call) *httptest.ResponseRecorder {
	t.Helper()
	e := newEchoWithValidator()
	req := httptest.NewRequest(in.method, in.path, in.body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(in.params) > 0 {
		names := make([]string, 0, len(in.params))
		values := make([]string, 0, len(in.params))
		for k, v := range in.params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if in.actor != nil {
		c.Set(middleware.ContextActorKey, *in.actor)
	}
	if err := h(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return v
}

func actorPtr(id uint64, r workflow.Role) *workflow.Actor {
	return &workflow.Actor{UserID: id, Role: r}
}
