package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type structValidator struct {
	validator *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &structValidator{validator: validator.New()}
	return e
}

// errorBody runs the handler error through echo's error handler and decodes
// the response body.
func errorBody(t *testing.T, e *echo.Echo, c echo.Context, rec *httptest.ResponseRecorder, err error) map[string]interface{} {
	t.Helper()
	assert.Error(t, err)
	e.HTTPErrorHandler(err, c)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestOrderHandler_CreateOrder_ValidationErrorEnvelope(t *testing.T) {
	e := newTestEcho()
	h := NewOrderHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	body := errorBody(t, e, c, rec, h.CreateOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body, "error")
	assert.NotEmpty(t, body["error"])
	assert.NotContains(t, body, "message")
}

func TestOrderHandler_CreateOrder_MalformedBodyEnvelope(t *testing.T) {
	e := newTestEcho()
	h := NewOrderHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	body := errorBody(t, e, c, rec, h.CreateOrder(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", body["error"])
	assert.NotContains(t, body, "message")
}

func TestOrderHandler_GetOrder_InvalidIDEnvelope(t *testing.T) {
	e := newTestEcho()
	h := NewOrderHandler(nil)

	tests := []struct {
		name string
		id   string
	}{
		{name: "non-numeric", id: "abc"},
		{name: "zero", id: "0"},
		{name: "negative", id: "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/orders/"+tt.id, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			c.SetParamNames("id")
			c.SetParamValues(tt.id)

			body := errorBody(t, e, c, rec, h.GetOrder(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "invalid id", body["error"])
			assert.NotContains(t, body, "message")
		})
	}
}

func TestOrderHandler_ListOrders_MissingClaimsEnvelope(t *testing.T) {
	e := newTestEcho()
	h := NewOrderHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	body := errorBody(t, e, c, rec, h.ListOrders(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid token", body["error"])
	assert.NotContains(t, body, "message")
}
