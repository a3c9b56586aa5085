package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/TTPzZ/hermit-home/controllers"
	"github.com/TTPzZ/hermit-home/routes"
	"github.com/TTPzZ/hermit-home/store"
)

var testSecret = []byte("test-secret")

// newTestRouter wires the full route table against an in-memory store.
func newTestRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	logger := zerolog.Nop()

	router := gin.New()
	routes.InitRoutes(router, routes.Deps{
		Readings:   controllers.NewReadingController(st, nil, logger),
		Thresholds: controllers.NewThresholdController(st, logger),
		Control:    controllers.NewControlController(st, logger),
		Auth:       controllers.NewAuthController(st, testSecret, logger),
		JWTSecret:  testSecret,
	})
	return router, st
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}, headers ...map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
