package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pawsserver "github.com/Apurer/paws-adoption-api/go"
	platformobservability "github.com/Apurer/paws-adoption-api/internal/platform/observability"
)

func TestBuildHandlers_InMemoryStoresShareAssociations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := defaultConfig()
	instruments := &platformobservability.Instruments{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	router := pawsserver.NewRouter(buildHandlers(cfg, newStores(nil), instruments))

	post := func(path string, body any) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		return rec
	}

	rec := post("/pets/create", map[string]any{"name": "Fido"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var pet struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pet))

	rec = post("/users/create", map[string]any{
		"name": "Ann", "username": "ann", "password": "pw", "sponsoredPetIds": []int64{pet.ID},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[1]`, string(mustField(t, rec.Body.Bytes(), "sponsorIds")))
}

func mustField(t *testing.T, body []byte, field string) json.RawMessage {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &fields))
	return fields[field]
}
