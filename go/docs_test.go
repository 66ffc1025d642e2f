package pawsserver_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerDocumentListsEveryRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/swagger/doc.json", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	for _, route := range s.router.Routes() {
		if strings.HasPrefix(route.Path, "/swagger/") {
			continue
		}
		path := strings.ReplaceAll(route.Path, ":id", "{id}")
		operations, ok := doc.Paths[path]
		if assert.True(t, ok, "path %s missing", path) {
			assert.Contains(t, operations, strings.ToLower(route.Method), "%s %s missing", route.Method, path)
		}
	}
}
