package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/docforge/internal/config"
	"github.com/jonathan/docforge/internal/pipeline"
	"github.com/jonathan/docforge/internal/provider"
	"github.com/jonathan/docforge/internal/registry"
	"github.com/jonathan/docforge/internal/schemas"
	"github.com/jonathan/docforge/internal/types"
)

const testAPIKey = "test-key"

func newTestServer(t *testing.T) *Server {
	t.Helper()

	path := schemas.ResolveSchemaPath(registry.DefaultPath)
	require.NotEmpty(t, path)
	reg, err := registry.Load(path)
	require.NoError(t, err)

	keys := &config.APIKeyConfig{BcryptCost: 10}
	hash, err := keys.HashKey(testAPIKey)
	require.NoError(t, err)

	return &Server{
		pipe:       pipeline.New(reg),
		provider:   provider.NewStaticProvider(nil),
		jwtService: NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1}),
		apiKeys:    keys,
		apiKeyHash: hash,
	}
}

func doJSON(t *testing.T, s *Server, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func fileTreeSignals() *types.ElementSignals {
	return &types.ElementSignals{
		Name:     "FileTree",
		Kind:     "function",
		FilePath: "src/components/FileTree.tsx",
		Imports:  []string{"react"},
		Exports:  []string{"FileTree"},
		Metadata: types.Metadata{
			HasInteractiveMarkup: true,
			StateVariables:       []string{"expanded", "selectedPath"},
			EventHandlers:        []string{"onClick"},
			Props:                []types.Prop{{Name: "onSelect"}},
		},
	}
}

func TestHandleHealth_NoAuthRequired(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleToken_ValidKey(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/token", tokenRequest{APIKey: testAPIKey}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)

	claims, err := s.jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, claims.ClientID)
}

func TestHandleToken_InvalidKey(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/token", tokenRequest{APIKey: "wrong"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleToken_MissingKey(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/auth/token", tokenRequest{}, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_RequiresCredentials(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate", generateRequest{Element: "FileTree"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleGenerate_WithAPIKeyAndInlineSignals(t *testing.T) {
	s := newTestServer(t)
	req := generateRequest{Element: "FileTree", Signals: fileTreeSignals()}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate", req, map[string]string{"X-API-Key": testAPIKey})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Success     bool     `json:"success"`
		ElementName string   `json:"element_name"`
		ModulesUsed []string `json:"modules_used"`
		Validation  *struct {
			Verdict string `json:"verdict"`
		} `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "FileTree", resp.ElementName)
	assert.NotEmpty(t, resp.ModulesUsed)
	require.NotNil(t, resp.Validation)
	assert.Equal(t, "PASS", resp.Validation.Verdict)
}

func TestHandleGenerate_WithBearerToken(t *testing.T) {
	s := newTestServer(t)
	token, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	req := generateRequest{Element: "FileTree", Signals: fileTreeSignals()}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate", req, map[string]string{"Authorization": "Bearer " + token})

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandleGenerate_StrictRejectsSkeleton(t *testing.T) {
	s := newTestServer(t)
	req := generateRequest{Element: "MysteryWidget"}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate?strict=true", req, map[string]string{"X-API-Key": testAPIKey})

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "rejected in strict mode")
}

func TestHandleGenerate_MissingElement(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate", generateRequest{}, map[string]string{"X-API-Key": testAPIKey})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGenerate_InvalidAPIKey(t *testing.T) {
	s := newTestServer(t)
	req := generateRequest{Element: "FileTree"}
	rec := doJSON(t, s, http.MethodPost, "/api/v1/generate", req, map[string]string{"X-API-Key": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleListModules(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/v1/registry/modules", nil, map[string]string{"X-API-Key": testAPIKey})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Modules []moduleInfo `json:"modules"`
		Count   int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Modules), resp.Count)
	require.NotEmpty(t, resp.Modules)

	// Universal modules come first, in declaration order.
	assert.Equal(t, "architecture", resp.Modules[0].ID)
	assert.Equal(t, "universal", resp.Modules[0].Kind)
}

func TestHandleListRuns_NoDatabase(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/v1/runs", nil, map[string]string{"X-API-Key": testAPIKey})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleGetRun_NoDatabase(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/api/v1/runs/"+uuid.NewString(), nil, map[string]string{"X-API-Key": testAPIKey})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
