package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mwhitfield/lendintake/internal/api/handler"
	"github.com/mwhitfield/lendintake/internal/store"
	"github.com/mwhitfield/lendintake/pkg/models"
)

// storeStub implements store.Store with overridable behavior.
type storeStub struct {
	store.Store
	createdKeys []*models.APIKey
	listKeys    []*models.APIKey
	revokeErr   error
	submissions []*models.Submission
	getSub      *models.Submission
	getSubErr   error
}

func (s *storeStub) CreateAPIKey(_ context.Context, key *models.APIKey) error {
	s.createdKeys = append(s.createdKeys, key)
	return nil
}

func (s *storeStub) ListAPIKeys(_ context.Context) ([]*models.APIKey, error) {
	return s.listKeys, nil
}

func (s *storeStub) RevokeAPIKey(_ context.Context, _ uuid.UUID) error {
	return s.revokeErr
}

func (s *storeStub) ListSubmissions(_ context.Context, _ store.SubmissionFilter) ([]*models.Submission, int, error) {
	return s.submissions, len(s.submissions), nil
}

func (s *storeStub) GetSubmission(_ context.Context, _ uuid.UUID) (*models.Submission, error) {
	return s.getSub, s.getSubErr
}

func TestCreateKey(t *testing.T) {
	st := &storeStub{}
	h := handler.NewCreateKeyHandler(st)

	w := post(t, h, "/api/v1/admin/keys", map[string]any{
		"name":   "ci-key",
		"scopes": []string{"intake", "read"},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, st.createdKeys, 1)
	stored := st.createdKeys[0]
	assert.Equal(t, "ci-key", stored.Name)
	assert.Equal(t, []string{"intake", "read"}, stored.Scopes)

	var body struct {
		Data struct {
			Key string `json:"key"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	rawKey := body.Data.Key

	assert.True(t, len(rawKey) > 8)
	assert.Equal(t, rawKey[:8], stored.KeyPrefix)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.KeyHash), []byte(rawKey)))
}

func TestCreateKey_DefaultScope(t *testing.T) {
	st := &storeStub{}
	h := handler.NewCreateKeyHandler(st)

	w := post(t, h, "/api/v1/admin/keys", map[string]any{"name": "default-scope"})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, st.createdKeys, 1)
	assert.Equal(t, []string{"intake"}, st.createdKeys[0].Scopes)
}

func TestCreateKey_UnknownScope(t *testing.T) {
	h := handler.NewCreateKeyHandler(&storeStub{})

	w := post(t, h, "/api/v1/admin/keys", map[string]any{
		"name":   "bad",
		"scopes": []string{"superuser"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateKey_RequiresName(t *testing.T) {
	h := handler.NewCreateKeyHandler(&storeStub{})

	w := post(t, h, "/api/v1/admin/keys", map[string]any{"name": ""})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListKeys(t *testing.T) {
	st := &storeStub{listKeys: []*models.APIKey{{ID: uuid.New(), Name: "existing"}}}
	h := handler.NewListKeysHandler(st)

	req := httptest.NewRequest("GET", "/api/v1/admin/keys", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "existing")
}

func TestRevokeKey(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/v1/admin/keys/{keyID}", handler.NewRevokeKeyHandler(&storeStub{}))

	req := httptest.NewRequest("DELETE", "/api/v1/admin/keys/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRevokeKey_NotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/v1/admin/keys/{keyID}", handler.NewRevokeKeyHandler(&storeStub{revokeErr: store.ErrNotFound}))

	req := httptest.NewRequest("DELETE", "/api/v1/admin/keys/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRevokeKey_BadID(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/v1/admin/keys/{keyID}", handler.NewRevokeKeyHandler(&storeStub{}))

	req := httptest.NewRequest("DELETE", "/api/v1/admin/keys/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- submissions ---

func TestListSubmissions(t *testing.T) {
	st := &storeStub{submissions: []*models.Submission{
		{ID: uuid.New(), Title: "First request", RequestType: models.RequestTypeChange},
	}}
	h := handler.NewListSubmissionsHandler(st)

	req := httptest.NewRequest("GET", "/api/v1/submissions?page=1&limit=20", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "First request")
	assert.Contains(t, w.Body.String(), `"total":1`)
}

func TestListSubmissions_InvalidRequestType(t *testing.T) {
	h := handler.NewListSubmissionsHandler(&storeStub{})

	req := httptest.NewRequest("GET", "/api/v1/submissions?requestType=bogus", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSubmission(t *testing.T) {
	id := uuid.New()
	st := &storeStub{getSub: &models.Submission{ID: id, Title: "Stored request"}}

	r := chi.NewRouter()
	r.Get("/api/v1/submissions/{submissionID}", handler.NewGetSubmissionHandler(st))

	req := httptest.NewRequest("GET", "/api/v1/submissions/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Stored request")
}

func TestGetSubmission_NotFound(t *testing.T) {
	st := &storeStub{getSubErr: store.ErrNotFound}

	r := chi.NewRouter()
	r.Get("/api/v1/submissions/{submissionID}", handler.NewGetSubmissionHandler(st))

	req := httptest.NewRequest("GET", "/api/v1/submissions/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
