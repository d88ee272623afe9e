package ticket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitfield/lendintake/pkg/models"
)

func newTestClient(baseURL string) *HTTPClient {
	c := NewHTTPClient(Config{
		Organization:        "contoso",
		Project:             "intake",
		PersonalAccessToken: "pat-secret",
		AreaPath:            "intake\\requests",
	}, 5*time.Second)
	c.baseURL = baseURL
	c.now = func() time.Time { return time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC) }
	return c
}

func TestCreateWorkItem(t *testing.T) {
	var gotPatch []patchOp
	var gotContentType, gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, "/_apis/wit/workitems/$User Story")
		gotContentType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPatch))

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(WorkItem{ID: 4821, URL: "https://dev.azure.com/contoso/_workitems/4821"})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	item, err := client.CreateWorkItem(context.Background(), models.FormData{
		Title:             "Update DTI overlay",
		Description:       "Change the max DTI\nfor jumbo <loans>",
		SoftwarePlatforms: []string{"Blend", "Byte"},
		ImpactedAreas:     []string{"Underwriting"},
		Channels:          []string{"Retail"},
	})
	require.NoError(t, err)
	assert.Equal(t, 4821, item.ID)

	assert.Equal(t, "application/json-patch+json", gotContentType)
	assert.Contains(t, gotAuth, "Basic ")

	fields := map[string]string{}
	for _, op := range gotPatch {
		assert.Equal(t, "add", op.Op)
		fields[op.Path] = op.Value
	}
	assert.Equal(t, "Update DTI overlay", fields["/fields/System.Title"])
	assert.Equal(t, "intake\\requests", fields["/fields/System.AreaPath"])
	assert.Equal(t, "Intake; AI-Submitted; Blend; Underwriting", fields["/fields/System.Tags"])

	desc := fields["/fields/System.Description"]
	assert.Contains(t, desc, "Change the max DTI<br>for jumbo &lt;loans&gt;")
	assert.Contains(t, desc, "<li>Blend</li>")
	assert.Contains(t, desc, "<h3>Impacted Areas</h3>")
	assert.Contains(t, desc, "<h3>Channels</h3>")
}

func TestCreateWorkItemRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateWorkItem(context.Background(), models.FormData{Title: "t", Description: "d"})
	assert.ErrorIs(t, err, ErrTicketRejected)
}

func TestCreateWorkItemUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)

	_, err := client.CreateWorkItem(context.Background(), models.FormData{Title: "t", Description: "d"})
	assert.ErrorIs(t, err, ErrTicketUnreachable)
}

func TestTestConnection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "/_apis/projects")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	assert.NoError(t, client.TestConnection(context.Background()))
}

func TestBuildTagsWithoutSelections(t *testing.T) {
	assert.Equal(t, "Intake; AI-Submitted", buildTags(models.FormData{}))
}
