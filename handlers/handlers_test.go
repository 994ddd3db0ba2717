package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetysight/auth"
	"safetysight/feed"
	"safetysight/handlers"
	"safetysight/routes"
	"safetysight/store"
	"safetysight/types"
)

// fakeUploader stands in for the bucket-backed uploader. With err set every
// upload fails the way the real one does, wrapped as AttachmentUploadError.
type fakeUploader struct {
	err     error
	objects []string
}

func (f *fakeUploader) Upload(ctx context.Context, dir, filename, contentType string, r io.Reader) (string, error) {
	object := path.Join(dir, filename)
	if f.err != nil {
		return "", &store.AttachmentUploadError{Object: object, Err: f.err}
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", &store.AttachmentUploadError{Object: object, Err: err}
	}
	f.objects = append(f.objects, object)
	return "https://objects.invalid/" + object, nil
}

type testAPI struct {
	router    *gin.Engine
	jwt       *auth.JWTManager
	incidents *store.Store[*types.IncidentReport]
	missing   *store.Store[*types.MissingPersonReport]
	tasks     *store.Store[*types.Task]
	alerts    *store.Store[*types.Alert]
	lostFound *store.Store[*types.LostFoundItem]
	feed      *feed.Feed
	uploads   *fakeUploader
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := store.NewMemoryBackend()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	incidents := store.New("user-reports", types.IncidentLifecycle, backend, store.ValidateIncident)
	missing := store.New("missing-persons", types.MissingPersonLifecycle, backend, store.ValidateMissingPerson)
	lostFound := store.New("lost-found-items", types.LostFoundLifecycle, backend, store.ValidateLostFound)
	tasks := store.New("tasks", types.TaskLifecycle, backend, store.ValidateTask)
	alerts := store.New("alerts", types.AlertLifecycle, backend, store.ValidateAlert)
	summaryFeed := feed.New(nil, time.Second)
	uploads := &fakeUploader{}

	router := routes.SetupRouter(jwtManager, routes.Handlers{
		Auth:       handlers.NewAuthHandler(nil, jwtManager),
		Dashboard:  handlers.NewDashboardHandler(),
		Incidents:  handlers.NewIncidentHandler(incidents, uploads),
		Missing:    handlers.NewMissingPersonHandler(missing, uploads),
		LostFound:  handlers.NewLostFoundHandler(lostFound, uploads),
		Tasks:      handlers.NewTaskHandler(tasks),
		Alerts:     handlers.NewAlertHandler(alerts),
		Responders: handlers.NewResponderHandler(store.NewResponderDirectory()),
		Summaries:  handlers.NewSummaryHandler(summaryFeed),
	})

	return &testAPI{
		router:    router,
		jwt:       jwtManager,
		incidents: incidents,
		missing:   missing,
		tasks:     tasks,
		alerts:    alerts,
		lostFound: lostFound,
		feed:      summaryFeed,
		uploads:   uploads,
	}
}

func (a *testAPI) token(t *testing.T, name string, role types.Role, zone string) string {
	t.Helper()
	token, err := a.jwt.GenerateToken(&types.Identity{
		ID: "id-" + name, Name: name, Role: role, Zone: zone,
	})
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) doMultipart(t *testing.T, path, token string, fields map[string]string, fileField, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile(fileField, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte("attachment-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/api/views", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = api.do(t, http.MethodGet, "/api/views", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestViewsPerRole(t *testing.T) {
	api := newTestAPI(t)

	cases := []struct {
		role types.Role
		want []string
	}{
		{types.RoleAdmin, []string{"home", "heatmap", "predictions", "summaries", "tasks", "responders", "events"}},
		{types.RoleResponder, []string{"home", "heatmap", "predictions", "summaries", "tasks", "alerts"}},
		{types.RoleUser, []string{"home", "heatmap", "predictions", "summaries", "report", "alerts", "lost-found"}},
	}
	for _, c := range cases {
		w := api.do(t, http.MethodGet, "/api/views", api.token(t, "pat", c.role, "Zone A"), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Views []string `json:"views"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, c.want, resp.Views, "role %s", c.role)
	}
}

func TestIncidentCreateAndVisibility(t *testing.T) {
	api := newTestAPI(t)
	jordan := api.token(t, "Jordan", types.RoleUser, "")

	w := api.do(t, http.MethodPost, "/api/incidents", jordan, gin.H{
		"title":       "Broken barrier",
		"description": "Barrier down near gate 2",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.IncidentReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, types.IncidentSubmitted, created.Status)
	assert.Equal(t, "Jordan", created.ReportedBy)
	assert.Equal(t, "General", created.Category)
	assert.Equal(t, types.SeverityMedium, created.Severity)

	// The reporter sees their own report.
	w = api.do(t, http.MethodGet, "/api/incidents", jordan, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Reports []types.IncidentReport `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Reports, 1)

	// Another user sees nothing; an admin sees everything.
	sam := api.token(t, "Sam", types.RoleUser, "")
	w = api.do(t, http.MethodGet, "/api/incidents", sam, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Reports)

	admin := api.token(t, "Root", types.RoleAdmin, "")
	w = api.do(t, http.MethodGet, "/api/incidents", admin, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Reports, 1)
}

func TestIncidentCreateValidation(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "Jordan", types.RoleUser, "")

	w := api.do(t, http.MethodPost, "/api/incidents", token, gin.H{"title": "No description"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, api.incidents.Len())
}

func TestIncidentCreateWithMediaUpload(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "Jordan", types.RoleUser, "")

	w := api.doMultipart(t, "/api/incidents", token, map[string]string{
		"title":       "Spill near concession stand",
		"description": "Slippery floor, needs cones",
	}, "media", "floor.jpg")
	require.Equal(t, http.StatusCreated, w.Code)

	var created types.IncidentReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.MediaAttached)
	assert.NotEmpty(t, created.MediaURL)
	assert.Equal(t, []string{"incident-media/floor.jpg"}, api.uploads.objects)
}

func TestIncidentCreateUploadFailureWritesNothing(t *testing.T) {
	api := newTestAPI(t)
	api.uploads.err = errors.New("bucket unavailable")
	token := api.token(t, "Jordan", types.RoleUser, "")

	w := api.doMultipart(t, "/api/incidents", token, map[string]string{
		"title":       "Spill near concession stand",
		"description": "Slippery floor, needs cones",
	}, "media", "floor.jpg")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "attachment upload failed")
	assert.Equal(t, 0, api.incidents.Len(), "a failed upload must abort before any record is written")
}

func TestMissingPersonCreateUploadFailureWritesNothing(t *testing.T) {
	api := newTestAPI(t)
	api.uploads.err = errors.New("bucket unavailable")
	token := api.token(t, "Jordan", types.RoleUser, "")

	w := api.doMultipart(t, "/api/missing-persons", token, map[string]string{
		"fullName":     "Alex Doe",
		"lastLocation": "Zone C, exhibition hall",
		"contact":      "+1 (555) 0000",
	}, "photo", "alex.png")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, 0, api.missing.Len())
}

func TestIncidentStatusPermissions(t *testing.T) {
	api := newTestAPI(t)
	admin := api.token(t, "Root", types.RoleAdmin, "")

	w := api.do(t, http.MethodPost, "/api/incidents", admin, gin.H{
		"title":       "Smoke near stage",
		"description": "Visible smoke reported",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.IncidentReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/incidents/%s/status", created.ID)

	// Plain users may not move status.
	user := api.token(t, "Jordan", types.RoleUser, "")
	w = api.do(t, http.MethodPatch, path, user, gin.H{"status": "under-review"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins may, one legal step at a time.
	w = api.do(t, http.MethodPatch, path, admin, gin.H{"status": "under-review"})
	require.Equal(t, http.StatusOK, w.Code)

	// Skipping ahead is a conflict and leaves the record unchanged.
	w = api.do(t, http.MethodPatch, path, admin, gin.H{"status": "resolved"})
	assert.Equal(t, http.StatusConflict, w.Code)
	got, err := api.incidents.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, types.IncidentUnderReview, got.Status)
}

func TestTaskCreateAdminOnlyAndZoneVisibility(t *testing.T) {
	api := newTestAPI(t)
	admin := api.token(t, "Root", types.RoleAdmin, "")

	responder := api.token(t, "Mike Chen", types.RoleResponder, "Zone B")
	w := api.do(t, http.MethodPost, "/api/tasks", responder, gin.H{
		"title": "x", "description": "y", "zone": "Zone B",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = api.do(t, http.MethodPost, "/api/tasks", admin, gin.H{
		"title":       "Check the east gate",
		"description": "Report barrier state",
		"zone":        "Zone B",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = api.do(t, http.MethodPost, "/api/tasks", admin, gin.H{
		"title":       "Sweep parking",
		"description": "Evening patrol",
		"zone":        "Zone D",
		"assignedTo":  "Mike Chen",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The Zone B responder sees the Zone B task plus the one assigned to them.
	w = api.do(t, http.MethodGet, "/api/tasks", responder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Tasks []types.Task `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Tasks, 2)

	// A Zone C responder with no assignments sees neither.
	other := api.token(t, "Emma Davis", types.RoleResponder, "Zone C")
	w = api.do(t, http.MethodGet, "/api/tasks", other, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Tasks)

	// Plain users see no tasks at all.
	user := api.token(t, "Jordan", types.RoleUser, "Zone B")
	w = api.do(t, http.MethodGet, "/api/tasks", user, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed.Tasks)
}

func TestAlertZoneScopingForResponders(t *testing.T) {
	api := newTestAPI(t)
	admin := api.token(t, "Root", types.RoleAdmin, "")

	for _, zone := range []string{"Zone A", "Zone B"} {
		w := api.do(t, http.MethodPost, "/api/alerts", admin, gin.H{
			"title":       "Crowd building",
			"description": "Monitor density",
			"zone":        zone,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	responder := api.token(t, "Sarah Johnson", types.RoleResponder, "Zone A")
	w := api.do(t, http.MethodGet, "/api/alerts", responder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Alerts []types.Alert `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Alerts, 1)
	assert.Equal(t, "Zone A", listed.Alerts[0].Zone)

	// Users may not create alerts.
	user := api.token(t, "Jordan", types.RoleUser, "")
	w = api.do(t, http.MethodPost, "/api/alerts", user, gin.H{
		"title": "x", "description": "y", "zone": "Zone A",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLostFoundStatusAdminOnly(t *testing.T) {
	api := newTestAPI(t)
	user := api.token(t, "Riley", types.RoleUser, "")

	w := api.do(t, http.MethodPost, "/api/lost-found", user, gin.H{
		"type":        "lost",
		"description": "Black backpack",
		"contactName": "Riley",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created types.LostFoundItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/api/lost-found/%s/status", created.ID)

	responder := api.token(t, "Sarah Johnson", types.RoleResponder, "Zone A")
	w = api.do(t, http.MethodPatch, path, responder, gin.H{"status": "matched"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := api.token(t, "Root", types.RoleAdmin, "")
	w = api.do(t, http.MethodPatch, path, admin, gin.H{"status": "matched"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRespondersAdminOnly(t *testing.T) {
	api := newTestAPI(t)

	responder := api.token(t, "Sarah Johnson", types.RoleResponder, "Zone A")
	w := api.do(t, http.MethodGet, "/api/responders", responder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := api.token(t, "Root", types.RoleAdmin, "")
	w = api.do(t, http.MethodGet, "/api/responders", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Responders []types.Responder `json:"responders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed.Responders, 5)

	w = api.do(t, http.MethodGet, "/api/responders?zone=Zone+C", admin, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Responders, 1)
	assert.Equal(t, "Emma Davis", listed.Responders[0].Name)
}

func TestSummariesEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "Jordan", types.RoleUser, "")

	// Before any snapshot arrives the endpoint reports low severity.
	w := api.do(t, http.MethodGet, "/api/summaries/current", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var empty struct {
		Summary  *types.AISummary `json:"summary"`
		Severity string           `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &empty))
	assert.Nil(t, empty.Summary)
	assert.Equal(t, "low", empty.Severity)

	api.feed.Push(&types.AISummary{
		Summary:  "Crowd pressure rising in Zone B",
		Insights: []string{"Severity: Medium", "Zone: Zone B"},
	})

	w = api.do(t, http.MethodGet, "/api/summaries/current", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Summary  *types.AISummary `json:"summary"`
		Severity string           `json:"severity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Summary)
	assert.Equal(t, "medium", resp.Severity)
}

func TestHeatmapAndPredictions(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "Jordan", types.RoleUser, "")

	w := api.do(t, http.MethodGet, "/api/heatmap", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var heatmap struct {
		Zones []struct {
			Zone    string `json:"zone"`
			Density int    `json:"density"`
			Level   string `json:"level"`
		} `json:"zones"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &heatmap))
	require.Len(t, heatmap.Zones, 5)
	assert.Equal(t, "Zone A", heatmap.Zones[0].Zone)
	assert.Equal(t, "high", heatmap.Zones[0].Level)

	w = api.do(t, http.MethodGet, "/api/predictions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var preds struct {
		Predictions []struct {
			Zone string `json:"zone"`
			Risk string `json:"risk"`
		} `json:"predictions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preds))
	assert.NotEmpty(t, preds.Predictions)
}
