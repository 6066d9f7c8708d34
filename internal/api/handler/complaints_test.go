package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complaintdesk/backend/internal/api/handler"
	"complaintdesk/backend/internal/cache"
	"complaintdesk/backend/internal/feed"
	"complaintdesk/backend/internal/localization"
	"complaintdesk/backend/internal/models"
)

func testLocalizer(t *testing.T) *localization.Localizer {
	t.Helper()
	localizer, err := localization.NewLocalizer("../../localization/locales")
	require.NoError(t, err)
	return localizer
}

func listComplaintsRouter(h *handler.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for RequireAuth: the middleware itself is covered in
	// auth_test.go.
	r.GET("/complaints", func(c *gin.Context) { c.Set(handler.CtxUserID, "u1") }, h.ListComplaints)
	return r
}

type listResponse struct {
	Complaints []models.Complaint `json:"complaints"`
	Retryable  bool               `json:"retryable"`
	Error      string             `json:"error"`
}

// TestListComplaints_AssignedCategoryRestriction verifies the scenario:
// the user is assigned {"תחבורה"}, the feed has תחבורה and ניקיון
// complaints, and only the former comes back.
func TestListComplaints_AssignedCategoryRestriction(t *testing.T) {
	// Arrange
	body := `[
		{"id":"c1","title":"late bus","category":"תחבורה","created_at":"2026-03-01T08:00:00Z"},
		{"id":"c2","title":"dirty yard","category":"ניקיון","created_at":"2026-03-02T08:00:00Z"}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	storageMock := new(MockStorage)
	storageMock.On("ListCategories").Return([]string{"תחבורה", "ניקיון"}, nil)
	storageMock.On("AssignedCategories", "u1").Return([]string{"תחבורה"}, nil)

	syncer := feed.NewSyncer(feed.NewClient(srv.URL), cache.NewMemoryStore(), storageMock)
	h := handler.NewHandler(storageMock, syncer, nil, nil, nil, testLocalizer(t))
	r := listComplaintsRouter(h)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/complaints", nil)
	r.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Complaints, 1)
	assert.Equal(t, "c1", resp.Complaints[0].ID)
	assert.Equal(t, "תחבורה", resp.Complaints[0].Category)
}

// TestListComplaints_ExplicitFilterAndRestrictionAreANDed verifies the UI
// category filter narrows the restricted set and cannot widen it.
func TestListComplaints_ExplicitFilterAndRestrictionAreANDed(t *testing.T) {
	// Arrange
	body := `[
		{"id":"c1","category":"תחבורה","created_at":"2026-03-01T08:00:00Z"},
		{"id":"c2","category":"ניקיון","created_at":"2026-03-02T08:00:00Z"}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	storageMock := new(MockStorage)
	storageMock.On("ListCategories").Return([]string{"תחבורה", "ניקיון"}, nil)
	storageMock.On("AssignedCategories", "u1").Return([]string{"תחבורה"}, nil)

	syncer := feed.NewSyncer(feed.NewClient(srv.URL), cache.NewMemoryStore(), storageMock)
	h := handler.NewHandler(storageMock, syncer, nil, nil, nil, testLocalizer(t))
	r := listComplaintsRouter(h)

	// Act - the filter asks for a category outside the assignment set
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/complaints?category=ניקיון", nil)
	r.ServeHTTP(w, req)

	// Assert - restriction wins
	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Complaints)
}

// TestListComplaints_FilterSurvivesVocabularyOutage verifies the explicit
// filter still applies on the trimmed raw value when the category
// vocabulary cannot be loaded.
func TestListComplaints_FilterSurvivesVocabularyOutage(t *testing.T) {
	// Arrange
	body := `[
		{"id":"c1","category":"תחבורה","created_at":"2026-03-01T08:00:00Z"},
		{"id":"c2","category":"ניקיון","created_at":"2026-03-02T08:00:00Z"}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	storageMock := new(MockStorage)
	storageMock.On("ListCategories").Return(nil, errors.New("db down"))
	storageMock.On("AssignedCategories", "u1").Return([]string{}, nil)

	syncer := feed.NewSyncer(feed.NewClient(srv.URL), cache.NewMemoryStore(), storageMock)
	h := handler.NewHandler(storageMock, syncer, nil, nil, nil, testLocalizer(t))
	r := listComplaintsRouter(h)

	// Act - padded filter value, no vocabulary to match it against
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/complaints?category="+url.QueryEscape(" תחבורה "), nil)
	r.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Complaints, 1)
	assert.Equal(t, "c1", resp.Complaints[0].ID)
}

// TestListComplaints_FeedDownNoCache verifies the retryable notice when
// the first load fails with nothing cached.
func TestListComplaints_FeedDownNoCache(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	storageMock := new(MockStorage)
	storageMock.On("ListCategories").Return([]string{}, nil).Maybe()

	syncer := feed.NewSyncer(feed.NewClient(srv.URL), cache.NewMemoryStore(), storageMock)
	syncer.ForegroundTimeout = 200 * time.Millisecond
	h := handler.NewHandler(storageMock, syncer, nil, nil, nil, testLocalizer(t))
	r := listComplaintsRouter(h)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/complaints", nil)
	r.ServeHTTP(w, req)

	// Assert
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Retryable)
	assert.NotEmpty(t, resp.Error)
}
