package webinars

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aura-webinar/portal/internal/catalog/catalogtest"
	"github.com/aura-webinar/portal/internal/listing"
	"github.com/aura-webinar/portal/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, store *catalogtest.Memory) *gin.Engine {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	h := NewHandler(store, loc, zap.NewNop())
	h.now = func() time.Time { return time.Date(2025, time.March, 10, 12, 0, 0, 0, loc) }

	r := gin.New()
	r.GET("/api/webinars", h.List)
	r.GET("/api/webinars/:id", h.GetByID)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func sampleCatalog() *catalogtest.Memory {
	return catalogtest.NewMemory(
		models.Webinar{ID: 1, Title: "Old Recording", Category: models.CategoryAIAgents, Level: models.LevelBeginner, Date: "Jan 5, 2025", Time: "10:00 AM IST", Duration: "60 mins"},
		models.Webinar{ID: 2, Title: "On Air", Category: models.CategoryAIAgents, Level: models.LevelAdvanced, Date: "Mar 10, 2025", Time: "11:30 AM IST", Duration: "90 mins"},
		models.Webinar{ID: 3, Title: "Next Week", Description: "agents in production", Category: models.CategoryWorkshops, Level: models.LevelBeginner, Date: "Mar 17, 2025", Time: "6:00 PM", Duration: "45 mins"},
	)
}

type listBody struct {
	Data struct {
		Webinars []listing.AnnotatedWebinar `json:"webinars"`
		Featured *listing.AnnotatedWebinar  `json:"featured"`
		Total    int                        `json:"total"`
		Levels   []string                   `json:"levels"`
	} `json:"data"`
}

func TestListOrdersAndClassifies(t *testing.T) {
	w := get(newRouter(t, sampleCatalog()), "/api/webinars")
	require.Equal(t, http.StatusOK, w.Code)

	var body listBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Webinars, 3)
	assert.Equal(t, 3, body.Data.Total)

	ids := []int64{body.Data.Webinars[0].ID, body.Data.Webinars[1].ID, body.Data.Webinars[2].ID}
	assert.Equal(t, []int64{2, 3, 1}, ids)
	assert.Equal(t, listing.StatusLive, body.Data.Webinars[0].Status)
	assert.Equal(t, listing.StatusUpcoming, body.Data.Webinars[1].Status)
	assert.Equal(t, listing.StatusRecorded, body.Data.Webinars[2].Status)
	assert.Equal(t, listing.ActionWatch, body.Data.Webinars[2].Action)

	require.NotNil(t, body.Data.Featured)
	assert.Equal(t, int64(2), body.Data.Featured.ID)
	assert.Equal(t, models.Levels, body.Data.Levels)
}

func TestListFilters(t *testing.T) {
	r := newRouter(t, sampleCatalog())

	var body listBody
	w := get(r, "/api/webinars?search=AGENTS&level=Beginner")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Webinars, 1)
	assert.Equal(t, int64(3), body.Data.Webinars[0].ID)
	assert.Equal(t, int64(2), body.Data.Featured.ID, "featured ignores the filter")

	w = get(r, "/api/webinars?type=Recorded")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Webinars, 1)
	assert.Equal(t, int64(1), body.Data.Webinars[0].ID)

	assert.Equal(t, http.StatusBadRequest, get(r, "/api/webinars?type=Soon").Code)
}

func TestListStoreFailure(t *testing.T) {
	store := sampleCatalog()
	store.Err = errors.New("connection refused")
	assert.Equal(t, http.StatusBadGateway, get(newRouter(t, store), "/api/webinars").Code)
}

func TestGetByID(t *testing.T) {
	r := newRouter(t, sampleCatalog())

	w := get(r, "/api/webinars/3")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Webinar listing.AnnotatedWebinar `json:"webinar"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, listing.StatusUpcoming, body.Data.Webinar.Status)
	assert.Equal(t, "Online", body.Data.Webinar.Platform)

	assert.Equal(t, http.StatusNotFound, get(r, "/api/webinars/404").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/webinars/0").Code)
}
