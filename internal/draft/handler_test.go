package draft

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest() (*MockCustomerRepo, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	customers := new(MockCustomerRepo)
	sched := &fakeSchedule{}
	bookings := &fakeBooking{}
	handler := NewHandler(NewService(store, customers, sched, bookings, 10*time.Minute))

	router := gin.New()
	router.POST("/api/drafts", handler.Create)
	router.GET("/api/drafts/:id", handler.Get)
	router.PATCH("/api/drafts/:id", handler.Update)
	router.PUT("/api/drafts/:id/slot", handler.SelectSlot)
	router.POST("/api/drafts/:id/submit", handler.Submit)

	return customers, router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestDraftLifecycleOverHTTP(t *testing.T) {
	customers, router := setupHandlerTest()
	customers.On("FindByPhone", mock.Anything, mock.Anything).Return(nil, nil)

	w := doJSON(router, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created DraftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 0, created.Completion)
	id := created.Draft.ID

	w = doJSON(router, http.MethodPatch, "/api/drafts/"+id, gin.H{
		"version": 1,
		"name":    "홍길동",
		"phone":   "010-1234-5678",
		"step":    2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated DraftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, StepGolfProfile, updated.Draft.Step)
	assert.Equal(t, 50, updated.Completion)
}

func TestDraftUpdateStaleVersionConflict(t *testing.T) {
	customers, router := setupHandlerTest()
	customers.On("FindByPhone", mock.Anything, mock.Anything).Return(nil, nil)

	w := doJSON(router, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created DraftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := created.Draft.ID

	w = doJSON(router, http.MethodPatch, "/api/drafts/"+id, gin.H{
		"version": 1, "name": "홍길동", "phone": "01012345678",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPatch, "/api/drafts/"+id, gin.H{
		"version": 1, "name": "다른이름",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDraftStepAdvanceWithoutNameRejected(t *testing.T) {
	_, router := setupHandlerTest()

	w := doJSON(router, http.MethodPost, "/api/drafts", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created DraftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(router, http.MethodPatch, "/api/drafts/"+created.Draft.ID, gin.H{
		"version": 1, "step": 2,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name and phone are required")
}

func TestDraftGetMissing(t *testing.T) {
	_, router := setupHandlerTest()

	w := doJSON(router, http.MethodGet, "/api/drafts/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
