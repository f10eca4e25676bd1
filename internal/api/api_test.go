package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailywords/internal/session"
	"dailywords/internal/state"
	"dailywords/internal/store"
	"dailywords/internal/tasks"
)

type memPersister struct{ payload []byte }

func (m *memPersister) Load(context.Context) ([]byte, error) {
	if m.payload == nil {
		return nil, store.ErrNotFound
	}
	return m.payload, nil
}

func (m *memPersister) Save(_ context.Context, p []byte) error {
	m.payload = p
	return nil
}

type testServer struct {
	router http.Handler
	now    time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ts := &testServer{now: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := session.Open(context.Background(), &memPersister{}, session.Options{
		Location: time.UTC,
		Now:      func() time.Time { return ts.now },
		Logger:   logger,
	})
	require.NoError(t, err)
	ts.router = NewRouter(New(s, logger), logger)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (ts *testServer) createList(t *testing.T, body createListRequest) createListResponse {
	t.Helper()
	w := ts.do(t, http.MethodPost, "/api/lists", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[createListResponse](t, w)
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(t, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCreateList(t *testing.T) {
	ts := newTestServer(t)
	got := ts.createList(t, createListRequest{
		Title: "TOEFL",
		Words: []wordRequest{{Word: "abate", Definition: "lessen"}},
		Batch: "Apple 苹果\nBanana",
	})

	require.Len(t, got.List.Words, 3)
	assert.Equal(t, "abate", got.List.Words[0].Word)
	assert.Equal(t, "苹果", got.List.Words[1].Definition)
	assert.Equal(t, tasks.DefaultDefinition, got.List.Words[2].Definition)
	require.Len(t, got.Tasks, 7)
	assert.Equal(t, "2024-01-01", got.Tasks[0].ScheduledDate.String())
	assert.Equal(t, tasks.Study, got.Tasks[0].Type)

	w := ts.do(t, http.MethodGet, "/api/lists", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lists := decode[[]listSummary](t, w)
	require.Len(t, lists, 2, "seed list plus the new one")
	assert.Equal(t, 3, lists[1].WordCount)

	w = ts.do(t, http.MethodGet, "/api/lists/"+got.List.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, got.List.Title, decode[tasks.WordList](t, w).Title)
}

func TestCreateListValidation(t *testing.T) {
	ts := newTestServer(t)

	for name, body := range map[string]createListRequest{
		"blank title": {Title: " ", Words: []wordRequest{{Word: "a"}}},
		"no words":    {Title: "T", Batch: "\n  \n"},
	} {
		t.Run(name, func(t *testing.T) {
			w := ts.do(t, http.MethodPost, "/api/lists", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "validation failed")
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/api/lists", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	lists := decode[[]listSummary](t, ts.do(t, http.MethodGet, "/api/lists", nil))
	assert.Len(t, lists, 1)
}

func TestCompleteAndResume(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createList(t, createListRequest{Title: "L", Words: []wordRequest{{Word: "a"}, {Word: "b"}}})
	id := created.List.ID

	w := ts.do(t, http.MethodGet, "/api/lists/"+id+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, decode[tasks.ReviewTask](t, w).Stage)

	w = ts.do(t, http.MethodPost, "/api/tasks/"+created.Tasks[0].ID+"/complete", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodPost, "/api/tasks/"+created.Tasks[0].ID+"/complete", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = ts.do(t, http.MethodPost, "/api/tasks/unknown/complete", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/api/lists/"+id+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[tasks.ReviewTask](t, w).Stage)

	for _, task := range created.Tasks[1:] {
		ts.do(t, http.MethodPost, "/api/tasks/"+task.ID+"/complete", nil)
	}
	w = ts.do(t, http.MethodGet, "/api/lists/"+id+"/next", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(t, http.MethodGet, "/api/lists/"+id+"/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)
	progress := decode[struct {
		Progress state.Progress `json:"progress"`
		Done     bool           `json:"done"`
	}](t, w)
	assert.True(t, progress.Done)
	assert.Equal(t, 7, progress.Progress.CompletedStages)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/lists/missing/next", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/lists/missing/progress", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/api/lists/missing", nil).Code)
}

func TestTodayAndDayViewsWithBacklog(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createList(t, createListRequest{Title: "L", Words: []wordRequest{{Word: "a"}}})
	for _, stage := range []int{0, 1, 3, 4} {
		ts.do(t, http.MethodPost, "/api/tasks/"+created.Tasks[stage].ID+"/complete", nil)
	}
	seed := decode[tasks.ReviewTask](t, ts.do(t, http.MethodGet, "/api/lists/"+state.SeedListID+"/next", nil))
	ts.do(t, http.MethodPost, "/api/tasks/"+seed.ID+"/complete", nil)

	ts.now = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	today := decode[[]taskResponse](t, ts.do(t, http.MethodGet, "/api/tasks/today", nil))
	require.Len(t, today, 1, "only the seed list's stage 1 review")
	assert.Equal(t, "Common Phrases", today[0].ListTitle)
	assert.False(t, today[0].Overdue)

	ts.now = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	w := ts.do(t, http.MethodGet, "/api/days/2024-01-10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	day := decode[dayResponse](t, w)
	assert.True(t, day.Today)
	// L: stage 2 (01-03); seed: stages 1..4.
	assert.Equal(t, state.Stats{PendingReview: 5}, day.Stats)
	require.Len(t, day.Tasks, 5)
	for _, task := range day.Tasks {
		assert.True(t, task.Overdue)
	}

	day = decode[dayResponse](t, ts.do(t, http.MethodGet, "/api/days/2024-01-03", nil))
	assert.False(t, day.Today)
	assert.Equal(t, 0, day.Stats.PendingReview)
	assert.Len(t, day.Tasks, 2)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/days/Jan-3", nil).Code)

	overview := decode[struct {
		Today    string         `json:"today"`
		Overview state.Overview `json:"overview"`
	}](t, ts.do(t, http.MethodGet, "/api/overview", nil))
	assert.Equal(t, "2024-01-10", overview.Today)
	assert.Equal(t, state.Overview{Review: 5}, overview.Overview)
}

func TestCalendar(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(t, http.MethodGet, "/api/calendar/2024/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cells := decode[[]state.DayCell](t, w)
	require.Len(t, cells, state.GridCells)
	assert.Equal(t, "2023-12-31", cells[0].Date.String())
	assert.True(t, cells[1].IsToday)
	assert.Equal(t, state.Stats{NewStudy: 1}, cells[1].Stats)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/calendar/2024/13", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/api/calendar/year/1", nil).Code)
}
