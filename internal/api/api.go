package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/gin-gonic/gin"

	"dailywords/internal/session"
	"dailywords/internal/state"
	"dailywords/internal/tasks"
)

type API struct {
	session *session.Session
	logger  *slog.Logger
}

func New(s *session.Session, logger *slog.Logger) *API {
	return &API{
		session: s,
		logger:  logger,
	}
}

// Register mounts routes under the provided group (e.g., /api).
func (a *API) Register(r *gin.RouterGroup) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/lists", a.listLists)
	r.POST("/lists", a.createList)
	r.GET("/lists/:id", a.getList)
	r.GET("/lists/:id/progress", a.listProgress)
	r.GET("/lists/:id/next", a.nextTask)
	r.GET("/tasks/today", a.todayTasks)
	r.POST("/tasks/:id/complete", a.completeTask)
	r.GET("/days/:date", a.day)
	r.GET("/calendar/:year/:month", a.calendar)
	r.GET("/overview", a.overview)
}

type wordRequest struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

type createListRequest struct {
	Title       string        `json:"title" binding:"max=200"`
	Description string        `json:"description" binding:"max=1000"`
	Words       []wordRequest `json:"words" binding:"max=5000"`
	// Batch holds pasted "word definition" lines appended after Words.
	Batch string `json:"batch"`
}

type createListResponse struct {
	List  tasks.WordList     `json:"list"`
	Tasks []tasks.ReviewTask `json:"tasks"`
}

func (a *API) createList(c *gin.Context) {
	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	in := tasks.ListInput{Title: req.Title, Description: req.Description}
	for _, w := range req.Words {
		in.Words = append(in.Words, tasks.WordInput{Word: w.Word, Definition: w.Definition, Example: w.Example})
	}
	in.Words = append(in.Words, tasks.ParseBatch(req.Batch)...)

	list, scheduled, err := a.session.CreateList(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, tasks.ErrValidation) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusCreated, createListResponse{List: list, Tasks: scheduled})
}

type listSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	WordCount   int       `json:"wordCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (a *API) listLists(c *gin.Context) {
	lists := a.session.Lists()
	out := make([]listSummary, 0, len(lists))
	for _, l := range lists {
		out = append(out, listSummary{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			WordCount:   len(l.Words),
			CreatedAt:   l.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) getList(c *gin.Context) {
	list, ok := a.session.List(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "list not found")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (a *API) listProgress(c *gin.Context) {
	p, ok := a.session.ListProgress(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, "list not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": p, "done": p.Done()})
}

func (a *API) nextTask(c *gin.Context) {
	id := c.Param("id")
	if _, ok := a.session.List(id); !ok {
		writeError(c, http.StatusNotFound, "list not found")
		return
	}
	t, ok := a.session.FirstPendingTaskForList(id)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (a *API) todayTasks(c *gin.Context) {
	snap := a.session.Snapshot()
	today := a.session.Today()
	c.JSON(http.StatusOK, mapTasks(state.TasksForToday(snap, today), snap, today))
}

// completeTask always answers 204: stale ids are a no-op, not an error.
func (a *API) completeTask(c *gin.Context) {
	a.session.CompleteTask(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

type dayResponse struct {
	Date  civil.Date     `json:"date"`
	Today bool           `json:"today"`
	Stats state.Stats    `json:"stats"`
	Tasks []taskResponse `json:"tasks"`
}

func (a *API) day(c *gin.Context) {
	date, err := civil.ParseDate(c.Param("date"))
	if err != nil {
		writeError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	snap := a.session.Snapshot()
	today := a.session.Today()
	c.JSON(http.StatusOK, dayResponse{
		Date:  date,
		Today: date == today,
		Stats: state.DayStats(snap, date, today),
		Tasks: mapTasks(state.TasksOnOrBeforeToday(snap, date, today), snap, today),
	})
}

func (a *API) calendar(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(c, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(c, http.StatusBadRequest, "invalid month")
		return
	}
	c.JSON(http.StatusOK, a.session.MonthGrid(year, time.Month(month)))
}

func (a *API) overview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"today":    a.session.Today(),
		"overview": a.session.Overview(),
	})
}

type taskResponse struct {
	tasks.ReviewTask
	ListTitle string `json:"listTitle"`
	WordCount int    `json:"wordCount"`
	Overdue   bool   `json:"overdue"`
}

func mapTasks(ts []tasks.ReviewTask, snap state.State, today civil.Date) []taskResponse {
	out := make([]taskResponse, 0, len(ts))
	for _, t := range ts {
		tr := taskResponse{ReviewTask: t, Overdue: t.IsOverdue(today)}
		if l, ok := state.FindList(snap, t.ListID); ok {
			tr.ListTitle = l.Title
			tr.WordCount = len(l.Words)
		}
		out = append(out, tr)
	}
	return out
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
