// Package apitest is an in-memory stand-in for the community backend. Tests
// use it through Start; `communityboard serve-fake` serves it for demos.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"communityboard/internal/model"
)

// Route names accepted by Fail and counted by Calls.
const (
	RouteStats         = "GET /admin/stats"
	RouteAnnouncements = "GET /announcements"
	RoutePost          = "POST /announcements"
	RouteGetProfile    = "GET /user/profile/{id}"
	RouteUpdateProfile = "PUT /user/profile/{id}"
)

type failure struct {
	status  int
	message string
}

// Backend implements the API routes over in-memory data. Safe for
// concurrent use.
type Backend struct {
	mu            sync.Mutex
	stats         model.AdminStats
	announcements []model.Announcement
	profiles      map[string]model.ProfileRecord
	failures      map[string]failure
	calls         map[string]int
	lastUpdate    map[string]json.RawMessage
	now           func() time.Time
	logger        *zap.Logger

	mux *http.ServeMux
}

// NewBackend returns an empty backend.
func NewBackend(logger *zap.Logger) *Backend {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Backend{
		profiles:   make(map[string]model.ProfileRecord),
		failures:   make(map[string]failure),
		calls:      make(map[string]int),
		lastUpdate: make(map[string]json.RawMessage),
		now:        time.Now,
		logger:     logger,
		mux:        http.NewServeMux(),
	}
	b.mux.HandleFunc(RouteStats, b.handleStats)
	b.mux.HandleFunc(RouteAnnouncements, b.handleListAnnouncements)
	b.mux.HandleFunc(RoutePost, b.handlePostAnnouncement)
	b.mux.HandleFunc(RouteGetProfile, b.handleGetProfile)
	b.mux.HandleFunc(RouteUpdateProfile, b.handleUpdateProfile)
	return b
}

// Start serves b on a test server closed at the end of the test.
func Start(tb testing.TB, b *Backend) *httptest.Server {
	tb.Helper()
	srv := httptest.NewServer(b)
	tb.Cleanup(srv.Close)
	return srv
}

// ServeHTTP implements http.Handler with request logging.
func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	b.mux.ServeHTTP(w, r)
	b.logger.Info("request completed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", r.Header.Get("X-Request-ID")),
		zap.Duration("duration", time.Since(start)))
}

// SetStats sets the men/women/children counts; Total is derived.
func (b *Backend) SetStats(men, women, children int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats = model.AdminStats{Men: men, Women: women, Children: children, Total: men + women + children}
}

// AddAnnouncement stores an announcement and returns it with id and time set.
func (b *Backend) AddAnnouncement(title, content string) model.Announcement {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(title, content)
}

func (b *Backend) addLocked(title, content string) model.Announcement {
	a := model.Announcement{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: b.now().UTC(),
	}
	// Newest first, as the backend sorts by createdAt descending.
	b.announcements = append([]model.Announcement{a}, b.announcements...)
	return a
}

// Announcements returns a copy of the stored announcements.
func (b *Backend) Announcements() []model.Announcement {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]model.Announcement(nil), b.announcements...)
}

// SetProfile stores the profile for user id.
func (b *Backend) SetProfile(id string, rec model.ProfileRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profiles[id] = rec
}

// Profile returns the stored profile for user id.
func (b *Backend) Profile(id string) (model.ProfileRecord, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.profiles[id]
	return rec, ok
}

// LastUpdateBody returns the raw JSON of the last PUT for user id.
func (b *Backend) LastUpdateBody(id string) json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastUpdate[id]
}

// Fail makes route answer with status and {"error": message} until cleared
// with status 0.
func (b *Backend) Fail(route string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if status == 0 {
		delete(b.failures, route)
		return
	}
	b.failures[route] = failure{status: status, message: message}
}

// Calls returns how many requests route has received.
func (b *Backend) Calls(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[route]
}

// TotalCalls returns the number of requests across all routes.
func (b *Backend) TotalCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		n += c
	}
	return n
}

// enter counts the call and reports an injected failure, if any.
func (b *Backend) enter(w http.ResponseWriter, route string) bool {
	b.mu.Lock()
	b.calls[route]++
	f, failing := b.failures[route]
	b.mu.Unlock()
	if failing {
		writeError(w, f.status, f.message)
		return false
	}
	return true
}

func (b *Backend) handleStats(w http.ResponseWriter, r *http.Request) {
	if !b.enter(w, RouteStats) {
		return
	}
	b.mu.Lock()
	stats := b.stats
	stats.Timestamp = b.now().UTC()
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

func (b *Backend) handleListAnnouncements(w http.ResponseWriter, r *http.Request) {
	if !b.enter(w, RouteAnnouncements) {
		return
	}
	writeJSON(w, http.StatusOK, b.Announcements())
}

func (b *Backend) handlePostAnnouncement(w http.ResponseWriter, r *http.Request) {
	if !b.enter(w, RoutePost) {
		return
	}
	var in model.NewAnnouncement
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	b.mu.Lock()
	created := b.addLocked(in.Title, in.Content)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, created)
}

func (b *Backend) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	if !b.enter(w, RouteGetProfile) {
		return
	}
	rec, ok := b.Profile(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (b *Backend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if !b.enter(w, RouteUpdateProfile) {
		return
	}
	id := r.PathValue("id")
	if _, ok := b.Profile(id); !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	var rec model.ProfileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile")
		return
	}
	if strings.TrimSpace(rec.Email) != "" && !strings.Contains(rec.Email, "@") {
		writeError(w, http.StatusBadRequest, "Invalid email address")
		return
	}
	b.mu.Lock()
	b.profiles[id] = rec
	b.lastUpdate[id] = raw
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
