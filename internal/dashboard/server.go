package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/qepting91/reddit-video-feed/internal/domain"
	"github.com/qepting91/reddit-video-feed/internal/feed"
)

// EngineFactory builds the engine backing a new feed session
type EngineFactory func(category string) *feed.Engine

// DefaultSessionTTL is how long a session may sit idle before it is evicted
const DefaultSessionTTL = 30 * time.Minute

// session pairs an engine with its loading guard: the engine is not safe
// for overlapping fetches, so a second request while one is in flight is
// turned away instead of queued.
type session struct {
	id       uuid.UUID
	loading  sync.Mutex
	engine   *feed.Engine
	lastUsed atomic.Int64 // unix nanos
}

func (sess *session) touch(now time.Time) {
	sess.lastUsed.Store(now.UnixNano())
}

func (sess *session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, sess.lastUsed.Load()))
}

type Server struct {
	registry  *feed.Registry
	newEngine EngineFactory
	journal   chan<- domain.VideoRecord
	dataFile  string
	ttl       time.Duration
	now       func() time.Time
	log       *slog.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// NewServer builds the feed API. Sessions idle for longer than sessionTTL
// are dropped by Sweep; zero means DefaultSessionTTL.
func NewServer(registry *feed.Registry, newEngine EngineFactory, journal chan<- domain.VideoRecord, dataFile string, sessionTTL time.Duration, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &Server{
		registry:  registry,
		newEngine: newEngine,
		journal:   journal,
		dataFile:  dataFile,
		ttl:       sessionTTL,
		now:       time.Now,
		log:       logger,
		sessions:  make(map[uuid.UUID]*session),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleDashboard)
	mux.HandleFunc("GET /api/categories", s.handleCategories)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}/videos", s.handleVideos)
	mux.HandleFunc("PUT /api/sessions/{id}/category", s.handleSetCategory)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	return mux
}

// Sweep evicts sessions idle past the TTL and returns how many went.
// A session that is mid-fetch is never evicted.
func (s *Server) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) < s.ttl || !sess.loading.TryLock() {
			continue
		}
		sess.loading.Unlock()
		delete(s.sessions, id)
		evicted++
	}
	if evicted > 0 {
		s.log.Info("Idle feed sessions evicted", "evicted", evicted, "remaining", len(s.sessions))
	}
	return evicted
}

// RunSweeper calls Sweep every interval until ctx is done
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// SessionCount reports how many sessions are live
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

type categoryRequest struct {
	Category string `json:"category"`
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Category  string `json:"category"`
}

type videosResponse struct {
	Category string               `json:"category"`
	Videos   []domain.VideoRecord `json:"videos"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.registry.Categories(),
		"default":    s.registry.Default(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Category == "" {
		req.Category = s.registry.Default()
	}

	sess := &session{id: uuid.New(), engine: s.newEngine(req.Category)}
	sess.touch(s.now())
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.log.Info("Feed session created", "session", sess.id, "category", req.Category)
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: sess.id.String(), Category: req.Category})
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if !sess.loading.TryLock() {
		writeError(w, http.StatusConflict, "feed is already loading")
		return
	}
	defer sess.loading.Unlock()

	batch := sess.engine.FetchVideos(r.Context())
	s.record(batch)
	s.log.Info("Batch served", "session", sess.id, "category", sess.engine.Category(), "videos", len(batch))
	writeJSON(w, http.StatusOK, videosResponse{Category: sess.engine.Category(), Videos: batch})
}

func (s *Server) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}
	if !sess.loading.TryLock() {
		writeError(w, http.StatusConflict, "feed is already loading")
		return
	}
	defer sess.loading.Unlock()

	sess.engine.SetCategory(req.Category)
	writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.id.String(), Category: sess.engine.Category()})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return nil, false
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return nil, false
	}
	sess.touch(s.now())
	return sess, true
}

// record forwards served videos to the journal without blocking the response
func (s *Server) record(batch []domain.VideoRecord) {
	if s.journal == nil {
		return
	}
	for _, v := range batch {
		select {
		case s.journal <- v:
		default:
			s.log.Warn("Journal full, dropping record", "id", v.ID)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
