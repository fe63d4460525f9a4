package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/diogo/bharatgpt/internal/chat"
	apierrors "github.com/diogo/bharatgpt/internal/errors"
	"github.com/diogo/bharatgpt/internal/logger"
)

// errRateLimited is returned by Session.Begin when the limiter has no token
var errRateLimited = errors.New("rate limit exceeded")

// SessionCookie names the cookie holding the session ID
const SessionCookie = "bharatgpt_session"

// Session is one browser's conversation
type Session struct {
	ID      string
	Ctrl    *chat.Controller
	limiter *rate.Limiter

	// submit serializes the busy check, the limiter and Ctrl.Begin
	submit sync.Mutex

	mu       sync.Mutex
	lastSeen time.Time
}

// Allow reports whether the session may ask another question now
func (s *Session) Allow() bool {
	return s.limiter.Allow()
}

// Begin accepts input on the session's controller. A token is spent only
// for a question that is accepted: blank input returns ErrEmptyInput and a
// pending answer returns ErrBusy without touching the limiter.
func (s *Session) Begin(input string) (chat.Request, error) {
	s.submit.Lock()
	defer s.submit.Unlock()

	if strings.TrimSpace(input) == "" {
		return chat.Request{}, apierrors.ErrEmptyInput
	}
	if s.Ctrl.Loading() {
		return chat.Request{}, apierrors.ErrBusy
	}
	if !s.Allow() {
		logger.WarnCF("web", "Rate limit exceeded", map[string]interface{}{"session": s.ID})
		return chat.Request{}, errRateLimited
	}
	return s.Ctrl.Begin(input)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionManager keeps sessions in memory and expires idle ones
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	limit    rate.Limit
	burst    int
	factory  func(id string) *chat.Controller
	now      func() time.Time
}

// NewSessionManager creates a manager whose sessions use controllers from
// factory. perMinute questions are allowed per session with the given
// burst; perMinute <= 0 disables the limit.
func NewSessionManager(ttl time.Duration, perMinute, burst int, factory func(id string) *chat.Controller) *SessionManager {
	limit := rate.Inf
	if perMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(perMinute))
	}
	if burst < 1 {
		burst = 1
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		limit:    limit,
		burst:    burst,
		factory:  factory,
		now:      time.Now,
	}
}

// Get returns the live session with id
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if ok {
		sess.touch(m.now())
	}
	return sess, ok
}

// Create starts a new session with a random ID
func (m *SessionManager) Create() *Session {
	id := uuid.NewString()
	sess := &Session{
		ID:       id,
		Ctrl:     m.factory(id),
		limiter:  rate.NewLimiter(m.limit, m.burst),
		lastSeen: m.now(),
	}

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	logger.DebugCF("web", "Session created", map[string]interface{}{"session": id})
	return sess
}

// Len returns the number of live sessions
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Cleanup removes sessions idle for longer than the TTL. Sessions waiting
// for an answer are kept.
func (m *SessionManager) Cleanup() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, sess := range m.sessions {
		if sess.idleSince().Before(cutoff) && !sess.Ctrl.Loading() {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.DebugCF("web", "Expired sessions removed", map[string]interface{}{
			"removed":   removed,
			"remaining": len(m.sessions),
		})
	}
	return removed
}

// StartCleanup runs Cleanup every interval until ctx is done
func (m *SessionManager) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Cleanup()
			}
		}
	}()
}

// Wait blocks until no session has a background completion running
func (m *SessionManager) Wait() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Ctrl.Wait()
	}
}

type sessionKey struct{}

// sessionFromContext returns the session attached by the middleware
func sessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey{}).(*Session)
	return sess
}

// sessionMiddleware attaches the caller's session, creating one and
// setting the cookie when the request carries no valid session.
func (m *SessionManager) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *Session
		if c, err := r.Cookie(SessionCookie); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sess, _ = m.Get(c.Value)
			}
		}

		if sess == nil {
			sess = m.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				MaxAge:   int(m.ttl.Seconds()),
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}
