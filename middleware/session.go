package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/courtside/badminton-league/models"
	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionCookieName — кука с подписанным токеном сессии.
const SessionCookieName = "session"

const sessionTTL = 7 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session token")

// SessionManager issues and verifies the signed session cookie.
type SessionManager struct {
	secret []byte
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret)}
}

// Issue signs the session claims into a compact JWT.
func (m *SessionManager) Issue(session models.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": session.Username,
		"role":     string(session.Role),
		"access":   string(session.Access),
		"iat":      now.Unix(),
		"exp":      now.Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies the token and reconstructs the session.
func (m *SessionManager) Parse(tokenString string) (models.Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Session{}, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Session{}, ErrInvalidSession
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	access, _ := claims["access"].(string)
	if username == "" {
		return models.Session{}, ErrInvalidSession
	}

	session := models.Session{
		Username: username,
		Role:     models.UserRole(role),
		Access:   models.AccessLevel(access),
	}
	if session.Role != models.RoleAdmin {
		session.Role = models.RoleUser
	}
	if !session.Access.Valid() {
		session.Access = models.AccessRead
	}
	return session, nil
}

// Cookie wraps a signed token into the session cookie.
func (m *SessionManager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Authenticate parses the session cookie and stores the session in the
// request context. Requests without a valid cookie get 401.
func (m *SessionManager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		session, err := m.Parse(cookie.Value)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireScore admits sessions that may enter scores (score, write, admin).
func RequireScore(next http.Handler) http.Handler {
	return requireFunc(next, func(s models.Session) bool { return s.CanScore() })
}

// RequireWrite admits sessions that may change tournament setup.
func RequireWrite(next http.Handler) http.Handler {
	return requireFunc(next, func(s models.Session) bool { return s.CanWrite() })
}

// RequireAdmin admits only the admin account.
func RequireAdmin(next http.Handler) http.Handler {
	return requireFunc(next, func(s models.Session) bool { return s.Role == models.RoleAdmin })
}

func requireFunc(next http.Handler, allowed func(models.Session) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := SessionFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !allowed(session) {
			writeAuthError(w, http.StatusForbidden, "insufficient access level")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func SessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(models.Session)
	return session, ok
}

// ContextWithSession is used by handlers that authenticate outside the
// middleware chain (websocket upgrades) and by tests.
func ContextWithSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
