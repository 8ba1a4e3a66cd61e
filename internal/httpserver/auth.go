// internal/httpserver/auth.go
//
// Authentication for the BananaGame API.
// JWT (HS256) carried in an HttpOnly cookie or an Authorization: Bearer
// header. Passwords are bcrypt-hashed. The require-auth middleware
// verifies the token, confirms the account still exists, and injects the
// authenticated user into the request context so handlers receive an
// explicit identity instead of re-reading ambient claims.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/bananagame/go-server/internal/decoder"
	"github.com/bananagame/go-server/internal/store"
)

// authUser is placed into request context by the auth middleware.
type authUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// ctxUserKey is the context key type for storing authUser.
type ctxUserKey struct{}

// authClaims is the JWT payload: user identity plus registered claims.
type authClaims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type signupReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleSignup creates a new account, signs a JWT, and sets the cookie.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body signupReq
	if err := decoder.DecodeJSONBody(w, r, &body); err != nil {
		return
	}
	username := strings.TrimSpace(body.Username)
	fullname := strings.TrimSpace(body.Fullname)
	if err := validateSignup(username, body.Password, fullname); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, `{"error":"hash_failed"}`, http.StatusInternalServerError)
		return
	}
	u, err := s.store.CreateUser(r.Context(), username, string(hash), fullname)
	if errors.Is(err, store.ErrUsernameTaken) {
		http.Error(w, `{"error":"Username taken"}`, http.StatusConflict)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("create user")
		http.Error(w, `{"error":"create_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signJWT(u)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setAuthCookie(w, tok, exp)
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, map[string]any{"id": u.ID, "username": u.Username, "fullname": u.Fullname})
}

// handleLogin verifies credentials and sets the auth cookie.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginReq
	if err := decoder.DecodeJSONBody(w, r, &body); err != nil {
		return
	}
	u, err := s.store.GetUserByUsername(r.Context(), strings.TrimSpace(body.Username))
	if err != nil || !checkPassword(u.PasswordHash, body.Password) {
		http.Error(w, `{"error":"Invalid username or password"}`, http.StatusUnauthorized)
		return
	}
	tok, exp, err := s.signJWT(u)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setAuthCookie(w, tok, exp)
	writeJSON(w, map[string]any{"id": u.ID, "username": u.Username, "fullname": u.Fullname})
}

// handleLogout clears the auth cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearAuthCookie(w)
	writeJSON(w, map[string]bool{"ok": true})
}

// handleMe returns the authenticated account.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	me, err := currentUser(r)
	if err != nil {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	u, err := s.store.GetUser(r.Context(), me.ID)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, u)
}

// requireAuth enforces a valid JWT and injects authUser into context.
func (s *Server) requireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := s.bearerOrCookie(r)
			if tokenStr == "" {
				http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
				return
			}
			claims := &authClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(s.cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid || claims.UserID == 0 || claims.Username == "" {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			// Ensure the account still exists.
			if _, err := s.store.GetUser(r.Context(), claims.UserID); err != nil {
				http.Error(w, `{"error":"Invalid token"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), ctxUserKey{},
				&authUser{ID: claims.UserID, Username: claims.Username})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// currentUser pulls the authenticated user out of the request context.
func currentUser(r *http.Request) (*authUser, error) {
	u, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if u == nil {
		return nil, errors.New("no authenticated user")
	}
	return u, nil
}

// signJWT creates an HS256 token for the user with a fresh jti.
func (s *Server) signJWT(u *store.User) (string, time.Time, error) {
	exp := time.Now().Add(s.cfg.JWTExpiry)
	claims := &authClaims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    "bananagame",
			Subject:   u.Username,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := t.SignedString([]byte(s.cfg.JWTSecret))
	return ss, exp, err
}

// setAuthCookie writes the auth token cookie.
func (s *Server) setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := os.Getenv("APP_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode // required for cross-site contexts when Secure
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// clearAuthCookie deletes the auth token cookie.
func (s *Server) clearAuthCookie(w http.ResponseWriter) {
	secure := os.Getenv("APP_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		MaxAge:   -1,
	})
}

// bearerOrCookie extracts a token from the Authorization header or cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// validateSignup enforces basic account rules.
func validateSignup(username, password, fullname string) error {
	if len(username) < 3 || len(username) > 24 {
		return errors.New("username must be 3-24 chars")
	}
	for _, r := range username {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return errors.New("username: letters, numbers, underscore only")
		}
	}
	if len(password) < 8 || len(password) > 100 {
		return errors.New("password must be 8-100 chars")
	}
	if fullname == "" || len(fullname) > 100 {
		return errors.New("fullname must be 1-100 chars")
	}
	return nil
}
