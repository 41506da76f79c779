package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	auth "github.com/deedlab/deedtrainer/internal/auth/middleware"
	"github.com/deedlab/deedtrainer/internal/rbac"
)

type userInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string   `json:"token"`
	User  userInfo `json:"user"`
}

func validRole(role string) bool {
	switch role {
	case rbac.RoleTrainee, rbac.RoleTrainer, rbac.RoleAdmin:
		return true
	}
	return false
}

// POST /api/auth/signup {"username","password","role"}
func SignupHandler(db *sql.DB, authSvc *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req.Username = strings.TrimSpace(req.Username)
		if req.Username == "" || req.Password == "" {
			http.Error(w, "username & password required", http.StatusBadRequest)
			return
		}
		if req.Role == "" {
			req.Role = rbac.RoleTrainee
		}
		if !validRole(req.Role) {
			http.Error(w, "unknown role", http.StatusBadRequest)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		u := userInfo{ID: uuid.NewString(), Username: req.Username, Role: req.Role}
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO users (id,username,password_hash,role,created_at) VALUES ($1,$2,$3,$4,$5)`,
			u.ID, u.Username, string(hash), u.Role, time.Now().Unix())
		if err != nil {
			if isUniqueViolation(err) {
				http.Error(w, "username taken", http.StatusConflict)
				return
			}
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		issueAndRespond(w, authSvc, u)
	}
}

// POST /api/auth/login {"username","password"}
func LoginHandler(db *sql.DB, authSvc *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		var u userInfo
		var hash string
		err := db.QueryRowContext(r.Context(),
			`SELECT id,username,password_hash,role FROM users WHERE username=$1`, req.Username).
			Scan(&u.ID, &u.Username, &hash, &u.Role)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		issueAndRespond(w, authSvc, u)
	}
}

// POST /api/auth/logout
func LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     auth.TokenCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, map[string]bool{"ok": true})
	}
}

// GET /api/auth/me (behind JWTMiddleware)
func MeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := rbac.SubjectFromContext(r.Context())
		var u userInfo
		err := db.QueryRowContext(r.Context(),
			`SELECT id,username,role FROM users WHERE id=$1`, sub).
			Scan(&u.ID, &u.Username, &u.Role)
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]userInfo{"user": u})
	}
}

func issueAndRespond(w http.ResponseWriter, authSvc *auth.AuthService, u userInfo) {
	tok, err := authSvc.IssueJWT(u.ID, u.Username, u.Role)
	if err != nil {
		http.Error(w, "issue token", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, authResponse{Token: tok, User: u})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || // sqlite
		strings.Contains(msg, "duplicate key") // postgres
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
