package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/deedlab/deedtrainer/internal/rbac"
)

// GET /api/users — all users, for trainer/admin dashboards.
func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(),
			`SELECT id,username,role FROM users ORDER BY username ASC`)
		if err != nil {
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		out := []userInfo{}
		for rows.Next() {
			var u userInfo
			if err := rows.Scan(&u.ID, &u.Username, &u.Role); err != nil {
				http.Error(w, "failed to load users", http.StatusInternalServerError)
				return
			}
			out = append(out, u)
		}
		if err := rows.Err(); err != nil {
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string][]userInfo{"users": out})
	}
}

// POST /api/users — create a user with an explicit role (trainer/admin only).
func CreateUserHandler(db *sql.DB) http.HandlerFunc {
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
		writeJSON(w, map[string]userInfo{"user": u})
	}
}
