package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/zedbee/gateway-wizard/internal/document"
	"github.com/zedbee/gateway-wizard/internal/logging"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type resetPasswordRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

type configEnvelope struct {
	Data *document.Config `json:"data"`
}

// routes builds the HTTP handler tree.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", s.handleSignup)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /me", s.requireAuth(s.handleMe))
	mux.HandleFunc("POST /change-password", s.requireAuth(s.handleChangePassword))
	mux.HandleFunc("POST /reset-password", s.handleResetPassword)
	mux.HandleFunc("GET /config", s.requireAuth(s.handleGetConfig))
	mux.HandleFunc("PUT /config", s.requireAuth(s.handlePutConfig))
	mux.HandleFunc("GET /system-info", s.handleSystemInfo)
	mux.HandleFunc("GET /ws/system-info", s.handleSystemInfoStream)
	return logRequests(mux)
}

// logRequests wraps the handler tree with request/response logging.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path)
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		logging.LogHTTPResponse(r.RemoteAddr, r.Method, r.URL.Path, recorder.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requireAuth validates the bearer token and stashes the username in the
// request context.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		username, err := verifyToken(s.secret, token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := contextWithUsername(r.Context(), username)
		next(w, r.WithContext(ctx))
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	if err := s.storage.CreateUser(r.Context(), req.Username, string(hash)); err != nil {
		if errors.Is(err, ErrUserExists) {
			writeError(w, http.StatusBadRequest, "username already exists")
			return
		}
		logging.Error("Failed to create user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	logging.Info("User created", zap.String("username", req.Username))
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	hash, err := s.storage.PasswordHash(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		logging.Error("Failed to look up user", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := issueToken(s.secret, req.Username, s.now())
	if err != nil {
		logging.Error("Failed to issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	logging.Info("User logged in", zap.String("username", req.Username))
	writeJSON(w, http.StatusOK, map[string]string{
		"token":    token,
		"username": req.Username,
	})
}

// handleLogout exists for client symmetry. Sessions are stateless JWTs,
// so there is nothing to invalidate server-side; clients discard their
// token locally.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "logged out",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"username": usernameFromContext(r.Context()),
	})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	username := usernameFromContext(r.Context())

	hash, err := s.storage.PasswordHash(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "password change failed")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.CurrentPassword)) != nil {
		writeError(w, http.StatusBadRequest, "current password is incorrect")
		return
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	if err := s.storage.SetPasswordHash(r.Context(), username, string(newHash)); err != nil {
		writeError(w, http.StatusInternalServerError, "password change failed")
		return
	}

	logging.Info("Password changed", zap.String("username", username))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	if err := s.storage.SetPasswordHash(r.Context(), req.Username, string(hash)); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "password reset failed")
		return
	}

	logging.Info("Password reset", zap.String("username", req.Username))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	username := usernameFromContext(r.Context())

	cfg, err := s.storage.LoadConfigDocument(r.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNoConfig) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		logging.Error("Failed to load configuration", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load configuration")
		return
	}
	writeJSON(w, http.StatusOK, configEnvelope{Data: cfg})
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var envelope configEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil || envelope.Data == nil {
		writeError(w, http.StatusBadRequest, "malformed configuration document")
		return
	}
	username := usernameFromContext(r.Context())

	if err := s.storage.SaveConfig(r.Context(), username, *envelope.Data); err != nil {
		logging.Error("Failed to save configuration", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save configuration")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.sysinfo())
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Debug("Failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
