package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/tunaaoguzhann/pow-captcha/core"
)

func newRouter(manager *core.Manager, cfg config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Handle("/static/*", staticHandler())
	r.Get("/", handleChallengePage(manager, cfg.DefaultDifficulty))
	r.Get("/challenge", handleChallengePage(manager, cfg.DefaultDifficulty))
	r.Get("/verify", handleVerifyPage(manager))

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodPost},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
		}).Handler)

		api.Post("/pow-challenge", handleChallenge(manager, cfg.DefaultDifficulty))
		api.Post("/pow-verify", handleVerify(manager))
		api.Group(func(g chi.Router) {
			if cfg.IntrospectSecret != "" {
				g.Use(jwtAuth(cfg.IntrospectSecret))
			}
			g.Post("/pow-check-token", handleCheckToken(manager, logger))
		})
	})
	return r
}

type challengeRequest struct {
	Difficulty *int `json:"difficulty"`
}

type challengeResponse struct {
	ID         string `json:"id"`
	Prefix     string `json:"prefix"`
	Difficulty int    `json:"difficulty"`
	Timestamp  int64  `json:"timestamp"`
}

func handleChallenge(manager *core.Manager, defaultDifficulty int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req challengeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		difficulty := defaultDifficulty
		if req.Difficulty != nil {
			difficulty = *req.Difficulty
		}

		c, err := manager.Issue(r.Context(), difficulty)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, challengeResponse{
			ID:         c.ID.String(),
			Prefix:     c.Prefix,
			Difficulty: c.Difficulty,
			Timestamp:  c.IssuedAt.Unix(),
		})
	}
}

// nonceParam accepts the nonce as a JSON string or a JSON number; the
// browser widget sends numbers.
type nonceParam string

func (n *nonceParam) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = nonceParam(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = nonceParam(num.String())
	return nil
}

type verifyRequest struct {
	ChallengeID string     `json:"challengeId"`
	Nonce       nonceParam `json:"nonce"`
	Hash        string     `json:"hash"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

func handleVerify(manager *core.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		res, err := manager.Verify(r.Context(), req.ChallengeID, string(req.Nonce), req.Hash)
		if err != nil {
			writeError(w, err)
			return
		}
		if res.Status != core.StatusOK {
			writeJSON(w, http.StatusOK, verifyResponse{Success: false, Message: "invalid solution"})
			return
		}
		writeJSON(w, http.StatusOK, verifyResponse{Success: true, Token: res.Token.ID.String()})
	}
}

type checkTokenRequest struct {
	Token string `json:"token"`
}

type checkTokenResponse struct {
	Status string `json:"status"`
	Valid  bool   `json:"valid"`
}

func handleCheckToken(manager *core.Manager, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		status, err := manager.Introspect(r.Context(), req.Token)
		if err != nil {
			if errors.Is(err, core.ErrStoreUnavailable) {
				logger.Warn("token check failed", "err", err)
			}
			writeError(w, err)
			return
		}
		sub, _ := r.Context().Value(subjectKey).(string)
		logger.Debug("token checked", "relying_party", sub, "status", status)
		writeJSON(w, http.StatusOK, checkTokenResponse{
			Status: string(status),
			Valid:  status == core.TokenValid,
		})
	}
}

// writeError maps protocol errors onto HTTP statuses. Unusable challenges
// all read the same so callers cannot learn which ids existed.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsChallengeUnusable(err):
		http.Error(w, core.ErrNotFound.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrInputTooLong):
		http.Error(w, core.ErrInputTooLong.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidInput):
		http.Error(w, core.ErrInvalidInput.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrDuplicateID),
		errors.Is(err, core.ErrStoreUnavailable),
		errors.Is(err, core.ErrStorePartialFailure):
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, core.ErrTokenPersist):
		http.Error(w, core.ErrTokenPersist.Error(), http.StatusInternalServerError)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
