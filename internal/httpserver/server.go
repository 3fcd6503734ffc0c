// internal/httpserver/server.go
//
// HTTP wiring for the solver backend.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", GET /words.
//   - Solving endpoints: POST /solve/new, POST /solve/guess (bearer JWT
//     carrying the server-side session id).
//   - Dictionary admin endpoints: POST /words, DELETE /words/{word}
//     (X-Admin-Password checked against a bcrypt hash).
//
// Sessions live in the in-memory store; each one owns its own
// dictionary snapshot taken at /solve/new time, so concurrent edits to
// the dictionary never disturb a running session.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pyatibukv/internal/dict"
	"github.com/robalobadob/pyatibukv/internal/session"
	"github.com/robalobadob/pyatibukv/internal/solver"
	"github.com/robalobadob/pyatibukv/internal/store"
)

// maxSuggestions caps the candidate preview returned per guess.
const maxSuggestions = 10

// Server bundles router, session store and dictionary store.
type Server struct {
	r      *chi.Mux
	store  store.Store
	dict   dict.Store
	ranker solver.Ranker
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, d dict.Store, ranker solver.Ranker) *Server {
	if ranker == nil {
		ranker = solver.FrequencyRanker{}
	}
	s := &Server{r: chi.NewRouter(), store: st, dict: d, ranker: ranker}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"pyatibukv","endpoints":["/health","POST /solve/new","POST /solve/guess","GET /words"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Post("/solve/new", s.handleNewSession)
	s.r.Post("/solve/guess", s.handleGuess)

	s.r.Get("/words", s.handleListWords)
	s.r.Post("/words", s.handleAddWord)
	s.r.Delete("/words/{word}", s.handleRemoveWord)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// jsonContentType sets a default JSON Content-Type header.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ SOLVING ------------------------------------

type newSessionReq struct {
	First string `json:"first"` // optional opening guess
}
type newSessionRes struct {
	Token      string `json:"token"`
	Suggestion string `json:"suggestion"`
	Remaining  int    `json:"remaining"`
}

// handleNewSession snapshots the dictionary into a fresh session and
// hands back a token plus the opening suggestion.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	words, err := s.dict.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load dictionary")
		http.Error(w, `{"error":"dictionary_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	if len(words) == 0 {
		http.Error(w, `{"error":"dictionary_empty"}`, http.StatusServiceUnavailable)
		return
	}

	sess := session.New(words, s.ranker)
	first, err := sess.FirstGuess(dict.Normalize(req.First))
	if err != nil {
		http.Error(w, `{"error":"no_candidates"}`, http.StatusServiceUnavailable)
		return
	}

	id, err := s.store.Save(r.Context(), sess)
	if err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	token, _, err := signSessionToken(id)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		http.Error(w, `{"error":"token_failed"}`, http.StatusInternalServerError)
		return
	}

	_ = json.NewEncoder(w).Encode(newSessionRes{
		Token:      token,
		Suggestion: first,
		Remaining:  sess.Remaining(),
	})
}

type guessReq struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"` // digits, e.g. "01020"
}
type guessRes struct {
	State      string   `json:"state"` // "solving" | "solved" | "stuck"
	Remaining  int      `json:"remaining"`
	Suggestion string   `json:"suggestion,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// handleGuess folds one round of feedback into the caller's session.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	sid, err := parseSessionToken(token)
	if err != nil {
		http.Error(w, `{"error":"invalid_token"}`, http.StatusUnauthorized)
		return
	}
	sess, err := s.store.Get(r.Context(), sid)
	if err != nil {
		http.Error(w, `{"error":"session_not_found"}`, http.StatusNotFound)
		return
	}

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	fb, err := solver.ParseFeedback(req.Feedback)
	if err != nil {
		http.Error(w, `{"error":"bad_feedback"}`, http.StatusBadRequest)
		return
	}
	guess := dict.Normalize(req.Guess)
	if !dict.IsValid(guess) {
		http.Error(w, `{"error":"bad_guess"}`, http.StatusBadRequest)
		return
	}

	if fb.AllCorrect() {
		_ = s.store.Delete(r.Context(), sid)
		_ = json.NewEncoder(w).Encode(guessRes{State: "solved", Remaining: 1, Candidates: []string{guess}})
		return
	}

	remaining, err := sess.Apply(guess, fb)
	switch {
	case errors.Is(err, solver.ErrInconsistentConstraint):
		// Recoverable: the client can resubmit corrected feedback.
		http.Error(w, `{"error":"inconsistent_feedback"}`, http.StatusConflict)
		return
	case err != nil:
		http.Error(w, `{"error":"bad_feedback"}`, http.StatusBadRequest)
		return
	}

	res := guessRes{State: "solving", Remaining: remaining}
	if remaining == 0 {
		res.State = "stuck"
	} else {
		if best, err := sess.Suggest(); err == nil {
			res.Suggestion = best
		}
		res.Candidates = sess.Candidates()
		if len(res.Candidates) > maxSuggestions {
			res.Candidates = res.Candidates[:maxSuggestions]
		}
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ---------------------------- DICTIONARY -----------------------------------

type wordsRes struct {
	Words []string `json:"words"`
	Total int      `json:"total"`
}

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	words, err := s.dict.Load(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load dictionary")
		http.Error(w, `{"error":"dictionary_unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	total := len(words)
	if limit := queryInt(r, "limit"); limit >= 0 && limit < total {
		words = words[:limit]
	}
	_ = json.NewEncoder(w).Encode(wordsRes{Words: words, Total: total})
}

type addWordReq struct {
	Word string `json:"word"`
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	if !checkAdminPassword(r.Header.Get("X-Admin-Password")) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	var req addWordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	err := s.dict.Add(r.Context(), req.Word)
	switch {
	case errors.Is(err, dict.ErrInvalidWord):
		http.Error(w, `{"error":"invalid_word"}`, http.StatusBadRequest)
	case errors.Is(err, dict.ErrWordExists):
		http.Error(w, `{"error":"word_exists"}`, http.StatusConflict)
	case err != nil:
		log.Error().Err(err).Str("word", req.Word).Msg("add word")
		http.Error(w, `{"error":"add_failed"}`, http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}
}

func (s *Server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	if !checkAdminPassword(r.Header.Get("X-Admin-Password")) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}
	word := chi.URLParam(r, "word")
	err := s.dict.Remove(r.Context(), word)
	switch {
	case errors.Is(err, dict.ErrWordNotFound):
		http.Error(w, `{"error":"word_not_found"}`, http.StatusNotFound)
	case err != nil:
		log.Error().Err(err).Str("word", word).Msg("remove word")
		http.Error(w, `{"error":"remove_failed"}`, http.StatusInternalServerError)
	default:
		_, _ = w.Write([]byte(`{"ok":true}`))
	}
}

// queryInt parses a non-negative integer query parameter; -1 when
// absent or malformed.
func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return -1
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	return n
}
