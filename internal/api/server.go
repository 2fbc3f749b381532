// Package api serves level generation and checking over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/circuit-repair/internal/circuit/core"
	"github.com/vovakirdan/circuit-repair/internal/circuit/levels/formats"
	"github.com/vovakirdan/circuit-repair/internal/config"
	"github.com/vovakirdan/circuit-repair/internal/storage"
)

// maxBodyBytes bounds request bodies; an 8x8 level record is a few KB.
const maxBodyBytes = 1 << 20

// Server bundles the router with the difficulty presets and optional storage.
type Server struct {
	r      *chi.Mux
	cfg    config.Config
	store  *storage.Store
	logger *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
// store may be nil, in which case the results endpoint is not mounted.
func New(cfg config.Config, store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: store, logger: logger}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	s.r.Get("/presets", s.handlePresets)
	s.r.Post("/levels", s.handleGenerate)
	s.r.Post("/levels/check", s.handleCheck)
	if store != nil {
		s.r.Get("/results/{difficulty}", s.handleResults)
	}

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets the server be mounted directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}

// ------------------------------ presets -------------------------------------

type presetRes struct {
	Name          string  `json:"name"`
	GridSize      [2]int  `json:"gridSize"`
	MovableTiles  [2]int  `json:"movableTiles"`
	Corners       [2]int  `json:"corners"`
	ScrambleRatio float64 `json:"scrambleRatio"`
	TimeLimitSecs int     `json:"timeLimitSecs,omitempty"`
	Default       bool    `json:"default,omitempty"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	def := s.cfg.Presets.Default().Name
	var out []presetRes
	for _, d := range s.cfg.Presets.All() {
		out = append(out, presetRes{
			Name:          d.Name,
			GridSize:      [2]int{d.GridSize.Min, d.GridSize.Max},
			MovableTiles:  [2]int{d.MovableTiles.Min, d.MovableTiles.Max},
			Corners:       [2]int{d.Corners.Min, d.Corners.Max},
			ScrambleRatio: d.ScrambleRatio,
			TimeLimitSecs: int(d.TimeLimit / time.Second),
			Default:       d.Name == def,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------ generate ------------------------------------

type generateReq struct {
	Difficulty string `json:"difficulty"`
	Seed       *int64 `json:"seed,omitempty"`
}

// handleGenerate builds a fresh generator per request so handlers share no
// mutable state.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json", err.Error())
			return
		}
	}

	d, err := s.cfg.Presets.Resolve(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_difficulty", err.Error())
		return
	}

	params := s.cfg.Generator
	params.Logger = s.logger.WithPrefix("generator")
	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	gen := core.NewGenerator(params, core.NewRand(seed))

	var level *core.Level
	if req.Seed != nil {
		level, err = gen.GenerateSeed(d, seed)
	} else {
		level, err = gen.Generate(d)
	}
	if err != nil {
		var vErr core.ValidationError
		switch {
		case errors.Is(err, core.ErrGenerationExhausted):
			writeError(w, http.StatusServiceUnavailable, "generation_exhausted", err.Error())
		case errors.As(err, &vErr):
			writeError(w, http.StatusUnprocessableEntity, "invalid_difficulty", err.Error())
		default:
			s.logger.Error("generate", "difficulty", d.Name, "error", err)
			writeError(w, http.StatusInternalServerError, "generation_failed", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, formats.FromLevel(level))
}

// -------------------------------- check -------------------------------------

type checkRes struct {
	ID       string          `json:"id"`
	Solved   bool            `json:"solved"`
	Unsolved int             `json:"unsolved"`
	MinMoves int             `json:"minMoves"`
	Powered  []formats.Point `json:"powered"`
	Path     []formats.Point `json:"path,omitempty"`
}

// handleCheck evaluates the record's initial orientations as the current board.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var rec formats.Record
	if err := json.NewDecoder(body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}

	level, err := rec.ToLevel()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_level", err.Error())
		return
	}

	board := level.InitialGrid()
	res := checkRes{
		ID:       level.ID,
		Solved:   core.IsConnected(board),
		Unsolved: board.Stats().Unsolved,
		MinMoves: board.MinimumMoves(),
		Powered:  []formats.Point{},
	}
	// Row-major order keeps the response stable.
	powered := core.PoweredCells(board)
	for _, t := range board.Tiles {
		if powered[t.Pos] {
			res.Powered = append(res.Powered, formats.Point{X: t.Pos.X, Y: t.Pos.Y})
		}
	}
	if path, ok := core.FindLivePath(board); ok {
		for _, c := range path {
			res.Path = append(res.Path, formats.Point{X: c.X, Y: c.Y})
		}
	}

	writeJSON(w, http.StatusOK, res)
}

// ------------------------------- results ------------------------------------

type resultRes struct {
	Player     string `json:"player,omitempty"`
	LevelID    string `json:"levelId"`
	Seed       int64  `json:"seed"`
	GridSize   int    `json:"gridSize"`
	Moves      int    `json:"moves"`
	MinMoves   int    `json:"minMoves"`
	Stars      int    `json:"stars"`
	DurationMS int64  `json:"durationMs"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	difficulty := chi.URLParam(r, "difficulty")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.store.TopResults(difficulty, limit)
	if err != nil {
		s.logger.Error("top results", "difficulty", difficulty, "error", err)
		writeError(w, http.StatusInternalServerError, "storage_failed", "")
		return
	}

	out := make([]resultRes, 0, len(entries))
	for _, e := range entries {
		rr := resultRes{
			Player:     e.Player,
			LevelID:    e.LevelID,
			Seed:       e.Seed,
			GridSize:   e.GridSize,
			Moves:      e.Moves,
			MinMoves:   e.MinMoves,
			Stars:      e.Stars,
			DurationMS: e.Duration.Milliseconds(),
		}
		if !e.CreatedAt.IsZero() {
			rr.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
		}
		out = append(out, rr)
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------- helpers ------------------------------------

type errorRes struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, errorRes{Error: code, Detail: detail})
}
