// Package api wires the core solver packages behind HTTP, following
// the shape of LuKev-tm_server/internal/api/replay.go: one Handler
// struct holding its collaborators, a RegisterRoutes method mounting a
// mux subrouter, and one method per route decoding a small JSON
// request body and encoding a JSON response.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lukev/hanabisolve/internal/analyzer"
	"github.com/lukev/hanabisolve/internal/batch"
	"github.com/lukev/hanabisolve/internal/bisect"
	"github.com/lukev/hanabisolve/internal/game"
	"github.com/lukev/hanabisolve/internal/instance"
	"github.com/lukev/hanabisolve/internal/live"
	"github.com/lukev/hanabisolve/internal/notation"
	"github.com/lukev/hanabisolve/internal/sat"
	"github.com/lukev/hanabisolve/internal/store"
)

// Handler bundles the collaborators every route needs: a persistence
// boundary for recorded games/verdicts and a websocket hub for batch
// progress.
type Handler struct {
	store store.Store
	hub   *live.Hub
}

// NewHandler builds a Handler. hub may be nil if the caller never
// intends to mount the websocket progress route.
func NewHandler(st store.Store, hub *live.Hub) *Handler {
	return &Handler{store: st, hub: hub}
}

// RegisterRoutes mounts every /api/* route this package exposes.
func (h *Handler) RegisterRoutes(router *mux.Router) {
	s := router.PathPrefix("/api").Subrouter()
	s.HandleFunc("/analyze", h.handleAnalyze).Methods("POST")
	s.HandleFunc("/solve", h.handleSolve).Methods("POST")
	s.HandleFunc("/bisect", h.handleBisect).Methods("POST")
	s.HandleFunc("/batch/start", h.handleBatchStart).Methods("POST")

	if h.hub != nil {
		router.HandleFunc("/ws/batch/{runId}", func(w http.ResponseWriter, r *http.Request) {
			live.ServeProgress(h.hub, mux.Vars(r)["runId"], w, r)
		})
	}
}

type deckRequest struct {
	NumPlayers int    `json:"numPlayers"`
	Deck       string `json:"deck"`
}

func (req deckRequest) instance() (*instance.Instance, error) {
	deck, err := notation.DecompressDeck(req.Deck)
	if err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}
	return instance.New(deck, req.NumPlayers)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("api: encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type reasonDTO struct {
	Kind     string `json:"kind"`
	Position int    `json:"position,omitempty"`
	Suit     int    `json:"suit,omitempty"`
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	inst, err := req.instance()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reasons := analyzer.Analyze(inst, true)
	dtos := make([]reasonDTO, len(reasons))
	for i, reason := range reasons {
		dtos[i] = reasonDTO{Kind: reason.Kind.String(), Position: reason.Position, Suit: reason.Suit}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reasons": dtos})
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req deckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	inst, err := req.instance()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	won, result := sat.SolveInstance(inst)
	resp := map[string]interface{}{"winnable": won}
	if won {
		actionsStr, err := notation.CompressActions(result.Actions)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp["actions"] = actionsStr
		resp["score"] = result.Score()
	}
	writeJSON(w, http.StatusOK, resp)
}

type bisectRequest struct {
	GameID string `json:"gameId"`
}

func (h *Handler) handleBisect(w http.ResponseWriter, r *http.Request) {
	var req bisectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := h.store.LoadGameRecord(req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	inst, err := instance.New(rec.Deck, rec.NumPlayers)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	replayed := game.New(inst)
	for _, a := range rec.Actions {
		if err := replayed.MakeAction(a); err != nil {
			writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("recorded replay is not legal: %w", err))
			return
		}
	}

	res, err := bisect.Check(inst, rec.Actions, replayed.Score())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	if err := h.store.SaveVerdict(store.Verdict{
		GameID:       req.GameID,
		Winnable:     res.LastWinnable > 0,
		LastWinnable: res.LastWinnable,
	}); err != nil {
		log.Printf("api: failed to save verdict for %s: %v", req.GameID, err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"lastWinnable": res.LastWinnable})
}

type batchJobRequest struct {
	ID         string `json:"id"`
	NumPlayers int    `json:"numPlayers"`
	Deck       string `json:"deck"`
}

type batchStartRequest struct {
	RunID          string            `json:"runId"`
	Jobs           []batchJobRequest `json:"jobs"`
	TimeoutSeconds int               `json:"timeoutSeconds"`
}

func (h *Handler) handleBatchStart(w http.ResponseWriter, r *http.Request) {
	var req batchStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.RunID == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing runId"))
		return
	}

	jobs := make([]batch.Job, 0, len(req.Jobs))
	for _, j := range req.Jobs {
		deck, err := notation.DecompressDeck(j.Deck)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("job %s: %w", j.ID, err))
			return
		}
		inst, err := instance.New(deck, j.NumPlayers)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("job %s: %w", j.ID, err))
			return
		}
		jobs = append(jobs, batch.Job{ID: j.ID, Inst: inst})
	}

	timeout := batch.DefaultTimeout
	if req.TimeoutSeconds > 0 {
		timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}

	runner := batch.NewRunner(timeout, 4)
	if h.hub != nil {
		runner.OnProgress = live.NewBatchProgressFunc(h.hub, req.RunID)
	}

	go func() {
		results := runner.Run(context.Background(), jobs)
		log.Printf("api: batch run %s finished, %d jobs", req.RunID, len(results))
		if h.hub != nil {
			live.FinishRun(h.hub, req.RunID, results)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]interface{}{"runId": req.RunID, "jobCount": len(jobs)})
}
