package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/lukev/hanabisolve/internal/card"
	"github.com/lukev/hanabisolve/internal/notation"
	"github.com/lukev/hanabisolve/internal/store"
)

func newTestRouter(st store.Store) *mux.Router {
	h := NewHandler(st, nil)
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func oneSuitDeckStr(t *testing.T) string {
	t.Helper()
	deck := card.Deck{
		{Suit: 0, Rank: 1}, {Suit: 0, Rank: 2}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 5},
	}
	s, err := notation.CompressDeck(deck)
	if err != nil {
		t.Fatalf("CompressDeck: %v", err)
	}
	return s
}

func TestHandleSolveDegenerateDeckIsWinnable(t *testing.T) {
	router := newTestRouter(store.NewInMemoryStore())

	body, _ := json.Marshal(deckRequest{NumPlayers: 2, Deck: oneSuitDeckStr(t)})
	req := httptest.NewRequest("POST", "/api/solve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if won, _ := resp["winnable"].(bool); !won {
		t.Errorf("expected winnable=true, got %+v", resp)
	}
	if _, ok := resp["actions"]; !ok {
		t.Errorf("expected an actions field in a winnable response")
	}
}

func TestHandleAnalyzeRejectsMalformedDeck(t *testing.T) {
	router := newTestRouter(store.NewInMemoryStore())

	body, _ := json.Marshal(deckRequest{NumPlayers: 2, Deck: "x"})
	req := httptest.NewRequest("POST", "/api/analyze", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", rec.Code)
	}
}

func TestHandleBisectUnknownGameReturnsNotFound(t *testing.T) {
	router := newTestRouter(store.NewInMemoryStore())

	body, _ := json.Marshal(bisectRequest{GameID: "missing"})
	req := httptest.NewRequest("POST", "/api/bisect", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
}

func TestHandleBisectAlreadyWinningReplay(t *testing.T) {
	st := store.NewInMemoryStore()
	deck := card.Deck{
		{Suit: 0, Rank: 1}, {Suit: 0, Rank: 2}, {Suit: 0, Rank: 3},
		{Suit: 0, Rank: 4}, {Suit: 0, Rank: 5},
	}.Indexed()
	actions := []card.Action{
		card.NewPlay(0), card.NewPlay(1), card.NewPlay(2), card.NewPlay(3), card.NewPlay(4),
	}
	st.PutGameRecord(&store.GameRecord{ID: "g1", NumPlayers: 2, Deck: deck, Actions: actions})

	router := newTestRouter(st)
	body, _ := json.Marshal(bisectRequest{GameID: "g1"})
	req := httptest.NewRequest("POST", "/api/bisect", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if lastWinnable, _ := resp["lastWinnable"].(float64); int(lastWinnable) != len(actions)+1 {
		t.Errorf("got lastWinnable=%v, want %d", resp["lastWinnable"], len(actions)+1)
	}

	if v, ok := st.Verdict("g1"); !ok || !v.Winnable {
		t.Errorf("expected a saved winnable verdict, got %+v ok=%v", v, ok)
	}
}

func TestHandleBatchStartReturnsRunID(t *testing.T) {
	router := newTestRouter(store.NewInMemoryStore())

	body, _ := json.Marshal(batchStartRequest{
		RunID: "run-1",
		Jobs: []batchJobRequest{
			{ID: "seed-1", NumPlayers: 2, Deck: oneSuitDeckStr(t)},
		},
		TimeoutSeconds: 5,
	})
	req := httptest.NewRequest("POST", "/api/batch/start", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
}
