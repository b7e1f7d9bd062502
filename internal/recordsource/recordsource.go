// Package recordsource implements one concrete adapter behind
// spec.md's "external collaborator" ingestion boundary: scraping a
// hanab.live game export page into a store.GameRecord.
//
// Grounded on LuKev-tm_server/internal/notation/html_parser.go's
// goquery Find/Each scraping shape, retargeted from Terra Mystica's
// BGA log markup onto hanab.live's embedded JSON export (the page
// conceptually described by original_source/hanab_live.py's
// HanabLiveInstance/HanabLiveGameState, which this module's instance
// and game packages already generalize).
package recordsource

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lukev/hanabisolve/internal/card"
	"github.com/lukev/hanabisolve/internal/store"
)

type jsonCard struct {
	SuitIndex int `json:"suitIndex"`
	Rank      int `json:"rank"`
}

type jsonAction struct {
	Type   int  `json:"type"`
	Target int  `json:"target"`
	Value  *int `json:"value"`
}

type jsonGame struct {
	ID         string       `json:"id"`
	NumPlayers int          `json:"numPlayers"`
	Deck       []jsonCard   `json:"deck"`
	Actions    []jsonAction `json:"actions"`
	VariantID  int          `json:"variantID"`
}

// ParseHanabLiveHTML scrapes a hanab.live game export page (one
// embedding the game's deck/actions as JSON inside
// `#game-json`) into a GameRecord.
func ParseHanabLiveHTML(htmlContent string) (*store.GameRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("recordsource: failed to parse HTML: %w", err)
	}

	sel := doc.Find("#game-json")
	if sel.Length() == 0 {
		return nil, fmt.Errorf("recordsource: no #game-json element found in page")
	}
	raw := strings.TrimSpace(sel.Text())
	if raw == "" {
		return nil, fmt.Errorf("recordsource: #game-json element was empty")
	}

	var g jsonGame
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		return nil, fmt.Errorf("recordsource: invalid game JSON: %w", err)
	}
	if len(g.Deck) == 0 {
		return nil, fmt.Errorf("recordsource: game JSON has no deck")
	}

	deck := make(card.Deck, len(g.Deck))
	for i, c := range g.Deck {
		deck[i] = card.Card{Suit: c.SuitIndex, Rank: c.Rank}
	}
	deck = deck.Indexed()

	actions := make([]card.Action, len(g.Actions))
	for i, a := range g.Actions {
		actions[i] = card.Action{Type: card.ActionType(a.Type), Target: a.Target, Value: a.Value}
	}

	return &store.GameRecord{
		ID:         g.ID,
		NumPlayers: g.NumPlayers,
		Deck:       deck,
		Actions:    actions,
		VariantID:  g.VariantID,
	}, nil
}
