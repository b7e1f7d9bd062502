// Package notation implements the base62 compression codec spec.md
// section 6 describes for sharing a deck, an action list, or a full
// replay as a short URL-safe string.
//
// Grounded byte-for-byte on original_source/compress.py: the same
// alphabet, the same min/max-range header trick (so the alphabet only
// has to cover the range of ranks or action types actually present),
// the same +1 offset on optional action values (so "no value" and
// "value 0" don't collide), and the same VoteTerminate-is-always-0
// special case.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lukev/hanabisolve/internal/card"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

func indexOf(b byte) (int, error) {
	i := strings.IndexByte(alphabet, b)
	if i < 0 {
		return 0, fmt.Errorf("notation: %q is not a base62 digit", b)
	}
	return i, nil
}

// CompressDeck encodes a deck as a 2-digit rank-range header followed
// by one base62 character per card, each character's value being
// rankRange*suit + (rank-minRank).
func CompressDeck(deck card.Deck) (string, error) {
	if len(deck) == 0 {
		return "", fmt.Errorf("notation: cannot compress an empty deck")
	}
	minRank, maxRank := deck[0].Rank, deck[0].Rank
	for _, c := range deck {
		if c.Rank < minRank {
			minRank = c.Rank
		}
		if c.Rank > maxRank {
			maxRank = c.Rank
		}
	}
	rankRange := maxRank - minRank + 1

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d%d", minRank, maxRank)
	for _, c := range deck {
		idx := rankRange*c.Suit + (c.Rank - minRank)
		if idx >= len(alphabet) {
			return "", fmt.Errorf("notation: deck too wide to encode (suit %d rank %d)", c.Suit, c.Rank)
		}
		sb.WriteByte(alphabet[idx])
	}
	return sb.String(), nil
}

// DecompressDeck is CompressDeck's inverse.
func DecompressDeck(s string) (card.Deck, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("notation: deck string too short")
	}
	minRank, err := strconv.Atoi(s[0:1])
	if err != nil {
		return nil, fmt.Errorf("notation: invalid min rank: %w", err)
	}
	maxRank, err := strconv.Atoi(s[1:2])
	if err != nil {
		return nil, fmt.Errorf("notation: invalid max rank: %w", err)
	}
	if maxRank < minRank {
		return nil, fmt.Errorf("notation: max rank %d below min rank %d", maxRank, minRank)
	}
	rankRange := maxRank - minRank + 1

	deck := make(card.Deck, 0, len(s)-2)
	for _, ch := range []byte(s[2:]) {
		idx, err := indexOf(ch)
		if err != nil {
			return nil, err
		}
		suit := idx / rankRange
		rank := idx%rankRange + minRank
		deck = append(deck, card.Card{Suit: suit, Rank: rank})
	}
	return deck.Indexed(), nil
}

// CompressActions encodes an action list as a 2-digit action-type-range
// header followed by two base62 characters per action: one folding the
// (type, value+1) pair, one for the target.
func CompressActions(actions []card.Action) (string, error) {
	minType, maxType := 0, 0
	if len(actions) > 0 {
		minType, maxType = int(actions[0].Type), int(actions[0].Type)
		for _, a := range actions {
			if int(a.Type) < minType {
				minType = int(a.Type)
			}
			if int(a.Type) > maxType {
				maxType = int(a.Type)
			}
		}
	}
	typeRange := maxType - minType + 1

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d%d", minType, maxType)
	for _, a := range actions {
		value := 0
		if a.Type == card.VoteTerminate {
			value = 0
		} else if a.Value != nil {
			value = *a.Value + 1
		}
		idx := typeRange*value + (int(a.Type) - minType)
		if idx >= len(alphabet) || a.Target >= len(alphabet) {
			return "", fmt.Errorf("notation: action value or target out of encodable range")
		}
		sb.WriteByte(alphabet[idx])
		sb.WriteByte(alphabet[a.Target])
	}
	return sb.String(), nil
}

// DecompressActions is CompressActions's inverse.
func DecompressActions(s string) ([]card.Action, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("notation: action string too short")
	}
	minType, err := strconv.Atoi(s[0:1])
	if err != nil {
		return nil, fmt.Errorf("notation: invalid min action type: %w", err)
	}
	maxType, err := strconv.Atoi(s[1:2])
	if err != nil {
		return nil, fmt.Errorf("notation: invalid max action type: %w", err)
	}
	if maxType < minType {
		return nil, fmt.Errorf("notation: max action type %d below min %d", maxType, minType)
	}
	typeRange := maxType - minType + 1

	body := s[2:]
	if len(body)%2 != 0 {
		return nil, fmt.Errorf("notation: action string has odd body length")
	}

	var out []card.Action
	for i := 0; i < len(body); i += 2 {
		av, err := indexOf(body[i])
		if err != nil {
			return nil, err
		}
		target, err := indexOf(body[i+1])
		if err != nil {
			return nil, err
		}
		actionType := card.ActionType(av%typeRange + minType)
		var value *int
		if actionType != card.Play && actionType != card.Discard {
			v := av/typeRange - 1
			if v != -1 {
				value = &v
			}
		}
		out = append(out, card.Action{Type: actionType, Target: target, Value: value})
	}
	return out, nil
}

// CompressReplay packages a player count, a deck, an action list, and a
// variant ID into the same comma-joined, dash-every-20 format hanab.live
// replay links use.
func CompressReplay(numPlayers int, deck card.Deck, actions []card.Action, variantID int) (string, error) {
	deckStr, err := CompressDeck(deck)
	if err != nil {
		return "", err
	}
	actionsStr, err := CompressActions(actions)
	if err != nil {
		return "", err
	}
	raw := fmt.Sprintf("%d%s,%s,%d", numPlayers, deckStr, actionsStr, variantID)

	var sb strings.Builder
	for i, r := range raw {
		if i > 0 && i%20 == 0 {
			sb.WriteByte('-')
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// DecompressReplay is CompressReplay's inverse.
func DecompressReplay(s string) (numPlayers int, deck card.Deck, actions []card.Action, variantID int, err error) {
	raw := strings.ReplaceAll(s, "-", "")
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return 0, nil, nil, 0, fmt.Errorf("notation: expected 3 comma-separated fields, got %d", len(parts))
	}
	if len(parts[0]) < 1 {
		return 0, nil, nil, 0, fmt.Errorf("notation: missing player count")
	}
	numPlayers, err = strconv.Atoi(parts[0][0:1])
	if err != nil {
		return 0, nil, nil, 0, fmt.Errorf("notation: invalid player count: %w", err)
	}
	deck, err = DecompressDeck(parts[0][1:])
	if err != nil {
		return 0, nil, nil, 0, err
	}
	actions, err = DecompressActions(parts[1])
	if err != nil {
		return 0, nil, nil, 0, err
	}
	variantID, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, nil, nil, 0, fmt.Errorf("notation: invalid variant id: %w", err)
	}
	return numPlayers, deck, actions, variantID, nil
}
