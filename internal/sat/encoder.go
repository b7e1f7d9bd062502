package sat

import (
	"github.com/lukev/hanabisolve/internal/game"
)

// encoding bundles the builder and the bounds the encode* helpers below
// close over, so none of them need a dozen-argument signature.
type encoding struct {
	b     *builder
	lits  *Literals
	start *game.State

	cap          int
	spendInc     int
	numStrikes   int
	numSuits     int
	deckSize     int
	progress0    int // start.Progress: cards already dealt or drawn
	fivesGive    bool

	// ownerAtBoundary[i] is the player currently holding deck index i,
	// for i that are in some hand right now; unheld, already-drawn
	// cards are permanently spent (they're in the trash).
	ownerAtBoundary map[int]int
}

// Encode builds the CNF whose satisfying models correspond exactly to
// winning continuations of start, per spec.md 4.4. It returns the raw
// clause list (solve.go hands these to solver.ParseSlice) alongside
// the Literals the decoder needs to read a model back into actions.
//
// Grounded on original_source/sat.py's Literals/solve_sat: turn m's
// player, action-type, and targeted-card variables follow the same
// shape, but every pysmt Int (clues, pace, strikes, per-suit stacks)
// is reexpressed here as a unary greater-than boolean chain, since
// gophersat has no integer theory — only propositional clauses.
func Encode(start *game.State) ([][]int, int, *Literals) {
	inst := start.Inst
	t0 := len(start.Actions)
	m := inst.MaxWinningMoves()

	lits := &Literals{
		Inst: inst,
		P:    inst.NumPlayers,
		T0:   t0,
		M:    m,

		Play:       map[int]int{},
		UseAny:     map[int]int{},
		Discard:    map[int]int{},
		Clue:       map[int]int{},
		Strike:     map[int]int{},
		DummyTurn:  map[int]int{},
		Use:        map[int]map[int]int{},
		Draw:       map[int]map[int]int{},
		CluesGt:    map[int]map[int]int{},
		PaceGt:     map[int]map[int]int{},
		StrikesGt:  map[int]map[int]int{},
		DrawnGt:    map[int]map[int]int{},
		ProgressGt: map[int]map[int]map[int]int{},
		RemainingGt: map[int]map[int]int{},
	}

	e := &encoding{
		b:     newBuilder(),
		lits:  lits,
		start: start,

		cap:        inst.ClueCap(),
		spendInc:   inst.ClueSpendIncrement(),
		numStrikes: inst.NumStrikes,
		numSuits:   inst.NumSuits(),
		deckSize:   inst.DeckSize(),
		progress0:  start.Progress,
		fivesGive:  inst.FivesGiveClue,

		ownerAtBoundary: map[int]int{},
	}
	for p, hand := range start.Hands {
		for _, c := range hand {
			e.ownerAtBoundary[c.DeckIndex] = p
		}
	}

	e.seedBoundary()
	for turn := t0; turn < m; turn++ {
		e.assertTurn(turn)
	}
	e.assertWin(t0, m)

	return e.b.clauses, e.b.nextVar - 1, lits
}

// seedBoundary fixes every counter chain's m=T0-1 entry to start's
// actual current values, so the first solved turn's shift formulas
// have somewhere to shift from.
func (e *encoding) seedBoundary() {
	b, lits, s := e.b, e.lits, e.start
	boundary := lits.T0 - 1

	lits.CluesGt[boundary] = fixedChain(b, -1, e.cap-1, s.Clues)
	lits.StrikesGt[boundary] = fixedChain(b, -1, e.numStrikes-1, s.Strikes)
	lits.PaceGt[boundary] = fixedChain(b, -1, s.Inst.InitialPace(), s.Pace)

	lits.ProgressGt[boundary] = map[int]map[int]int{}
	for suit := 0; suit < e.numSuits; suit++ {
		lits.ProgressGt[boundary][suit] = fixedChain(b, -1, 4, s.Stacks[suit])
	}

	remaining := e.deckSize - e.progress0
	hi := remaining - 1
	if hi >= -1 {
		lits.DrawnGt[boundary] = fixedChain(b, -1, hi, 0)
	}

	// RemainingGt tracks real turns left before the game is over, exactly
	// mirroring game.State.RemainingExtraTurns: it starts at P+1 and only
	// ever decrements once the draw pile is empty, per advanceTurn in
	// internal/game/state.go. Seeding it straight from the live State
	// field (rather than re-deriving "how long ago the deck emptied"
	// from the draw-count chain) avoids needing any history before T0
	// that the encoding doesn't otherwise track.
	lits.RemainingGt[boundary] = fixedChain(b, -1, lits.P, s.RemainingExtraTurns)
}

// fixedChain builds a gt-chain whose every entry is a constant,
// matching a quantity already known to equal value.
func fixedChain(b *builder, lo, hi, value int) map[int]int {
	chain := map[int]int{}
	for k := lo; k <= hi; k++ {
		chain[k] = b.constLit(value > k)
	}
	return chain
}

func (e *encoding) assertTurn(m int) {
	b, lits := e.b, e.lits
	prev := m - 1
	hi := e.deckSize - e.progress0 - 1

	// Dummy-turn tracking, per spec.md 4.4's dummy_turn[m] family: turn m
	// is a dummy turn iff no real turns remained as of the end of turn
	// m-1, i.e. RemainingGt[prev] is not > 0. This mirrors
	// original_source/sat.py's dummyturn latch (true once num_players
	// turns have elapsed since the draw pile emptied) but is expressed
	// directly over RemainingGt, the same countdown game.State itself
	// keeps, rather than a second independently-latched boolean family.
	allDrawnPrev := b.chainGet(lits.DrawnGt[prev], hi, -1, hi)
	remainingPositivePrev := b.chainGet(lits.RemainingGt[prev], 0, -1, lits.P)
	dummyTurn := b.newVar()
	b.iff(dummyTurn, -remainingPositivePrev)
	lits.DummyTurn[m] = dummyTurn

	play := b.newVar()
	lits.Play[m] = play

	useAny := b.newVar()
	lits.UseAny[m] = useAny
	// Dummy turns are pure padding: nothing can be played or discarded.
	b.implies(dummyTurn, -useAny)

	clue := b.newVar()
	lits.Clue[m] = clue
	b.iff(clue, -useAny)

	discard := b.newVar()
	lits.Discard[m] = discard
	b.iffAnd(discard, useAny, -play)

	b.implies(play, useAny)

	// Clue legality: enough clues banked to spend, unless this is a
	// dummy turn — those must clue regardless of the bank, per
	// original_source/sat.py's
	// `Implies(Not(discard_any[m]), Or(GE(clues[m-1], 1), dummyturn[m]))`.
	clueResourceOk := orOf(b, []int{b.chainGet(lits.CluesGt[prev], e.spendInc-1, -1, e.cap-1), dummyTurn})
	b.implies(clue, clueResourceOk)
	// Discard legality: not sitting at the clue cap.
	b.clause(-discard, -b.chainGet(lits.CluesGt[prev], e.cap-1, -1, e.cap-1))

	use := e.assertUse(m, prev)
	lits.Use[m] = use

	useLits := make([]int, 0, len(use))
	for _, v := range use {
		useLits = append(useLits, v)
	}
	b.iffOr(useAny, useLits...)
	b.atMostOne(useLits)

	// cardPlayable[i]: would playing deck index i right now succeed?
	var successTerms []int
	progressIncBySuit := make([][]int, e.numSuits)
	fivePlayTerms := []int{}
	for i, isUsable := range use {
		c := e.start.Inst.Deck[i]
		ok := b.newVar()
		lo := b.chainGet(lits.ProgressGt[prev][c.Suit], c.Rank-2, -1, 4)
		hiNot := b.chainGet(lits.ProgressGt[prev][c.Suit], c.Rank-1, -1, 4)
		b.iffAnd(ok, lo, -hiNot)

		term := b.newVar()
		b.iffAnd(term, isUsable, ok)
		successTerms = append(successTerms, term)
		progressIncBySuit[c.Suit] = append(progressIncBySuit[c.Suit], term)
		if c.Rank == 5 {
			fivePlayTerms = append(fivePlayTerms, term)
		}
	}
	successIfPlay := b.newVar()
	if len(successTerms) > 0 {
		b.iffOr(successIfPlay, successTerms...)
	} else {
		b.clause(-successIfPlay)
	}

	strike := b.newVar()
	lits.Strike[m] = strike
	b.iffAnd(strike, play, -successIfPlay)

	// Per-suit progress increment indicator.
	incBySuit := make([]int, e.numSuits)
	for suit := 0; suit < e.numSuits; suit++ {
		x := b.newVar()
		terms := progressIncBySuit[suit]
		if len(terms) == 0 {
			b.clause(-x)
		} else {
			and := b.newVar()
			b.iffAnd(and, play, orOf(b, terms))
			b.iff(x, and)
		}
		incBySuit[suit] = x
	}

	incrClues := b.newVar()
	if e.fivesGive && len(fivePlayTerms) > 0 {
		five := orOf(b, fivePlayTerms)
		b.iffAnd(incrClues, play, five)
	} else {
		b.clause(-incrClues)
	}

	gain := b.newVar()
	b.iffOr(gain, discard, incrClues)

	decr := b.newVar()
	b.iffOr(decr, discard, strike)

	// Clue economy: spend S on a clue, gain 1 on discard/5-play, else flat.
	next := map[int]int{}
	for k := -1; k <= e.cap-1; k++ {
		if k == -1 {
			next[k] = b.trueLit()
			continue
		}
		viaClue := b.chainGet(lits.CluesGt[prev], k+e.spendInc, -1, e.cap-1)
		viaGain := b.chainGet(lits.CluesGt[prev], k-1, -1, e.cap-1)
		flat := b.chainGet(lits.CluesGt[prev], k, -1, e.cap-1)
		inner := b.iteVar(gain, viaGain, flat)
		next[k] = b.iteVar(clue, viaClue, inner)
	}
	lits.CluesGt[m] = next

	// Pace: decreases by one on discard or a failed play.
	paceNext := map[int]int{}
	for k := -1; k <= e.start.Inst.InitialPace(); k++ {
		if k == -1 {
			paceNext[k] = b.trueLit()
			continue
		}
		via := b.chainGet(lits.PaceGt[prev], k+1, -1, e.start.Inst.InitialPace())
		flat := b.chainGet(lits.PaceGt[prev], k, -1, e.start.Inst.InitialPace())
		paceNext[k] = b.iteVar(decr, via, flat)
	}
	lits.PaceGt[m] = paceNext

	// Strikes: increase by one on a failed play.
	strikesNext := map[int]int{}
	for k := -1; k <= e.numStrikes-1; k++ {
		if k == -1 {
			strikesNext[k] = b.trueLit()
			continue
		}
		via := b.chainGet(lits.StrikesGt[prev], k-1, -1, e.numStrikes-1)
		flat := b.chainGet(lits.StrikesGt[prev], k, -1, e.numStrikes-1)
		strikesNext[k] = b.iteVar(strike, via, flat)
	}
	lits.StrikesGt[m] = strikesNext

	// Progress: increase per suit by one on a successful play of that suit.
	progNext := map[int]map[int]int{}
	for suit := 0; suit < e.numSuits; suit++ {
		chain := map[int]int{}
		for k := -1; k <= 4; k++ {
			if k == -1 {
				chain[k] = b.trueLit()
				continue
			}
			via := b.chainGet(lits.ProgressGt[prev][suit], k-1, -1, 4)
			flat := b.chainGet(lits.ProgressGt[prev][suit], k, -1, 4)
			chain[k] = b.iteVar(incBySuit[suit], via, flat)
		}
		progNext[suit] = chain
	}
	lits.ProgressGt[m] = progNext

	// Drawn count: increases by one whenever a card is actually drawn.
	drawnNext := map[int]int{}
	var drew int
	if hi >= -1 {
		exhausted := allDrawnPrev
		drew = b.newVar()
		b.iffAnd(drew, useAny, -exhausted)
		for k := -1; k <= hi; k++ {
			if k == -1 {
				drawnNext[k] = b.trueLit()
				continue
			}
			via := b.chainGet(lits.DrawnGt[prev], k-1, -1, hi)
			flat := b.chainGet(lits.DrawnGt[prev], k, -1, hi)
			drawnNext[k] = b.iteVar(drew, via, flat)
		}
	} else {
		drew = b.falseLit()
	}
	lits.DrawnGt[m] = drawnNext

	// RemainingGt: decrements by one whenever the draw pile is already
	// empty as of the end of this turn, regardless of action type
	// (clue turns decrement it too, once exhausted) — matching
	// advanceTurn's unconditional `if s.Progress == deckSize { s.RemainingExtraTurns-- }`.
	// The chain saturates at "not > 0" rather than going negative, since
	// chainGet(..., k+1, ...) for an already-exhausted count is itself
	// false, so further attempted decrements are no-ops.
	exhaustedAfter := allDrawnPrev
	if hi >= -1 {
		exhaustedAfter = b.chainGet(drawnNext, hi, -1, hi)
	}
	remainingNext := map[int]int{}
	for k := -1; k <= lits.P; k++ {
		if k == -1 {
			remainingNext[k] = b.trueLit()
			continue
		}
		via := b.chainGet(lits.RemainingGt[prev], k+1, -1, lits.P)
		flat := b.chainGet(lits.RemainingGt[prev], k, -1, lits.P)
		remainingNext[k] = b.iteVar(exhaustedAfter, via, flat)
	}
	lits.RemainingGt[m] = remainingNext

	// draw[m][i]: which not-yet-drawn deck index gets drawn this turn,
	// tied to the running drawn-count chain so draws happen strictly in
	// deck order regardless of which player triggers them.
	lits.Draw[m] = map[int]int{}
	for i := e.progress0; i < e.deckSize; i++ {
		offset := i - e.progress0
		atOffset := b.newVar()
		lo := b.chainGet(lits.DrawnGt[prev], offset-1, -1, hi)
		hiNot := b.chainGet(lits.DrawnGt[prev], offset, -1, hi)
		b.iffAnd(atOffset, lo, -hiNot)
		v := b.newVar()
		b.iffAnd(v, drew, atOffset)
		lits.Draw[m][i] = v
	}
}

// assertUse builds use[m][i] for every deck index still in play,
// implied (never forced) by whether the card is legally available to
// the acting player at turn m.
func (e *encoding) assertUse(m, prev int) map[int]int {
	b, lits := e.b, e.lits
	player := lits.player(m)
	use := map[int]int{}

	for i := 0; i < e.deckSize; i++ {
		if owner, held := e.ownerAtBoundary[i]; held {
			if owner != player {
				use[i] = b.falseLit()
				continue
			}
			v := b.newVar()
			prior := e.priorUseByPlayer(m, i)
			if prior == 0 {
				use[i] = v
			} else {
				notPrior := b.newVar()
				b.iff(notPrior, -prior)
				// v implies not-prior use; the legality side of the
				// biconditional is all we need (the solver only ever
				// benefits from setting v true when legal).
				b.implies(v, notPrior)
				use[i] = v
			}
			continue
		}
		if i < e.progress0 {
			// Already drawn before the boundary and not currently
			// held: it was already played or discarded. Gone for good.
			use[i] = b.falseLit()
			continue
		}
		// Not yet drawn: usable only after this same player draws it.
		var drawOpts []int
		for _, m0 := range lits.sameResidueTurns(m) {
			if d, ok := lits.Draw[m0][i]; ok {
				drawOpts = append(drawOpts, d)
			}
		}
		v := b.newVar()
		if len(drawOpts) == 0 {
			b.clause(-v)
			use[i] = v
			continue
		}
		drawnBySelf := orOf(b, drawOpts)
		prior := e.priorUseByPlayer(m, i)
		if prior == 0 {
			b.implies(v, drawnBySelf)
		} else {
			notPrior := b.newVar()
			b.iff(notPrior, -prior)
			legal := b.newVar()
			b.iffAnd(legal, drawnBySelf, notPrior)
			b.implies(v, legal)
		}
		use[i] = v
	}
	return use
}

// priorUseByPlayer ORs together use[m0][i] over every earlier encoded
// turn belonging to the same player as m, returning 0 (no variable) if
// there are none (i.e. m is that player's first encoded turn).
func (e *encoding) priorUseByPlayer(m, i int) int {
	var terms []int
	for _, m0 := range e.lits.sameResidueTurns(m) {
		if v, ok := e.lits.Use[m0][i]; ok {
			terms = append(terms, v)
		}
	}
	if len(terms) == 0 {
		return 0
	}
	return orOf(e.b, terms)
}

// orOf allocates a fresh variable equal to the disjunction of lits.
func orOf(b *builder, lits []int) int {
	if len(lits) == 1 {
		return lits[0]
	}
	x := b.newVar()
	b.iffOr(x, lits...)
	return x
}

// assertWin asserts that some encoded turn reaches every stack at 5
// without the strike count having hit its cap, and fixes that
// disjunction to true: this is the single clause that makes the whole
// CNF describe "a winning continuation exists" rather than "any
// continuation exists".
func (e *encoding) assertWin(t0, m int) {
	b, lits := e.b, e.lits
	var wins []int
	for turn := t0; turn < m; turn++ {
		maxed := make([]int, e.numSuits)
		for suit := 0; suit < e.numSuits; suit++ {
			maxed[suit] = lits.ProgressGt[turn][suit][4]
		}
		allMaxed := b.newVar()
		b.iffAnd(allMaxed, maxed...)

		notBombed := b.newVar()
		b.iff(notBombed, -lits.StrikesGt[turn][e.numStrikes-1])

		winAt := b.newVar()
		b.iffAnd(winAt, allMaxed, notBombed)
		wins = append(wins, winAt)
	}
	win := b.newVar()
	if len(wins) == 0 {
		b.clause(-win)
	} else {
		b.iffOr(win, wins...)
	}
	lits.Win = win
	b.unit(win)
}
