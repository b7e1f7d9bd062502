// Package sat implements the SAT feasibility encoder and decoder
// (spec.md components C6/C7): a CNF whose models are in bijection with
// winning action sequences from a given game state.
//
// Grounded on original_source/sat.py's `Literals`/`solve_sat` pysmt
// encoding, translated clause-family by clause-family onto plain CNF
// over github.com/crillab/gophersat/solver, since gophersat has no
// pysmt-style Iff/Implies/AtMostOne/integer-theory helpers: this file
// supplies the Tseitin-style gadgets (implication, biconditional,
// sequential at-most-one) the encoder needs to build its clauses by
// hand, and the unary "greater-than" chains spec.md 4.4 calls for
// stand in for pysmt's integer `Equals`/`GE` terms on clues/pace/strikes.
package sat

// builder accumulates a growing CNF over freshly allocated variables.
// Variables are 1-indexed DIMACS-style ints; a literal's sign encodes
// negation, matching the convention github.com/crillab/gophersat/solver
// expects from solver.ParseSlice.
type builder struct {
	nextVar int
	clauses [][]int

	trueVar  int
	falseVar int
}

func newBuilder() *builder {
	b := &builder{nextVar: 1}
	return b
}

// newVar allocates and returns a fresh variable.
func (b *builder) newVar() int {
	v := b.nextVar
	b.nextVar++
	return v
}

// trueLit and falseLit return a literal fixed true/false by a unit
// clause, allocating the backing variable lazily and only once.
func (b *builder) trueLit() int {
	if b.trueVar == 0 {
		b.trueVar = b.newVar()
		b.clause(b.trueVar)
	}
	return b.trueVar
}

func (b *builder) falseLit() int {
	if b.falseVar == 0 {
		b.falseVar = b.newVar()
		b.clause(-b.falseVar)
	}
	return b.falseVar
}

// constLit returns a literal with the given fixed truth value.
func (b *builder) constLit(v bool) int {
	if v {
		return b.trueLit()
	}
	return b.falseLit()
}

func (b *builder) clause(lits ...int) {
	cp := make([]int, len(lits))
	copy(cp, lits)
	b.clauses = append(b.clauses, cp)
}

func (b *builder) unit(lit int) { b.clause(lit) }

// implies asserts a → c.
func (b *builder) implies(a, c int) { b.clause(-a, c) }

// iff asserts a ↔ c.
func (b *builder) iff(a, c int) {
	b.clause(-a, c)
	b.clause(a, -c)
}

// iffAnd asserts x ↔ (lits[0] ∧ lits[1] ∧ ...).
func (b *builder) iffAnd(x int, lits ...int) {
	for _, l := range lits {
		b.clause(-x, l)
	}
	cl := make([]int, 0, len(lits)+1)
	for _, l := range lits {
		cl = append(cl, -l)
	}
	cl = append(cl, x)
	b.clause(cl...)
}

// iffOr asserts x ↔ (lits[0] ∨ lits[1] ∨ ...).
func (b *builder) iffOr(x int, lits ...int) {
	cl := make([]int, 0, len(lits)+1)
	cl = append(cl, -x)
	cl = append(cl, lits...)
	b.clause(cl...)
	for _, l := range lits {
		b.clause(-l, x)
	}
}

// atMostOne asserts that at most one of lits holds, via the standard
// sequential (ladder) encoding: O(n) clauses and n-1 auxiliary
// variables instead of the O(n^2) pairwise encoding, per spec.md 4.4's
// explicit call to avoid the quadratic blow-up.
func (b *builder) atMostOne(lits []int) {
	if len(lits) <= 1 {
		return
	}
	s := make([]int, len(lits)-1)
	for i := range s {
		s[i] = b.newVar()
	}
	b.clause(-lits[0], s[0])
	for i := 1; i < len(lits)-1; i++ {
		b.clause(-lits[i], s[i])
		b.clause(-s[i-1], s[i])
		b.clause(-lits[i], -s[i-1])
	}
	b.clause(-lits[len(lits)-1], -s[len(s)-1])
}

// exactlyOne asserts precisely one of lits holds.
func (b *builder) exactlyOne(lits []int) {
	b.clause(lits...)
	b.atMostOne(lits)
}

// wireIte asserts x ↔ (cond ∧ ifTrue) ∨ (¬cond ∧ ifFalse) against an
// already-allocated variable x, the shape every counter shift (clues,
// pace, strikes, progress, drawn-count) in the encoder boils down to.
func (b *builder) wireIte(x, cond, ifTrue, ifFalse int) {
	t1 := b.newVar()
	b.iffAnd(t1, cond, ifTrue)
	t2 := b.newVar()
	b.iffAnd(t2, -cond, ifFalse)
	b.iffOr(x, t1, t2)
}

// iteVar allocates a fresh variable wired per wireIte.
func (b *builder) iteVar(cond, ifTrue, ifFalse int) int {
	x := b.newVar()
	b.wireIte(x, cond, ifTrue, ifFalse)
	return x
}

// chainGet looks up a unary gt-chain entry at k, clamping to the
// domain's fixed boundary truth values: below lo the tracked quantity
// always exceeds k (trivially true), above hi it never does.
func (b *builder) chainGet(chain map[int]int, k, lo, hi int) int {
	if k < lo {
		return b.trueLit()
	}
	if k > hi {
		return b.falseLit()
	}
	return chain[k]
}
