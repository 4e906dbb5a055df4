package autodiff

// node is one recorded primitive operation: its primal result, its
// adjoint accumulator, and the span of its partial-derivative edges in
// the tape's edge arena.
type node struct {
	op      Op
	value   float64
	adjoint float64
	edgeOff int32
	edgeLen int32
}

// edge is one partial-derivative link from a node to an operand recorded
// earlier on the same tape.
type edge struct {
	to int32   // operand node index, always < the owning node's index
	w  float64 // local derivative with respect to that operand
}

// Tape owns one differentiation episode: an append-only arena of nodes
// recording every operation performed on its Vars, later walked backward
// to accumulate adjoints. A tape is used by one goroutine at a time;
// concurrent episodes need independent tapes.
//
// Usage:
//
//	tape := NewTape()
//	x := tape.Var(0.5)
//	y := x.Log().Neg()
//	tape.Backward(y)
//	dydx := x.Adjoint()
//	tape.Reset() // O(1), arena capacity is retained for the next episode
type Tape struct {
	nodes []node
	edges []edge
	gen   uint64 // episode token; embedded in every Var handed out
	swept bool   // a backward sweep has run this episode
}

// NewTape returns an empty tape with a small pre-sized arena.
func NewTape() *Tape {
	return NewTapeCap(256, 512)
}

// NewTapeCap returns an empty tape with arena capacity for the given
// number of nodes and edges. Sizing for the expected episode avoids
// regrowth during the first forward sweeps; afterwards Reset keeps
// whatever capacity the episodes reached.
func NewTapeCap(nodes, edges int) *Tape {
	return &Tape{
		nodes: make([]node, 0, nodes),
		edges: make([]edge, 0, edges),
	}
}

// Var registers v as an independent input and returns its handle. Leaf
// nodes receive adjoints during the backward sweep but propagate nothing
// further.
func (t *Tape) Var(v float64) Var {
	return t.push0(OpLeaf, v)
}

// Const registers the constant c. Operations consuming it record no
// partial-derivative edge to it, so nothing propagates into a constant.
func (t *Tape) Const(c float64) Var {
	return t.push0(OpConst, c)
}

// Len reports the number of recorded nodes.
func (t *Tape) Len() int { return len(t.nodes) }

// Reset discards the episode in bulk: both arenas are truncated in O(1)
// with capacity retained, and the episode token is advanced so that any
// surviving Var panics on its next use instead of reading stale nodes.
// Reset is valid at any point, including after a failed or partial
// forward sweep.
func (t *Tape) Reset() {
	t.nodes = t.nodes[:0]
	t.edges = t.edges[:0]
	t.gen++
	t.swept = false
}

// Backward runs a backward sweep from output with seed adjoint 1.
func (t *Tape) Backward(output Var) {
	t.BackwardSeed(output, 1)
}

// BackwardSeed propagates adjoints from output back to every input it
// depends on.
//
// Algorithm:
//  1. Zero all adjoints (a repeated sweep within one episode starts clean).
//  2. Set the output node's adjoint to seed.
//  3. Walk nodes from the output down in exact reverse creation order;
//     for each edge add node.adjoint * edge.weight into the operand's
//     adjoint.
//
// Reverse creation order is sufficient because every edge points to an
// earlier node: by the time a node is visited, all of its consumers have
// already contributed, so its adjoint is final before it propagates.
// Nodes that received no sensitivity are skipped; branches feeding other
// outputs do not leak 0*Inf artifacts into shared inputs.
func (t *Tape) BackwardSeed(output Var, seed float64) {
	out := t.check(output)
	for i := range t.nodes {
		t.nodes[i].adjoint = 0
	}
	t.nodes[out].adjoint = seed
	for i := out; i >= 0; i-- {
		n := &t.nodes[i]
		if n.edgeLen == 0 {
			continue
		}
		a := n.adjoint
		if a == 0 {
			continue
		}
		for _, e := range t.edges[n.edgeOff : n.edgeOff+n.edgeLen] {
			t.nodes[e.to].adjoint += a * e.w
		}
	}
	t.swept = true
}

// Record appends one primitive operation on behalf of a collaborator
// (e.g. a matrix primitive): primal is the operation's result, and
// partials[i] is its local derivative with respect to operands[i]. All
// operands are validated before anything is appended, so a precondition
// failure leaves the tape untouched. Edges to constants are elided.
func (t *Tape) Record(op Op, primal float64, operands []Var, partials []float64) Var {
	if len(operands) != len(partials) {
		panic("autodiff: Record operands and partials lengths differ")
	}
	for _, v := range operands {
		t.check(v)
	}
	off := int32(len(t.edges))
	for i, v := range operands {
		if t.nodes[v.id].op == OpConst {
			continue
		}
		t.edges = append(t.edges, edge{to: v.id, w: partials[i]})
	}
	return t.pushNode(op, primal, off)
}

// check validates a handle against this tape and episode and returns its
// node index. Misuse is an unrecoverable caller bug, so it panics.
func (t *Tape) check(v Var) int32 {
	switch {
	case v.tape == nil:
		panic("autodiff: use of zero Var")
	case v.tape != t:
		panic("autodiff: Var belongs to a different tape")
	case v.gen != t.gen:
		panic("autodiff: Var used after its tape was Reset")
	}
	return v.id
}

// push0 appends a node with no edges (leaf or constant).
func (t *Tape) push0(op Op, value float64) Var {
	return t.pushNode(op, value, int32(len(t.edges)))
}

// push1 appends a unary node. The edge is elided when the operand is a
// constant.
func (t *Tape) push1(op Op, value float64, a int32, da float64) Var {
	off := int32(len(t.edges))
	if t.nodes[a].op != OpConst {
		t.edges = append(t.edges, edge{to: a, w: da})
	}
	return t.pushNode(op, value, off)
}

// push2 appends a binary node, eliding edges to constant operands.
func (t *Tape) push2(op Op, value float64, a int32, da float64, b int32, db float64) Var {
	off := int32(len(t.edges))
	if t.nodes[a].op != OpConst {
		t.edges = append(t.edges, edge{to: a, w: da})
	}
	if t.nodes[b].op != OpConst {
		t.edges = append(t.edges, edge{to: b, w: db})
	}
	return t.pushNode(op, value, off)
}

func (t *Tape) pushNode(op Op, value float64, edgeOff int32) Var {
	id := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		op:      op,
		value:   value,
		edgeOff: edgeOff,
		edgeLen: int32(len(t.edges)) - edgeOff,
	})
	return Var{tape: t, id: id, gen: t.gen}
}
