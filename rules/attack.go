package rules

// Step offsets in (file, row) space.
var (
	knightSteps   = [8][2]int{{-1, -2}, {1, -2}, {-2, -1}, {2, -1}, {-2, 1}, {2, 1}, {-1, 2}, {1, 2}}
	kingSteps     = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	diagonalSteps = [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	straightSteps = [4][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
)

// forward is the row step a side's pawns advance by: Light moves toward rank 8
// (row 0), Dark toward rank 1 (row 7).
func forward(c Color) int {
	if c == Light {
		return -1
	}
	return 1
}

// IsAttacked reports whether side's king is attacked. A side without a king is
// never attacked.
func (p *Position) IsAttacked(side Color) bool {
	ks := p.KingSquare(side)
	if ks == NoSquare {
		return false
	}
	return p.SquareAttacked(ks, side.Other())
}

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool { return p.IsAttacked(p.sideToMove) }

// SquareAttacked reports whether any piece of color by attacks sq.
func (p *Position) SquareAttacked(sq Square, by Color) bool {
	if !sq.Valid() {
		return false
	}
	f, r := sq.File(), sq.Row()

	for _, s := range knightSteps {
		if p.pieces(by, Knight).Has(squareAt(f+s[0], r+s[1])) {
			return true
		}
	}

	for _, s := range kingSteps {
		if p.pieces(by, King).Has(squareAt(f+s[0], r+s[1])) {
			return true
		}
	}

	// A pawn of color by attacks one row ahead of itself, so it sits one row
	// behind sq from its own point of view.
	pawns := p.pieces(by, Pawn)
	pr := r - forward(by)
	if pawns.Has(squareAt(f-1, pr)) || pawns.Has(squareAt(f+1, pr)) {
		return true
	}

	bq := p.pieces(by, Bishop) | p.pieces(by, Queen)
	for _, s := range diagonalSteps {
		if p.firstOnRay(f, r, s).And(bq) != 0 {
			return true
		}
	}
	rq := p.pieces(by, Rook) | p.pieces(by, Queen)
	for _, s := range straightSteps {
		if p.firstOnRay(f, r, s).And(rq) != 0 {
			return true
		}
	}
	return false
}

// firstOnRay walks from (f, r) in direction s and returns the first occupied
// square as a single-bit board, or Empty when the edge is reached first.
func (p *Position) firstOnRay(f, r int, s [2]int) Bitboard {
	occ := p.layers[LayerAll]
	for {
		f, r = f+s[0], r+s[1]
		sq := squareAt(f, r)
		if sq == NoSquare {
			return Empty
		}
		if occ.Has(sq) {
			return squareBB(sq)
		}
	}
}
