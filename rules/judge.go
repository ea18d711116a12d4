package rules

import "fmt"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func reject(kind RejectKind, from, to Square, format string, args ...any) *MoveError {
	return &MoveError{Kind: kind, From: from, To: to, Msg: fmt.Sprintf(format, args...)}
}

// Judge decides whether the side to move may play from -> to. A nil error means
// the move is legal and the Outcome describes it; otherwise the error is a
// *MoveError naming the first rule the move breaks. The position is never
// modified.
func (p *Position) Judge(from, to Square) (Outcome, error) {
	if !from.Valid() {
		return Invalid, reject(OutOfBounds, from, to, "from square must be between 0 and 63")
	}
	if !to.Valid() {
		return Invalid, reject(OutOfBounds, from, to, "target square must be between 0 and 63")
	}
	if from == to {
		return Invalid, reject(NullMove, from, to, "from and target square are the same")
	}
	fp, ok := p.Get(from)
	if !ok {
		return Invalid, reject(EmptySource, from, to, "selected square %s is empty", from)
	}
	if fp.Color != p.sideToMove {
		return Invalid, reject(WrongTurn, from, to, "not %s's turn", fp.Color)
	}
	tp, capture := p.Get(to)
	if capture && tp.Color == fp.Color {
		return Invalid, reject(FriendlyCapture, from, to, "cannot capture own %s", tp.Type)
	}

	var (
		out Outcome
		err *MoveError
	)
	switch fp.Type {
	case Pawn:
		out, err = p.judgePawn(fp, from, to)
	case Knight:
		out, err = judgeKnight(fp, from, to)
	case Bishop:
		out, err = p.judgeSlider(fp, from, to, true, false)
	case Rook:
		out, err = p.judgeSlider(fp, from, to, false, true)
	case Queen:
		out, err = p.judgeSlider(fp, from, to, true, true)
	case King:
		out, err = p.judgeKing(fp, from, to)
	default:
		err = reject(InvalidGeometry, from, to, "unknown piece type")
	}
	if err != nil {
		return Invalid, err
	}

	if p.exposesKing(from, to, out) {
		return Invalid, reject(ExposesOwnKing, from, to, "moving %s here will put the king in check", fp)
	}
	if capture {
		out |= Capture
	}
	return out, nil
}

// exposesKing plays the move on a value copy of the position and reports
// whether the mover's king is attacked afterwards. The copy is dropped.
func (p *Position) exposesKing(from, to Square, out Outcome) bool {
	scratch := *p
	scratch.play(from, to, out)
	return scratch.IsAttacked(p.sideToMove)
}

// ==========================
// Per-piece rules
// ==========================

// pawnHomeRow is the row a side's pawns start on.
func pawnHomeRow(c Color) int {
	if c == Light {
		return 6
	}
	return 1
}

// lastRow is the row a side's pawns promote on.
func lastRow(c Color) int {
	if c == Light {
		return 0
	}
	return 7
}

func (p *Position) judgePawn(fp Piece, from, to Square) (Outcome, *MoveError) {
	occ := p.layers[LayerAll]
	fwd := 8 * forward(fp.Color)
	delta := int(to - from)
	df := to.File() - from.File()

	var out Outcome
	switch {
	case delta == fwd:
		if occ.Has(to) {
			return Invalid, reject(BlockedPath, from, to, "%s cannot capture on square in front", fp)
		}
		out = Valid
	case delta == 2*fwd:
		if from.Row() != pawnHomeRow(fp.Color) {
			return Invalid, reject(InvalidGeometry, from, to, "%s can only move two squares on the first move", fp)
		}
		if occ.Has(from + Square(fwd)) {
			return Invalid, reject(BlockedPath, from, to, "%s cannot move through another piece", fp)
		}
		if occ.Has(to) {
			return Invalid, reject(BlockedPath, from, to, "%s cannot capture two squares in front", fp)
		}
		out = Valid | EnPassant | DoublePush
	case (delta == fwd-1 || delta == fwd+1) && abs(df) == 1:
		switch {
		case to == p.enPassant && !occ.Has(to) && p.pieces(fp.Color.Other(), Pawn).Has(to-Square(fwd)):
			out = Valid | EnPassant | Capture
		case !occ.Has(to):
			return Invalid, reject(InvalidGeometry, from, to, "%s must capture on diagonal square", fp)
		default:
			out = Valid
		}
	default:
		return Invalid, reject(InvalidGeometry, from, to, "invalid target square for %s", fp)
	}
	if to.Row() == lastRow(fp.Color) {
		out |= Promotion
	}
	return out, nil
}

func judgeKnight(fp Piece, from, to Square) (Outcome, *MoveError) {
	df := abs(to.File() - from.File())
	dr := abs(to.Row() - from.Row())
	if (df == 1 && dr == 2) || (df == 2 && dr == 1) {
		return Valid, nil
	}
	return Invalid, reject(InvalidGeometry, from, to, "invalid target square for %s", fp)
}

// between returns the squares strictly between two squares on a shared rank,
// file or diagonal. It returns Empty for unaligned squares.
func between(from, to Square) Bitboard {
	df := to.File() - from.File()
	dr := to.Row() - from.Row()
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return Empty
	}
	sf, sr := sign(df), sign(dr)
	var b Bitboard
	for f, r := from.File()+sf, from.Row()+sr; squareAt(f, r) != to; f, r = f+sf, r+sr {
		b = b.Set(squareAt(f, r))
	}
	return b
}

func (p *Position) judgeSlider(fp Piece, from, to Square, diagonal, straight bool) (Outcome, *MoveError) {
	df := to.File() - from.File()
	dr := to.Row() - from.Row()
	aligned := (diagonal && abs(df) == abs(dr)) || (straight && (df == 0) != (dr == 0))
	if !aligned {
		return Invalid, reject(InvalidGeometry, from, to, "invalid target square for %s", fp)
	}
	if between(from, to)&p.layers[LayerAll] != 0 {
		return Invalid, reject(BlockedPath, from, to, "%s cannot move through another piece", fp)
	}
	return Valid, nil
}

// kingHome is the square a side's king starts on.
func kingHome(c Color) Square {
	if c == Light {
		return E1
	}
	return E8
}

// castling describes one of the four castling moves.
type castling struct {
	right    CastleRights
	name     string
	rookFrom Square
	rookTo   Square
	transit  Square   // square the king crosses
	empty    Bitboard // squares between king and rook
}

func castlingFor(c Color, kingside bool) castling {
	base := kingHome(c) - 4
	if kingside {
		return castling{
			right:    KingSide,
			name:     "king-side",
			rookFrom: base + 7,
			rookTo:   base + 5,
			transit:  base + 5,
			empty:    FromSquares(base+5, base+6),
		}
	}
	return castling{
		right:    QueenSide,
		name:     "queen-side",
		rookFrom: base,
		rookTo:   base + 3,
		transit:  base + 3,
		empty:    FromSquares(base+1, base+2, base+3),
	}
}

func (p *Position) judgeKing(fp Piece, from, to Square) (Outcome, *MoveError) {
	df := to.File() - from.File()
	dr := to.Row() - from.Row()
	if dr == 0 && abs(df) == 2 && from == kingHome(fp.Color) {
		return p.judgeCastle(fp, from, to, castlingFor(fp.Color, df > 0))
	}
	if abs(df) > 1 || abs(dr) > 1 {
		return Invalid, reject(InvalidGeometry, from, to, "invalid target square for %s", fp)
	}
	return Valid, nil
}

func (p *Position) judgeCastle(fp Piece, from, to Square, cs castling) (Outcome, *MoveError) {
	enemy := fp.Color.Other()
	switch {
	case p.castle[fp.Color]&cs.right == 0:
		return Invalid, reject(MissingCastleRights, from, to, "%s does not have privileges to castle %s", fp, cs.name)
	case !p.pieces(fp.Color, Rook).Has(cs.rookFrom):
		return Invalid, reject(MissingCastleRights, from, to, "%s has no rook on %s to castle %s", fp, cs.rookFrom, cs.name)
	case p.layers[LayerAll]&cs.empty != 0:
		return Invalid, reject(CastleBlocked, from, to, "%s cannot castle through another piece", fp)
	case p.SquareAttacked(from, enemy):
		return Invalid, reject(CastleAttacked, from, to, "%s cannot castle out of check", fp)
	case p.SquareAttacked(cs.transit, enemy):
		return Invalid, reject(CastleAttacked, from, to, "%s cannot castle through an attacked square", fp)
	}
	return Valid | Castle, nil
}
