package rules

// Apply commits from -> to if Judge accepts it and returns Judge's verdict. A
// rejected move leaves the position exactly as it was.
func (p *Position) Apply(from, to Square) (Outcome, error) {
	out, err := p.Judge(from, to)
	if err != nil {
		return out, err
	}
	mover := p.At(from)

	// The target lives for one move: set by a double push, cleared otherwise.
	if out.Has(DoublePush) {
		p.enPassant = to - Square(8*forward(mover.Color))
	} else {
		p.enPassant = NoSquare
	}

	if out.Has(Castle) {
		p.castle[mover.Color] = NoCastle
	} else {
		p.revokeCorner(from)
		p.revokeCorner(to)
		if mover.Type == King {
			p.castle[mover.Color] = NoCastle
		}
	}

	p.play(from, to, out)

	if mover.Type == Pawn || out.Has(Capture) {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	p.sideToMove = p.sideToMove.Other()
	return out, nil
}

// play relocates the pieces of a judged move: the en-passant victim, the
// castling rook and the mover, which becomes a queen on promotion. Rights, the
// en-passant target, the clock and the turn are untouched.
func (p *Position) play(from, to Square, out Outcome) {
	mover := p.At(from)
	if out.IsEnPassantCapture() {
		p.Set(to-Square(8*forward(mover.Color)), NoPiece)
	}
	if out.Has(Castle) {
		cs := castlingFor(mover.Color, to > from)
		p.move(cs.rookFrom, cs.rookTo)
	}
	p.move(from, to)
	if out.Has(Promotion) {
		p.Set(to, NewPiece(mover.Color, Queen))
	}
}

// revokeCorner drops the castling right tied to a rook's home corner when a
// move starts or ends there.
func (p *Position) revokeCorner(sq Square) {
	switch sq {
	case A1:
		p.castle[Light] &^= QueenSide
	case H1:
		p.castle[Light] &^= KingSide
	case A8:
		p.castle[Dark] &^= QueenSide
	case H8:
		p.castle[Dark] &^= KingSide
	}
}
