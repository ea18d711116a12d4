package rules_test

import (
	"testing"

	"chessbox/rules"
)

// at converts an algebraic square name ("e2") to a square index.
func at(name string) rules.Square {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		panic("invalid square name " + name)
	}
	file := int(name[0] - 'a')
	rank := int(name[1] - '0')
	return rules.Square((8-rank)*8 + file)
}

// piece decodes a FEN-style letter: upper case Light, lower case Dark.
func piece(ch byte) rules.Piece {
	c := rules.Light
	if ch >= 'a' {
		c = rules.Dark
		ch -= 'a' - 'A'
	}
	switch ch {
	case 'K':
		return rules.NewPiece(c, rules.King)
	case 'Q':
		return rules.NewPiece(c, rules.Queen)
	case 'R':
		return rules.NewPiece(c, rules.Rook)
	case 'B':
		return rules.NewPiece(c, rules.Bishop)
	case 'N':
		return rules.NewPiece(c, rules.Knight)
	case 'P':
		return rules.NewPiece(c, rules.Pawn)
	}
	panic("invalid piece letter " + string(ch))
}

// setup builds a position holding only the listed pieces, no castling rights
// unless opts grant them, and side to move.
func setup(t testing.TB, side rules.Color, pieces map[string]string, opts ...rules.Option) *rules.Position {
	t.Helper()
	placed := make(map[rules.Square]rules.Piece, len(pieces))
	for name, letter := range pieces {
		placed[at(name)] = piece(letter[0])
	}
	base := []rules.Option{
		rules.WithEmptyBoard(),
		rules.WithCastleRights(rules.Light, rules.NoCastle),
		rules.WithCastleRights(rules.Dark, rules.NoCastle),
		rules.WithSideToMove(side),
		rules.WithPieces(placed),
	}
	p := rules.NewPosition(append(base, opts...)...)
	if err := p.Validate(); err != nil {
		t.Fatalf("setup produced an invalid position: %v", err)
	}
	return p
}

// mustApply plays a move that is expected to be legal.
func mustApply(t testing.TB, p *rules.Position, from, to string) rules.Outcome {
	t.Helper()
	out, err := p.Apply(at(from), at(to))
	if err != nil {
		t.Fatalf("%s%s rejected: %v", from, to, err)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("position invalid after %s%s: %v", from, to, err)
	}
	return out
}
