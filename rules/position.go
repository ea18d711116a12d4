// Package rules holds a chess position as occupancy bitboards and decides and
// commits single moves on it.
package rules

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// Layer indexes one of the nine occupancy bitboards of a Position.
type Layer uint8

const (
	LayerAll Layer = iota
	LayerLight
	LayerDark
	LayerKing
	LayerQueen
	LayerRook
	LayerBishop
	LayerKnight
	LayerPawn

	numLayers
)

// colorLayer returns the occupancy layer of a side.
func colorLayer(c Color) Layer { return LayerLight + Layer(c) }

// typeLayer returns the occupancy layer of a piece type.
func typeLayer(pt PieceType) Layer { return LayerKing + Layer(pt-King) }

// Position is a chess position stored as occupancy bitboards.
//
// Invariants: layers[All] == layers[Light] | layers[Dark], the two color layers are
// disjoint, and every occupied square is set in exactly one piece-type layer.
// The struct holds no pointers, so assigning it copies the whole position.
type Position struct {
	layers [numLayers]Bitboard

	// Side to move
	sideToMove Color

	// Castling rights per side (index Light, Dark)
	castle [2]CastleRights

	// Square a pawn may capture onto en passant this move, NoSquare otherwise
	enPassant Square

	// Half-moves since the last capture or pawn move; carried, never consulted
	halfmoveClock int
}

// Option overrides one field of a freshly built Position.
type Option func(*Position)

// WithSideToMove sets the side to play.
func WithSideToMove(c Color) Option { return func(p *Position) { p.sideToMove = c } }

// WithHalfmoveClock sets the halfmove clock.
func WithHalfmoveClock(n int) Option { return func(p *Position) { p.halfmoveClock = n } }

// WithEnPassant sets the en-passant target square (NoSquare for none).
func WithEnPassant(sq Square) Option { return func(p *Position) { p.enPassant = sq } }

// WithCastleRights sets one side's castling rights.
func WithCastleRights(c Color, r CastleRights) Option {
	return func(p *Position) { p.castle[c] = r & BothCastle }
}

// WithLayer replaces one occupancy layer verbatim. The caller is responsible for
// keeping the layers consistent; Validate reports violations.
func WithLayer(l Layer, b Bitboard) Option {
	return func(p *Position) {
		if l < numLayers {
			p.layers[l] = b
		}
	}
}

// WithEmptyBoard removes every piece. Castling rights are kept; combine with
// WithCastleRights to drop them.
func WithEmptyBoard() Option {
	return func(p *Position) { p.layers = [numLayers]Bitboard{} }
}

// WithPieces places pieces on top of whatever the board holds.
func WithPieces(pieces map[Square]Piece) Option {
	return func(p *Position) {
		for sq, pc := range pieces {
			p.Set(sq, pc)
		}
	}
}

// NewPosition returns the standard opening position with the options applied
// in order.
func NewPosition(opts ...Option) *Position {
	p := &Position{
		sideToMove: Light,
		castle:     [2]CastleRights{BothCastle, BothCastle},
		enPassant:  NoSquare,
	}
	p.layers[LayerAll] = FromRanks(0b11000011)
	p.layers[LayerLight] = FromRanks(0b11000000)
	p.layers[LayerDark] = FromRanks(0b00000011)
	p.layers[LayerKing] = FromSquares(E8, E1)
	p.layers[LayerQueen] = FromSquares(3, 59)
	p.layers[LayerRook] = FromQuadrant(0)
	p.layers[LayerKnight] = FromQuadrant(1)
	p.layers[LayerBishop] = FromQuadrant(2)
	p.layers[LayerPawn] = FromRanks(0b01000010)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Clone returns an independent copy of the position.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// ==========================
// Accessors
// ==========================

func (p *Position) SideToMove() Color { return p.sideToMove }
func (p *Position) CastleRights(c Color) CastleRights { return p.castle[c] }
func (p *Position) EnPassant() Square { return p.enPassant }
func (p *Position) HalfmoveClock() int { return p.halfmoveClock }
func (p *Position) Layer(l Layer) Bitboard { return p.layers[l] }
func (p *Position) Occupied() Bitboard { return p.layers[LayerAll] }
func (p *Position) ColorOccupancy(c Color) Bitboard { return p.layers[colorLayer(c)] }
func (p *Position) TypeOccupancy(pt PieceType) Bitboard { return p.layers[typeLayer(pt)] }
func (p *Position) pieces(c Color, pt PieceType) Bitboard { return p.layers[colorLayer(c)] & p.layers[typeLayer(pt)] }

// KingSquare returns the square of c's king, or NoSquare if it has none.
func (p *Position) KingSquare(c Color) Square { return p.pieces(c, King).First() }

// ==========================
// Square read/write
// ==========================

// Get returns the piece on sq. ok is false for an empty or off-board square.
func (p *Position) Get(sq Square) (pc Piece, ok bool) {
	var c Color
	switch {
	case p.layers[LayerLight].Has(sq):
		c = Light
	case p.layers[LayerDark].Has(sq):
		c = Dark
	default:
		return NoPiece, false
	}
	for _, pt := range PieceTypes {
		if p.layers[typeLayer(pt)].Has(sq) {
			return Piece{Color: c, Type: pt}, true
		}
	}
	return NoPiece, false
}

// At returns the piece on sq, or NoPiece.
func (p *Position) At(sq Square) Piece {
	pc, _ := p.Get(sq)
	return pc
}

// Set clears sq from every layer and then places pc there. NoPiece empties the
// square. Off-board squares are ignored.
func (p *Position) Set(sq Square, pc Piece) {
	if !sq.Valid() {
		return
	}
	for l := range p.layers {
		p.layers[l] = p.layers[l].Clear(sq)
	}
	if pc.IsNone() || pc.Type > Pawn || pc.Color > Dark {
		return
	}
	p.layers[LayerAll] = p.layers[LayerAll].Set(sq)
	p.layers[colorLayer(pc.Color)] = p.layers[colorLayer(pc.Color)].Set(sq)
	p.layers[typeLayer(pc.Type)] = p.layers[typeLayer(pc.Type)].Set(sq)
}

// move relocates whatever stands on from to to, replacing the occupant of to.
func (p *Position) move(from, to Square) {
	pc := p.At(from)
	p.Set(to, pc)
	p.Set(from, NoPiece)
}

// All yields the 64 squares in index order with their occupant (NoPiece when empty).
func (p *Position) All() iter.Seq2[Square, Piece] {
	return func(yield func(Square, Piece) bool) {
		for sq := Square(0); sq < 64; sq++ {
			if !yield(sq, p.At(sq)) {
				return
			}
		}
	}
}

// Board returns the occupant of every square in index order.
func (p *Position) Board() [64]Piece {
	var out [64]Piece
	for sq, pc := range p.All() {
		out[sq] = pc
	}
	return out
}

// Validate checks the layer invariants and returns the first violation found.
func (p *Position) Validate() error {
	light, dark := p.layers[LayerLight], p.layers[LayerDark]
	if light&dark != 0 {
		return fmt.Errorf("squares %v are both light and dark", (light & dark).Squares())
	}
	if p.layers[LayerAll] != light|dark {
		return errors.New("all-occupancy layer differs from the union of the color layers")
	}
	var seen Bitboard
	for _, pt := range PieceTypes {
		bb := p.layers[typeLayer(pt)]
		if overlap := seen & bb; overlap != 0 {
			return fmt.Errorf("squares %v hold more than one piece type", overlap.Squares())
		}
		seen |= bb
	}
	if seen != p.layers[LayerAll] {
		return fmt.Errorf("squares %v have a color without a piece type or the reverse",
			(seen ^ p.layers[LayerAll]).Squares())
	}
	for c := Light; c <= Dark; c++ {
		if p.castle[c]&^BothCastle != 0 {
			return fmt.Errorf("%s castling rights %02b out of range", c, p.castle[c])
		}
	}
	if p.enPassant != NoSquare && !p.enPassant.Valid() {
		return fmt.Errorf("en-passant target %d off the board", p.enPassant)
	}
	return nil
}

// String draws the board rank 8 first; '_' marks an empty square.
func (p *Position) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for file := 0; file < 8; file++ {
			if file > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(p.At(Square(row*8 + file)).Char())
		}
	}
	return sb.String()
}
