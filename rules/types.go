package rules

import "fmt"

// Square is a board index 0-63, rank 8 first, file A first.
type Square int

const NoSquare Square = -1

// Named squares used by castling and tests.
const (
	A8 Square = 0
	E8 Square = 4
	H8 Square = 7
	A1 Square = 56
	E1 Square = 60
	H1 Square = 63
)

// Valid reports whether sq lies on the board.
func (sq Square) Valid() bool { return sq >= 0 && sq <= 63 }

// File returns 0 for the A-file through 7 for the H-file.
func (sq Square) File() int { return int(sq) % 8 }

// Row returns 0 for rank 8 through 7 for rank 1.
func (sq Square) Row() int { return int(sq) / 8 }

// String gives the algebraic name ("e2"), or "-" off the board.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{'a' + byte(sq.File()), '8' - byte(sq.Row())})
}

// squareAt returns the square at (file, row) or NoSquare when off the board.
func squareAt(file, row int) Square {
	if file < 0 || file > 7 || row < 0 || row > 7 {
		return NoSquare
	}
	return Square(row*8 + file)
}

// Color is the side a piece belongs to.
type Color uint8

const (
	Light Color = 0
	Dark  Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Dark {
		return "Dark"
	}
	return "Light"
}

// PieceType is a colorless kind of piece. The order is fixed; Rank depends on it.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// PieceTypes lists the six kinds in their fixed order.
var PieceTypes = [...]PieceType{King, Queen, Rook, Bishop, Knight, Pawn}

// Rank is the stable integer used for hashing (King=2 ... Pawn=7).
func (pt PieceType) Rank() int {
	if pt == NoPieceType {
		return 0
	}
	return int(pt) + 1
}

func (pt PieceType) String() string {
	switch pt {
	case King:
		return "King"
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	case Pawn:
		return "Pawn"
	}
	return "None"
}

// char is the lower-case letter for the type.
func (pt PieceType) char() byte {
	switch pt {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return '_'
}

// Piece pairs a color with a piece type. Pieces compare by value.
type Piece struct {
	Color Color
	Type  PieceType
}

// NoPiece marks an empty square.
var NoPiece = Piece{}

// NewPiece builds a piece from its parts.
func NewPiece(c Color, pt PieceType) Piece { return Piece{Color: c, Type: pt} }

// IsNone reports whether p is NoPiece.
func (p Piece) IsNone() bool { return p.Type == NoPieceType }

// Char returns the piece letter, upper case for Light and lower case for Dark.
func (p Piece) Char() byte {
	ch := p.Type.char()
	if p.Color == Light && !p.IsNone() {
		ch -= 'a' - 'A'
	}
	return ch
}

// Hash returns a small stable integer that is distinct for every piece.
func (p Piece) Hash() int {
	if p.IsNone() {
		return 0
	}
	return int(p.Color)*8 + p.Type.Rank()
}

func (p Piece) String() string {
	if p.IsNone() {
		return "None"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

// CastleRights holds one side's castling permissions.
type CastleRights uint8

const (
	KingSide  CastleRights = 1 << 0
	QueenSide CastleRights = 1 << 1

	NoCastle   CastleRights = 0
	BothCastle              = KingSide | QueenSide
)
