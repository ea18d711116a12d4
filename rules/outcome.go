package rules

import "strings"

// Outcome describes an accepted move. It is recomputed on every Judge call.
type Outcome uint8

const (
	Valid Outcome = 1 << iota
	// EnPassant marks a double push (the target square becomes capturable next
	// move) or, together with Capture, an en-passant capture.
	EnPassant
	Capture
	Castle
	DoublePush
	Promotion

	Invalid Outcome = 0
)

func (o Outcome) Has(f Outcome) bool { return o&f == f }

// IsEnPassantCapture reports a pawn taking the pawn that just passed it.
func (o Outcome) IsEnPassantCapture() bool { return o.Has(EnPassant | Capture) }

func (o Outcome) String() string {
	if o == Invalid {
		return "invalid"
	}
	names := []string{"valid", "enpassant", "capture", "castle", "doublepush", "promotion"}
	var parts []string
	for i, name := range names {
		if o&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// RejectKind classifies why a move was refused. Checks run in declaration
// order and the first failing one wins.
type RejectKind uint8

const (
	OutOfBounds RejectKind = iota + 1
	NullMove
	EmptySource
	WrongTurn
	FriendlyCapture
	InvalidGeometry
	BlockedPath
	MissingCastleRights
	CastleBlocked
	CastleAttacked
	ExposesOwnKing
)

func (k RejectKind) String() string {
	switch k {
	case OutOfBounds:
		return "OutOfBounds"
	case NullMove:
		return "NullMove"
	case EmptySource:
		return "EmptySource"
	case WrongTurn:
		return "WrongTurn"
	case FriendlyCapture:
		return "FriendlyCapture"
	case InvalidGeometry:
		return "InvalidGeometry"
	case BlockedPath:
		return "BlockedPath"
	case MissingCastleRights:
		return "MissingCastleRights"
	case CastleBlocked:
		return "CastleBlocked"
	case CastleAttacked:
		return "CastleAttacked"
	case ExposesOwnKing:
		return "ExposesOwnKing"
	}
	return "Unknown"
}

// MoveError is the rejection returned by Judge and Apply.
type MoveError struct {
	Kind     RejectKind
	From, To Square
	Msg      string
}

func (e *MoveError) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

// Is matches any *MoveError of the same kind, so errors.Is(err, ErrWrongTurn) works.
func (e *MoveError) Is(target error) bool {
	t, ok := target.(*MoveError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrOutOfBounds         = &MoveError{Kind: OutOfBounds}
	ErrNullMove            = &MoveError{Kind: NullMove}
	ErrEmptySource         = &MoveError{Kind: EmptySource}
	ErrWrongTurn           = &MoveError{Kind: WrongTurn}
	ErrFriendlyCapture     = &MoveError{Kind: FriendlyCapture}
	ErrInvalidGeometry     = &MoveError{Kind: InvalidGeometry}
	ErrBlockedPath         = &MoveError{Kind: BlockedPath}
	ErrMissingCastleRights = &MoveError{Kind: MissingCastleRights}
	ErrCastleBlocked       = &MoveError{Kind: CastleBlocked}
	ErrCastleAttacked      = &MoveError{Kind: CastleAttacked}
	ErrExposesOwnKing      = &MoveError{Kind: ExposesOwnKing}
)

// KindOf returns the rejection kind carried by err, or 0 if err is not a *MoveError.
func KindOf(err error) RejectKind {
	if me, ok := err.(*MoveError); ok {
		return me.Kind
	}
	return 0
}
