package crosscheck

import (
	"fmt"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ==========================
// dragontoothmg
// ==========================

type dragontooth struct {
	board dragontoothmg.Board
}

// NewDragontooth returns an oracle backed by dragontoothmg's legal move generator.
func NewDragontooth() Oracle {
	return &dragontooth{board: dragontoothmg.ParseFen(startFEN)}
}

func (d *dragontooth) Name() string { return "dragontooth" }

// Over is always false: dragontoothmg has no draw rules, its games end only
// when the move list is empty.
func (d *dragontooth) Over() bool { return false }

func (d *dragontooth) Legal() map[Pair]bool {
	moves := d.board.GenerateLegalMoves()
	legal := make(map[Pair]bool, len(moves))
	for _, m := range moves {
		legal[NewPair(fromOracle(int(m.From())), fromOracle(int(m.To())))] = true
	}
	return legal
}

func (d *dragontooth) Play(m Pair) error {
	for _, mv := range d.board.GenerateLegalMoves() {
		if NewPair(fromOracle(int(mv.From())), fromOracle(int(mv.To()))) != m {
			continue
		}
		if promo := mv.Promote(); promo > 0 && promo != dragontoothmg.Queen {
			continue
		}
		d.board.Apply(mv)
		return nil
	}
	return fmt.Errorf("%w: dragontooth %v", ErrNotLegal, m)
}

// ==========================
// notnil/chess
// ==========================

type notnil struct {
	game *chess.Game
}

// NewNotnil returns an oracle backed by github.com/notnil/chess.
func NewNotnil() Oracle {
	return &notnil{game: chess.NewGame()}
}

func (n *notnil) Name() string { return "notnil" }

func (n *notnil) Over() bool { return n.game.Outcome() != chess.NoOutcome }

func (n *notnil) Legal() map[Pair]bool {
	moves := n.game.ValidMoves()
	legal := make(map[Pair]bool, len(moves))
	for _, m := range moves {
		legal[NewPair(fromOracle(int(m.S1())), fromOracle(int(m.S2())))] = true
	}
	return legal
}

func (n *notnil) Play(m Pair) error {
	for _, mv := range n.game.ValidMoves() {
		if NewPair(fromOracle(int(mv.S1())), fromOracle(int(mv.S2()))) != m {
			continue
		}
		if promo := mv.Promo(); promo != chess.NoPieceType && promo != chess.Queen {
			continue
		}
		return n.game.Move(mv)
	}
	return fmt.Errorf("%w: notnil %v", ErrNotLegal, m)
}
