// Package crosscheck plays seeded random games and compares every legality
// verdict of the rules engine with an independent move generator.
package crosscheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"

	petname "github.com/dustinkirkland/golang-petname"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chessbox/rules"
)

var (
	ErrUnknownOracle = errors.New("unknown oracle")
	ErrNotLegal      = errors.New("move not legal for oracle")
)

// Pair packs a (from, to) move in rules square numbering: from in bits 6-11, to in bits 0-5.
type Pair uint16

func NewPair(from, to rules.Square) Pair { return Pair(from)<<6 | Pair(to) }

func (m Pair) From() rules.Square { return rules.Square(m >> 6 & 0x3F) }
func (m Pair) To() rules.Square   { return rules.Square(m & 0x3F) }
func (m Pair) String() string     { return m.From().String() + m.To().String() }

// Oracles number squares a1 = 0 ... h8 = 63; the rules engine numbers a8 = 0.
// Flipping the row bits converts in both directions.
func fromOracle(sq int) rules.Square { return rules.Square(sq ^ 56) }

// Oracle is an independent legal move generator that follows the same game.
type Oracle interface {
	Name() string
	// Over reports that the game ended for a reason other than running out of
	// moves (automatic draws), so its move list no longer means anything.
	Over() bool
	// Legal returns the legal moves of the side to move. Promotion choices
	// collapse into one pair.
	Legal() map[Pair]bool
	// Play makes the move, promoting to a queen when it promotes.
	Play(m Pair) error
}

// Oracles maps oracle names to constructors.
var Oracles = map[string]func() Oracle{
	"dragontooth": NewDragontooth,
	"notnil":      NewNotnil,
}

// OracleNames lists the registered oracles in sorted order.
func OracleNames() []string {
	names := maps.Keys(Oracles)
	slices.Sort(names)
	return names
}

// Lookup returns the constructor for a named oracle.
func Lookup(name string) (func() Oracle, error) {
	fn, ok := Oracles[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownOracle, name, OracleNames())
	}
	return fn, nil
}

// Config controls a crosscheck run.
type Config struct {
	Games int
	// Plies caps every game; games also stop when the oracle has no moves.
	Plies int
	Seed  int64
	// Logger receives one line per game; nil discards.
	Logger *log.Logger
}

// Mismatch is one (from, to) pair where the engine and the oracle disagree.
type Mismatch struct {
	Game        string
	Ply         int
	Move        Pair
	OracleLegal bool
	// Err is the engine's rejection, nil when the engine accepted the move.
	Err   error
	Board string
}

func (m Mismatch) String() string {
	verdict := "accepted"
	if m.Err != nil {
		verdict = "rejected (" + m.Err.Error() + ")"
	}
	return fmt.Sprintf("game %s ply %d: %v oracle legal=%t, engine %s", m.Game, m.Ply, m.Move, m.OracleLegal, verdict)
}

// Report summarises a run.
type Report struct {
	Oracle     string
	Games      int
	Plies      int
	Mismatches []Mismatch
}

// Run plays cfg.Games random games, comparing the engine with a fresh oracle
// from newOracle in each. It stops early when ctx is cancelled and returns the
// partial report together with ctx's error.
func Run(ctx context.Context, cfg Config, newOracle func() Oracle) (Report, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	var rep Report

	for g := 0; g < cfg.Games; g++ {
		name := petname.Generate(2, "-")
		pos := rules.NewPosition()
		o := newOracle()
		rep.Oracle = o.Name()
		found := len(rep.Mismatches)
		ply := 0
		for ; ply < cfg.Plies; ply++ {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			if o.Over() {
				break
			}
			legal := o.Legal()
			rep.Mismatches = append(rep.Mismatches, compare(name, ply, pos, legal)...)
			if len(legal) == 0 {
				break
			}

			moves := maps.Keys(legal)
			slices.Sort(moves)
			pick := moves[rng.Intn(len(moves))]
			if _, err := pos.Apply(pick.From(), pick.To()); err != nil {
				return rep, fmt.Errorf("game %s ply %d: engine refused %v: %w", name, ply, pick, err)
			}
			if err := o.Play(pick); err != nil {
				return rep, fmt.Errorf("game %s ply %d: %w", name, ply, err)
			}
			rep.Plies++
		}
		rep.Games++
		logger.Printf("game %s: %d plies, %d mismatches", name, ply, len(rep.Mismatches)-found)
	}
	return rep, nil
}

// compare judges every (from, to) pair and records disagreements with legal.
func compare(game string, ply int, pos *rules.Position, legal map[Pair]bool) []Mismatch {
	var out []Mismatch
	for from := rules.Square(0); from < 64; from++ {
		for to := rules.Square(0); to < 64; to++ {
			m := NewPair(from, to)
			_, err := pos.Judge(from, to)
			if (err == nil) != legal[m] {
				out = append(out, Mismatch{
					Game:        game,
					Ply:         ply,
					Move:        m,
					OracleLegal: legal[m],
					Err:         err,
					Board:       pos.String(),
				})
			}
		}
	}
	return out
}
