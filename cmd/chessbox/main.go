package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"chessbox/rules"
)

var errSquare = errors.New("squares are written e2 or 0-63")

func main() {
	plain := flag.Bool("plain", false, "Disable colors")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("chessbox: ")

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	if *plain || !tty {
		color.NoColor = true
	}

	s := newSession(os.Stdout, tty)
	s.printBoard()
	s.prompt()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if s.exec(scanner.Text()) {
			return
		}
		s.prompt()
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

type session struct {
	out         io.Writer
	interactive bool
	pos         *rules.Position
	history     []string
}

func newSession(out io.Writer, interactive bool) *session {
	return &session{out: out, interactive: interactive, pos: rules.NewPosition()}
}

func (s *session) prompt() {
	if s.interactive {
		fmt.Fprintf(s.out, "%s> ", s.pos.SideToMove())
	}
}

// exec runs one input line and reports whether the session should end.
func (s *session) exec(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	switch strings.ToLower(tokens[0]) {
	case "quit", "exit":
		return true
	case "board":
		s.printBoard()
	case "reset":
		s.pos = rules.NewPosition()
		s.history = s.history[:0]
		s.printBoard()
	case "history":
		fmt.Fprintln(s.out, strings.Join(s.history, " "))
	case "help":
		fmt.Fprintln(s.out, "commands: <from> <to> | <from><to> | board | history | reset | quit")
	default:
		from, to, err := parseMove(tokens)
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
			return false
		}
		s.play(from, to)
	}
	return false
}

func (s *session) play(from, to rules.Square) {
	out, err := s.pos.Apply(from, to)
	if err != nil {
		var me *rules.MoveError
		if errors.As(err, &me) {
			fmt.Fprintf(s.out, "illegal %s%s: %s (%s)\n", from, to, me.Msg, me.Kind)
		} else {
			fmt.Fprintf(s.out, "illegal %s%s: %v\n", from, to, err)
		}
		return
	}
	s.history = append(s.history, from.String()+to.String())
	fmt.Fprintf(s.out, "%s%s %s\n", from, to, out)
	s.printBoard()
	if s.pos.InCheck() {
		fmt.Fprintf(s.out, "%s is in check\n", s.pos.SideToMove())
	}
}

func (s *session) printBoard() {
	light := color.New(color.BgHiWhite, color.FgBlack)
	dark := color.New(color.BgGreen, color.FgBlack)
	for row := 0; row < 8; row++ {
		fmt.Fprintf(s.out, "%d ", 8-row)
		for file := 0; file < 8; file++ {
			sq := rules.Square(row*8 + file)
			cell := "   "
			if pc, ok := s.pos.Get(sq); ok {
				cell = " " + string(pc.Char()) + " "
			}
			bg := light
			if (row+file)%2 == 1 {
				bg = dark
			}
			fmt.Fprint(s.out, bg.Sprint(cell))
		}
		fmt.Fprintln(s.out)
	}
	fmt.Fprintln(s.out, "   a  b  c  d  e  f  g  h")
}

// parseMove accepts "e2 e4", "e2e4" or "52 36".
func parseMove(tokens []string) (from, to rules.Square, err error) {
	if len(tokens) == 1 && len(tokens[0]) == 4 {
		tokens = []string{tokens[0][:2], tokens[0][2:]}
	}
	if len(tokens) != 2 {
		return rules.NoSquare, rules.NoSquare, fmt.Errorf("want a from and a to square, got %q", strings.Join(tokens, " "))
	}
	if from, err = parseSquare(tokens[0]); err != nil {
		return rules.NoSquare, rules.NoSquare, err
	}
	if to, err = parseSquare(tokens[1]); err != nil {
		return rules.NoSquare, rules.NoSquare, err
	}
	return from, to, nil
}

// parseSquare reads an algebraic name like e2 or a raw index. Raw indices are
// passed through unchecked so the rules engine reports them as out of bounds.
func parseSquare(tok string) (rules.Square, error) {
	if n, err := strconv.Atoi(tok); err == nil {
		return rules.Square(n), nil
	}
	tok = strings.ToLower(tok)
	if len(tok) != 2 || tok[0] < 'a' || tok[0] > 'h' || tok[1] < '1' || tok[1] > '8' {
		return rules.NoSquare, fmt.Errorf("%w: %q", errSquare, tok)
	}
	file := int(tok[0] - 'a')
	row := 8 - int(tok[1]-'0')
	return rules.Square(row*8 + file), nil
}
