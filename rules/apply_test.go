package rules_test

import (
	"errors"
	"testing"

	"chessbox/rules"
)

func TestApplyDoublePush(t *testing.T) {
	p := rules.NewPosition()
	out, err := p.Apply(52, 36)
	if err != nil {
		t.Fatalf("e2e4 rejected: %v", err)
	}
	if !out.Has(rules.DoublePush) || !out.Has(rules.EnPassant) {
		t.Fatalf("expected double-push outcome, got %v", out)
	}
	if p.EnPassant() != 44 {
		t.Fatalf("expected en-passant target 44, got %v", p.EnPassant())
	}
	if _, ok := p.Get(52); ok {
		t.Fatalf("expected e2 empty")
	}
	if got := p.At(36); got != piece('P') {
		t.Fatalf("expected Light Pawn on e4, got %v", got)
	}
	if p.SideToMove() != rules.Dark {
		t.Fatalf("expected Dark to move")
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("invalid after e2e4: %v", err)
	}
}

func TestApplyRejectedIsNoop(t *testing.T) {
	p := setup(t, rules.Light, map[string]string{
		"e1": "K", "h1": "R", "e2": "B", "e8": "r", "a8": "k", "c7": "p",
	}, rules.WithCastleRights(rules.Light, rules.KingSide), rules.WithEnPassant(at("c6")), rules.WithHalfmoveClock(3))
	before := *p
	for from := rules.Square(-1); from <= 64; from++ {
		for to := rules.Square(-1); to <= 64; to++ {
			if _, err := p.Judge(from, to); err == nil {
				continue
			}
			if _, err := p.Apply(from, to); err == nil {
				t.Fatalf("apply accepted %v-%v after judge rejected it", from, to)
			}
			if *p != before {
				t.Fatalf("rejected apply %v-%v changed the position", from, to)
			}
		}
	}
}

func TestApplyEnPassant(t *testing.T) {
	p := setup(t, rules.Dark, map[string]string{"e5": "P", "d7": "p", "e1": "K", "e8": "k"})
	out := mustApply(t, p, "d7", "d5")
	if !out.Has(rules.DoublePush) {
		t.Fatalf("expected double push, got %v", out)
	}
	if p.EnPassant() != at("d6") {
		t.Fatalf("expected en-passant target d6, got %v", p.EnPassant())
	}

	out = mustApply(t, p, "e5", "d6")
	if !out.IsEnPassantCapture() {
		t.Fatalf("expected en-passant capture, got %v", out)
	}
	if _, ok := p.Get(at("d5")); ok {
		t.Fatalf("passed pawn on d5 should be gone")
	}
	if _, ok := p.Get(at("e5")); ok {
		t.Fatalf("capturing pawn should have left e5")
	}
	if got := p.At(at("d6")); got != piece('P') {
		t.Fatalf("expected Light Pawn on d6, got %v", got)
	}
	if p.EnPassant() != rules.NoSquare {
		t.Fatalf("expected en-passant target cleared")
	}
	if p.SideToMove() != rules.Dark {
		t.Fatalf("expected Dark to move")
	}
}

func TestEnPassantExpires(t *testing.T) {
	p := setup(t, rules.Dark, map[string]string{"e5": "P", "d7": "p", "e1": "K", "e8": "k"})
	mustApply(t, p, "d7", "d5")
	mustApply(t, p, "e1", "f1")
	mustApply(t, p, "e8", "f8")
	if p.EnPassant() != rules.NoSquare {
		t.Fatalf("expected target cleared after an intervening move")
	}
	if _, err := p.Judge(at("e5"), at("d6")); rules.KindOf(err) != rules.InvalidGeometry {
		t.Fatalf("expected stale en passant rejected, got %v", err)
	}
}

func TestEnPassantDiscoveredCheck(t *testing.T) {
	p := setup(t, rules.Dark, map[string]string{
		"a5": "K", "e5": "P", "d7": "p", "h5": "r", "h8": "k",
	})
	mustApply(t, p, "d7", "d5")
	_, err := p.Judge(at("e5"), at("d6"))
	if !errors.Is(err, rules.ErrExposesOwnKing) {
		t.Fatalf("expected en passant opening the rank to be rejected, got %v", err)
	}
}

func TestApplyCastling(t *testing.T) {
	base := map[string]string{"e1": "K", "a1": "R", "h1": "R", "e8": "k"}
	rights := rules.WithCastleRights(rules.Light, rules.BothCastle)

	t.Run("kingside", func(t *testing.T) {
		p := setup(t, rules.Light, base, rights)
		out := mustApply(t, p, "e1", "g1")
		if out != rules.Valid|rules.Castle {
			t.Fatalf("expected castle outcome, got %v", out)
		}
		if p.At(at("g1")) != piece('K') || p.At(at("f1")) != piece('R') {
			t.Fatalf("king or rook misplaced:\n%s", p)
		}
		if _, ok := p.Get(at("h1")); ok {
			t.Fatalf("h1 should be empty")
		}
		if p.CastleRights(rules.Light) != rules.NoCastle {
			t.Fatalf("expected Light rights cleared, got %02b", p.CastleRights(rules.Light))
		}
	})

	t.Run("queenside", func(t *testing.T) {
		p := setup(t, rules.Light, base, rights)
		mustApply(t, p, "e1", "c1")
		if p.At(at("c1")) != piece('K') || p.At(at("d1")) != piece('R') {
			t.Fatalf("king or rook misplaced:\n%s", p)
		}
		if _, ok := p.Get(at("a1")); ok {
			t.Fatalf("a1 should be empty")
		}
		if p.CastleRights(rules.Light) != rules.NoCastle {
			t.Fatalf("expected Light rights cleared")
		}
	})

	t.Run("dark kingside", func(t *testing.T) {
		p := setup(t, rules.Dark, map[string]string{"e1": "K", "e8": "k", "h8": "r"},
			rules.WithCastleRights(rules.Dark, rules.KingSide))
		mustApply(t, p, "e8", "g8")
		if p.At(at("g8")) != piece('k') || p.At(at("f8")) != piece('r') {
			t.Fatalf("king or rook misplaced:\n%s", p)
		}
	})
}

func TestJudgeCastlingRejections(t *testing.T) {
	tests := []struct {
		name   string
		pieces map[string]string
		rights rules.CastleRights
		to     string
		kind   rules.RejectKind
	}{
		{"no kingside right", map[string]string{"e1": "K", "h1": "R", "a1": "R", "e8": "k"}, rules.QueenSide, "g1", rules.MissingCastleRights},
		{"no rook", map[string]string{"e1": "K", "a1": "R", "e8": "k"}, rules.BothCastle, "g1", rules.MissingCastleRights},
		{"bishop in the way", map[string]string{"e1": "K", "f1": "B", "h1": "R", "e8": "k"}, rules.BothCastle, "g1", rules.CastleBlocked},
		{"knight on b1", map[string]string{"e1": "K", "b1": "N", "a1": "R", "e8": "k"}, rules.BothCastle, "c1", rules.CastleBlocked},
		{"out of check", map[string]string{"e1": "K", "h1": "R", "e5": "r", "a8": "k"}, rules.BothCastle, "g1", rules.CastleAttacked},
		{"through attack", map[string]string{"e1": "K", "h1": "R", "f8": "r", "a8": "k"}, rules.BothCastle, "g1", rules.CastleAttacked},
		{"into attack", map[string]string{"e1": "K", "h1": "R", "g8": "r", "a8": "k"}, rules.BothCastle, "g1", rules.ExposesOwnKing},
		{"queenside b1 attacked is fine", map[string]string{"e1": "K", "a1": "R", "b8": "r", "h8": "k"}, rules.BothCastle, "c1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := setup(t, rules.Light, tt.pieces, rules.WithCastleRights(rules.Light, tt.rights))
			_, err := p.Judge(at("e1"), at(tt.to))
			if rules.KindOf(err) != tt.kind {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestOpeningKingsideCastle(t *testing.T) {
	p := rules.NewPosition()
	p.Set(61, rules.NoPiece)
	p.Set(62, rules.NoPiece)
	out, err := p.Apply(60, 62)
	if err != nil || !out.Has(rules.Castle) {
		t.Fatalf("expected castle, got %v %v", out, err)
	}
	if p.At(61) != piece('R') {
		t.Fatalf("expected Light Rook on 61, got %v", p.At(61))
	}
	if _, ok := p.Get(63); ok {
		t.Fatalf("expected 63 empty")
	}
}

func TestCastlingRightsRevocation(t *testing.T) {
	t.Run("rook leaves corner", func(t *testing.T) {
		p := setup(t, rules.Light, map[string]string{"e1": "K", "a1": "R", "h1": "R", "e8": "k"},
			rules.WithCastleRights(rules.Light, rules.BothCastle))
		mustApply(t, p, "a1", "a2")
		if p.CastleRights(rules.Light) != rules.KingSide {
			t.Fatalf("expected only kingside right left, got %02b", p.CastleRights(rules.Light))
		}
	})
	t.Run("rook captured in corner", func(t *testing.T) {
		p := setup(t, rules.Light, map[string]string{"e1": "K", "h1": "R", "a8": "r", "h8": "r", "e8": "k"},
			rules.WithCastleRights(rules.Light, rules.BothCastle), rules.WithCastleRights(rules.Dark, rules.BothCastle))
		out := mustApply(t, p, "h1", "h8")
		if !out.Has(rules.Capture) {
			t.Fatalf("expected capture, got %v", out)
		}
		if p.CastleRights(rules.Dark) != rules.QueenSide {
			t.Fatalf("expected Dark kingside right revoked, got %02b", p.CastleRights(rules.Dark))
		}
		if p.CastleRights(rules.Light) != rules.QueenSide {
			t.Fatalf("expected Light kingside right revoked, got %02b", p.CastleRights(rules.Light))
		}
	})
	t.Run("king steps", func(t *testing.T) {
		p := setup(t, rules.Light, map[string]string{"e1": "K", "a1": "R", "h1": "R", "e8": "k"},
			rules.WithCastleRights(rules.Light, rules.BothCastle))
		mustApply(t, p, "e1", "d1")
		mustApply(t, p, "e8", "e7")
		mustApply(t, p, "d1", "e1")
		mustApply(t, p, "e7", "e8")
		if _, err := p.Judge(at("e1"), at("g1")); rules.KindOf(err) != rules.MissingCastleRights {
			t.Fatalf("expected castling refused after the king moved, got %v", err)
		}
	})
}

func TestApplyPromotion(t *testing.T) {
	p := setup(t, rules.Light, map[string]string{"a7": "P", "e1": "K", "h8": "k"})
	out := mustApply(t, p, "a7", "a8")
	if !out.Has(rules.Promotion) {
		t.Fatalf("expected promotion, got %v", out)
	}
	if got := p.At(at("a8")); got != piece('Q') {
		t.Fatalf("expected Light Queen on a8, got %v", got)
	}
	if !p.InCheck() {
		t.Fatalf("expected the new queen to check the Dark king")
	}
}

func TestScriptedGame(t *testing.T) {
	moves := [][2]string{
		{"e2", "e4"}, {"e7", "e5"},
		{"g1", "f3"}, {"b8", "c6"},
		{"f1", "c4"}, {"f8", "c5"},
		{"e1", "g1"}, {"g8", "f6"},
		{"d2", "d4"}, {"e5", "d4"},
		{"f3", "d4"}, {"e8", "g8"},
	}
	p := rules.NewPosition()
	side := rules.Light
	for _, m := range moves {
		mustApply(t, p, m[0], m[1])
		side = side.Other()
		if p.SideToMove() != side {
			t.Fatalf("after %s%s expected %v to move", m[0], m[1], side)
		}
	}
	checks := map[string]string{"f1": "R", "g1": "K", "f8": "r", "g8": "k", "d4": "N", "c4": "B", "c5": "b"}
	for name, letter := range checks {
		if got := p.At(at(name)); got != piece(letter[0]) {
			t.Errorf("%s: expected %v, got %v", name, piece(letter[0]), got)
		}
	}
	if p.CastleRights(rules.Light) != rules.NoCastle || p.CastleRights(rules.Dark) != rules.NoCastle {
		t.Fatalf("expected all castling rights spent")
	}
	if p.HalfmoveClock() != 1 {
		t.Fatalf("expected halfmove clock 1, got %d", p.HalfmoveClock())
	}
	if n := p.Occupied().Count(); n != 30 {
		t.Fatalf("expected 30 pieces after two captures, got %d", n)
	}
}
