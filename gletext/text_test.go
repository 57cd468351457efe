package gletext

import (
	"testing"
)

func TestPlainText(t *testing.T) {
	for _, test := range [][2]string{
		{"no markup", "no markup"},
		{`\tex{$\Delta t$}`, "Δt"},
		{`phase \tex{$\phi_0$} [rad]`, "phase φ0 [rad]"},
		{`\tex{$x^{2}$} and \tex{10\times 3}`, "x2 and 10×3"},
		{`\tex{\$5 \{a\}}`, "$5 {a}"},
		{`\tex{\unknown z}`, "z"},
		{`\tex{unterminated`, `\tex{unterminated`},
	} {
		if got := PlainText(test[0]); got != test[1] {
			t.Errorf("PlainText(%q): expected %q, got %q", test[0], test[1], got)
		}
	}
}

func TestFamilies(t *testing.T) {
	sh := NewShaper()
	for _, family := range Families() {
		if !sh.HasFamily(family) {
			t.Fatalf("missing family %s", family)
		}
	}
	if !sh.HasFamily("TEXCMR") {
		t.Fatal("family names should be case insensitive")
	}
	if sh.HasFamily("comic") {
		t.Fatal("unexpected family")
	}
	if _, err := sh.Shape("a", "comic", 1); err == nil {
		t.Fatal("expected error for unknown family")
	}
}

func TestShape(t *testing.T) {
	sh := NewShaper()

	small, err := sh.Shape("Hello", "rm", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	large, err := sh.Shape("Hello", "rm", 1)
	if err != nil {
		t.Fatal(err)
	}
	longer, err := sh.Shape("Hello world", "rm", 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if small.Width <= 0 || small.Ascent <= 0 || small.Descent <= 0 {
		t.Fatalf("invalid metrics %v", small)
	}
	if d := large.Width - 2*small.Width; d > 1e-3 || d < -1e-3 {
		t.Errorf("width should scale with height: %g and %g", small.Width, large.Width)
	}
	if longer.Width <= small.Width {
		t.Errorf("expected longer text to be wider")
	}
	if len(small.Outline) == 0 || small.Outline[0].Op != MoveTo {
		t.Fatalf("unexpected outline")
	}
	// glyphs sit on the baseline, y pointing up
	var maxY float64
	for _, seg := range small.Outline {
		for _, p := range seg.Args {
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}
	if maxY <= 0 || maxY > small.Ascent {
		t.Errorf("outline top %g outside of [0, %g]", maxY, small.Ascent)
	}

	empty, err := sh.Shape("", "rm", 1)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Width != 0 || len(empty.Outline) != 0 {
		t.Errorf("expected empty layout, got %v", empty)
	}
}
