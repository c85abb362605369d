package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/barrage/components"
)

const tol = 0.001

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) <= tol
}

func TestGenerateCircle(t *testing.T) {
	specs := Generate(0, 0, 0, FormationParams{
		Shape:  components.ShapeCircle,
		Count:  6,
		Radius: 2,
	})
	if len(specs) != 6 {
		t.Fatalf("got %d specs, want 6", len(specs))
	}

	step := 2 * math.Pi / 6
	for i, s := range specs {
		theta := float64(i) * step
		wantX := float32(2 * math.Cos(theta))
		wantY := float32(2 * math.Sin(theta))
		if !approxEq(s.X, wantX) || !approxEq(s.Y, wantY) {
			t.Errorf("spec %d: pos (%v,%v), want (%v,%v)", i, s.X, s.Y, wantX, wantY)
		}
		if !approxEq(s.Heading, 0) {
			t.Errorf("spec %d: heading %v, want formation heading 0", i, s.Heading)
		}
	}
}

func TestGenerateLineSpeedStep(t *testing.T) {
	specs := Generate(0, 0, 0, FormationParams{
		Shape:     components.ShapeLine,
		Count:     4,
		Spacing:   1,
		SpeedStep: 1,
	})
	if len(specs) != 4 {
		t.Fatalf("got %d specs, want 4", len(specs))
	}

	for i, s := range specs {
		if !approxEq(s.SpeedBonus, float32(i)) {
			t.Errorf("spec %d: speed bonus %v, want %d", i, s.SpeedBonus, i)
		}
		if !approxEq(s.Heading, 0) {
			t.Errorf("spec %d: heading %v, want 0", i, s.Heading)
		}
	}

	// Slots are centered on the origin and evenly spaced along the
	// perpendicular axis.
	for i := 1; i < len(specs); i++ {
		gap := Distance(specs[i-1].X, specs[i-1].Y, specs[i].X, specs[i].Y)
		if !approxEq(gap, 1) {
			t.Errorf("gap %d: %v, want 1", i, gap)
		}
	}
	midX := (specs[0].X + specs[3].X) / 2
	midY := (specs[0].Y + specs[3].Y) / 2
	if !approxEq(midX, 0) || !approxEq(midY, 0) {
		t.Errorf("line midpoint (%v,%v), want origin", midX, midY)
	}
}

func TestGeneratePoint(t *testing.T) {
	specs := Generate(3, 4, 1.5, FormationParams{
		Shape: components.ShapePoint,
		Count: 3,
	})
	if len(specs) != 3 {
		t.Fatalf("got %d specs, want 3", len(specs))
	}
	for i, s := range specs {
		if !approxEq(s.X, 3) || !approxEq(s.Y, 4) {
			t.Errorf("spec %d: pos (%v,%v), want (3,4)", i, s.X, s.Y)
		}
		if !approxEq(s.Heading, 1.5) {
			t.Errorf("spec %d: heading %v, want 1.5", i, s.Heading)
		}
	}
}

func TestGenerateSkipEveryNth(t *testing.T) {
	full := Generate(0, 0, 0, FormationParams{
		Shape:  components.ShapeCircle,
		Count:  8,
		Radius: 1,
	})
	skipped := Generate(0, 0, 0, FormationParams{
		Shape:        components.ShapeCircle,
		Count:        8,
		Radius:       1,
		SkipEveryNth: 4,
	})
	if len(skipped) != 6 {
		t.Fatalf("got %d specs, want 6", len(skipped))
	}

	// Indices 3 and 7 (the 4th and 8th slots) are omitted.
	wantIdx := []int{0, 1, 2, 4, 5, 6}
	for k, i := range wantIdx {
		if !approxEq(skipped[k].X, full[i].X) || !approxEq(skipped[k].Y, full[i].Y) {
			t.Errorf("kept %d: pos (%v,%v), want slot %d (%v,%v)",
				k, skipped[k].X, skipped[k].Y, i, full[i].X, full[i].Y)
		}
	}
}

func TestGenerateOffsetRotation(t *testing.T) {
	// A forward offset of (2,0) with heading Pi/2 lands the base at (0,2).
	specs := Generate(0, 0, math.Pi/2, FormationParams{
		Shape:   components.ShapePoint,
		Count:   1,
		OffsetX: 2,
	})
	if len(specs) != 1 {
		t.Fatalf("got %d specs, want 1", len(specs))
	}
	if !approxEq(specs[0].X, 0) || !approxEq(specs[0].Y, 2) {
		t.Errorf("pos (%v,%v), want (0,2)", specs[0].X, specs[0].Y)
	}
}

func TestGenerateEmpty(t *testing.T) {
	if specs := Generate(0, 0, 0, FormationParams{Shape: components.ShapeCircle, Count: 0}); specs != nil {
		t.Errorf("zero count: got %d specs, want nil", len(specs))
	}
	if specs := Generate(0, 0, 0, FormationParams{Shape: components.ShapeKind(99), Count: 3}); specs != nil {
		t.Errorf("unknown shape: got %d specs, want nil", len(specs))
	}
}

func TestGeneratedCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		skip  int
		want  int
	}{
		{"no skip", 8, 0, 8},
		{"skip fourth", 8, 4, 6},
		{"skip every", 5, 1, 0},
		{"skip beyond count", 3, 5, 3},
		{"zero count", 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GeneratedCount(tt.count, tt.skip); got != tt.want {
				t.Errorf("GeneratedCount(%d,%d) = %d, want %d", tt.count, tt.skip, got, tt.want)
			}
			specs := Generate(0, 0, 0, FormationParams{
				Shape: components.ShapeCircle, Count: tt.count, Radius: 1, SkipEveryNth: tt.skip,
			})
			if len(specs) != tt.want {
				t.Errorf("Generate emitted %d, want %d", len(specs), tt.want)
			}
		})
	}
}
