package solver

import (
	"context"
	"math"
	"testing"
)

// dy/dt = -y with y(0)=1 has the closed form y(t) = exp(-t).
func decay(_ float64, y, dydt []float64) {
	dydt[0] = -y[0]
}

func TestSolveRK4MatchesExponentialDecay(t *testing.T) {
	solution, err := Solve(context.Background(), decay, []float64{1}, 5, 0.01, MethodRK4)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	if len(solution.T) != 501 {
		t.Fatalf("expected 501 samples, got %d", len(solution.T))
	}
	if solution.T[0] != 0 || math.Abs(solution.T[500]-5) > 1e-12 {
		t.Fatalf("unexpected grid endpoints: %g..%g", solution.T[0], solution.T[500])
	}

	for i, tv := range solution.T {
		want := math.Exp(-tv)
		if math.Abs(solution.Y[0][i]-want) > 1e-6 {
			t.Fatalf("t=%g: got %g, want %g", tv, solution.Y[0][i], want)
		}
	}
}

func TestSolveRK45MatchesExponentialDecay(t *testing.T) {
	solution, err := Solve(context.Background(), decay, []float64{1}, 5, 0.1, MethodRK45)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	for i, tv := range solution.T {
		want := math.Exp(-tv)
		if math.Abs(solution.Y[0][i]-want) > 1e-5 {
			t.Fatalf("t=%g: got %g, want %g", tv, solution.Y[0][i], want)
		}
	}
}

// Harmonic oscillator: y'' = -y, energy y0^2+y1^2 is conserved.
func oscillator(_ float64, y, dydt []float64) {
	dydt[0] = y[1]
	dydt[1] = -y[0]
}

func TestSolveRK45ConservesOscillatorEnergy(t *testing.T) {
	solution, err := Solve(context.Background(), oscillator, []float64{1, 0}, 20, 0.05, MethodRK45)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}

	last := len(solution.T) - 1
	energy := solution.Y[0][last]*solution.Y[0][last] + solution.Y[1][last]*solution.Y[1][last]
	if math.Abs(energy-1) > 1e-4 {
		t.Fatalf("energy drifted: %g", energy)
	}
}

func TestSolveDefaultsToRK45(t *testing.T) {
	solution, err := Solve(context.Background(), decay, []float64{1}, 1, 0.1, "")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	want := math.Exp(-1)
	if math.Abs(solution.Y[0][10]-want) > 1e-5 {
		t.Fatalf("got %g, want %g", solution.Y[0][10], want)
	}
}

func TestSolveRejectsBadInputs(t *testing.T) {
	if _, err := Solve(context.Background(), decay, nil, 1, 0.1, MethodRK4); err == nil {
		t.Fatal("expected error for empty state")
	}
	if _, err := Solve(context.Background(), decay, []float64{1}, 1, 0, MethodRK4); err == nil {
		t.Fatal("expected error for zero dt")
	}
	if _, err := Solve(context.Background(), decay, []float64{1}, -1, 0.1, MethodRK4); err == nil {
		t.Fatal("expected error for negative tend")
	}
	if _, err := Solve(context.Background(), decay, []float64{1}, 1, 0.1, "euler"); err == nil {
		t.Fatal("expected error for unknown method")
	}
}

func TestSolveHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Solve(ctx, decay, []float64{1}, 100, 0.01, MethodRK4); err == nil {
		t.Fatal("expected cancellation error")
	}
}
