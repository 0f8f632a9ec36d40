// Package solver integrates first-order ODE systems on a fixed output grid.
// Two methods are provided: classic fixed-step RK4 and adaptive
// Dormand-Prince RK45.
package solver

import (
	"context"
	"fmt"
	"math"
	"strings"
)

// System evaluates dy/dt at (t, y) into dydt. len(dydt) == len(y).
type System func(t float64, y, dydt []float64)

// Solution holds the output grid and the state variables sampled on it:
// Y[k][i] is variable k at time T[i].
type Solution struct {
	T []float64
	Y [][]float64
}

const (
	MethodRK4  = "rk4"
	MethodRK45 = "rk45"
)

const (
	rtol = 1e-6
	atol = 1e-9

	minStepScale = 0.2
	maxStepScale = 5.0
	safety       = 0.9
)

// Solve integrates sys from t=0 to tend with initial state y0, sampling the
// solution at t = 0, dt, 2dt, ..., tend. The adaptive method subdivides
// between output points as needed; the fixed method takes exactly one dt
// step per output point. Cancelling ctx aborts the integration.
func Solve(ctx context.Context, sys System, y0 []float64, tend, dt float64, method string) (Solution, error) {
	if len(y0) == 0 {
		return Solution{}, fmt.Errorf("initial state is empty")
	}
	if dt <= 0 {
		return Solution{}, fmt.Errorf("dt must be positive, got %g", dt)
	}
	if tend <= 0 {
		return Solution{}, fmt.Errorf("tend must be positive, got %g", tend)
	}

	var step func(sys System, t float64, y []float64, h float64) ([]float64, error)
	switch strings.ToLower(method) {
	case "", MethodRK45:
		step = stepAdaptive
	case MethodRK4:
		step = stepFixed
	default:
		return Solution{}, fmt.Errorf("unsupported method: %s", method)
	}

	steps := int(math.Round(tend / dt))
	if steps < 1 {
		steps = 1
	}

	n := len(y0)
	solution := Solution{
		T: make([]float64, steps+1),
		Y: make([][]float64, n),
	}
	for k := 0; k < n; k++ {
		solution.Y[k] = make([]float64, steps+1)
	}

	y := make([]float64, n)
	copy(y, y0)
	record(&solution, 0, 0, y)

	for i := 1; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return Solution{}, err
		}

		t := float64(i-1) * dt
		next, err := step(sys, t, y, dt)
		if err != nil {
			return Solution{}, err
		}
		y = next
		record(&solution, i, float64(i)*dt, y)
	}
	return solution, nil
}

func record(solution *Solution, i int, t float64, y []float64) {
	solution.T[i] = t
	for k := range y {
		solution.Y[k][i] = y[k]
	}
}

// stepFixed advances one classic RK4 step of size h.
func stepFixed(sys System, t float64, y []float64, h float64) ([]float64, error) {
	n := len(y)
	k1 := make([]float64, n)
	k2 := make([]float64, n)
	k3 := make([]float64, n)
	k4 := make([]float64, n)
	tmp := make([]float64, n)

	sys(t, y, k1)
	for i := 0; i < n; i++ {
		tmp[i] = y[i] + 0.5*h*k1[i]
	}
	sys(t+0.5*h, tmp, k2)
	for i := 0; i < n; i++ {
		tmp[i] = y[i] + 0.5*h*k2[i]
	}
	sys(t+0.5*h, tmp, k3)
	for i := 0; i < n; i++ {
		tmp[i] = y[i] + h*k3[i]
	}
	sys(t+h, tmp, k4)

	next := make([]float64, n)
	for i := 0; i < n; i++ {
		next[i] = y[i] + (h/6.0)*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return next, nil
}

// stepAdaptive advances from t to t+h using embedded Dormand-Prince 4(5)
// substeps with local error control.
func stepAdaptive(sys System, t float64, y []float64, h float64) ([]float64, error) {
	target := t + h
	cur := make([]float64, len(y))
	copy(cur, y)

	sub := h
	const maxAttempts = 10000
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if t >= target {
			return cur, nil
		}
		if t+sub > target {
			sub = target - t
		}

		next, errNorm := dormandPrinceStep(sys, t, cur, sub)
		if errNorm <= 1 {
			t += sub
			cur = next
		}

		scale := maxStepScale
		if errNorm > 0 {
			scale = safety * math.Pow(1.0/errNorm, 0.2)
			if scale < minStepScale {
				scale = minStepScale
			}
			if scale > maxStepScale {
				scale = maxStepScale
			}
		}
		sub *= scale
		if sub <= 0 || math.IsNaN(sub) {
			return nil, fmt.Errorf("adaptive step collapsed at t=%g", t)
		}
	}
	return nil, fmt.Errorf("adaptive integration did not converge at t=%g", t)
}

// dormandPrinceStep computes one embedded RK45 step of size h and the
// normalized local error (<= 1 means accept).
func dormandPrinceStep(sys System, t float64, y []float64, h float64) ([]float64, float64) {
	n := len(y)
	k := make([][]float64, 7)
	for i := range k {
		k[i] = make([]float64, n)
	}
	tmp := make([]float64, n)

	a := [7][6]float64{
		{},
		{1.0 / 5.0},
		{3.0 / 40.0, 9.0 / 40.0},
		{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	}
	c := [7]float64{0, 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1}
	b5 := [7]float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0}
	b4 := [7]float64{5179.0 / 57600.0, 0, 7571.0 / 16695.0, 393.0 / 640.0, -92097.0 / 339200.0, 187.0 / 2100.0, 1.0 / 40.0}

	sys(t, y, k[0])
	for stage := 1; stage < 7; stage++ {
		for i := 0; i < n; i++ {
			acc := y[i]
			for j := 0; j < stage; j++ {
				acc += h * a[stage][j] * k[j][i]
			}
			tmp[i] = acc
		}
		sys(t+c[stage]*h, tmp, k[stage])
	}

	next := make([]float64, n)
	errNorm := 0.0
	for i := 0; i < n; i++ {
		y5 := y[i]
		y4 := y[i]
		for stage := 0; stage < 7; stage++ {
			y5 += h * b5[stage] * k[stage][i]
			y4 += h * b4[stage] * k[stage][i]
		}
		next[i] = y5

		tol := atol + rtol*math.Max(math.Abs(y[i]), math.Abs(y5))
		diff := (y5 - y4) / tol
		errNorm += diff * diff
	}
	errNorm = math.Sqrt(errNorm / float64(n))
	return next, errNorm
}
