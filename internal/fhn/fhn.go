// Package fhn implements the FitzHugh-Nagumo neuron model on top of the
// simulation harness.
package fhn

import (
	"context"
	"fmt"

	"github.com/nishs1729/simulation-manager/internal/config"
	"github.com/nishs1729/simulation-manager/internal/model"
	"github.com/nishs1729/simulation-manager/internal/sim"
	"github.com/nishs1729/simulation-manager/internal/solver"
	"github.com/nishs1729/simulation-manager/internal/store"
)

const (
	SeriesTime = "time"
	SeriesV    = "v"
	SeriesW    = "w"
)

// Model integrates the two-variable FitzHugh-Nagumo system:
//
//	dv/dt = v - v^3/3 - w + I
//	dw/dt = (v + a - b*w) / tau
type Model struct {
	a      float64
	b      float64
	tau    float64
	i      float64
	dt     float64
	tend   float64
	y0     []float64
	method string

	t []float64
	v []float64
	w []float64
}

func New() *Model {
	return &Model{}
}

func (m *Model) Name() string {
	return "fhn"
}

func (m *Model) Defaults() map[string]any {
	return map[string]any{
		"a":    0.7,
		"b":    0.8,
		"tau":  12.5,
		"I":    0.5,
		"dt":   0.01,
		"y0":   []float64{0.1, 0.0},
		"tend": 100.0,
	}
}

// Run materializes the resolved parameters, integrates the system over
// [0, tend] and persists the result series into the trial store.
func (m *Model) Run(ctx context.Context, rc *sim.RunContext) error {
	if err := m.materialize(rc.Params); err != nil {
		return err
	}

	rc.Logger.Info("integration started",
		"method", m.method, "tend", m.tend, "dt", m.dt)

	solution, err := solver.Solve(ctx, m.system, m.y0, m.tend, m.dt, m.method)
	if err != nil {
		return fmt.Errorf("integrate fhn system: %w", err)
	}
	m.t = solution.T
	m.v = solution.Y[0]
	m.w = solution.Y[1]

	rc.Logger.Info("integration finished", "samples", len(m.t))
	return m.SaveData(ctx, rc)
}

// SaveData writes the time grid and both state variables into the trial
// data store.
func (m *Model) SaveData(ctx context.Context, rc *sim.RunContext) error {
	if m.t == nil {
		return fmt.Errorf("no data to save; run the model first")
	}

	record := model.VersionedRecord{SchemaVersion: store.CurrentSchemaVersion, CodecVersion: store.CurrentCodecVersion}
	series := []model.Series{
		{VersionedRecord: record, Name: SeriesTime, Values: m.t},
		{VersionedRecord: record, Name: SeriesV, Values: m.v},
		{VersionedRecord: record, Name: SeriesW, Values: m.w},
	}
	for _, s := range series {
		if err := rc.Store.SaveSeries(ctx, s); err != nil {
			return fmt.Errorf("save series %s: %w", s.Name, err)
		}
	}

	rc.Logger.Info("saved simulation data", "path", rc.Paths.DataPath)
	return nil
}

// Results returns the integrated series (time, v, w). Nil before Run.
func (m *Model) Results() (t, v, w []float64) {
	return m.t, m.v, m.w
}

// Nullclines samples the two nullcline curves of the system on n points of
// [vmin, vmax]: dv/dt = 0 gives w = v - v^3/3 + I, dw/dt = 0 gives
// w = (v + a) / b. Callers plot these against the phase trajectory.
func (m *Model) Nullclines(vmin, vmax float64, n int) (v, wV, wW []float64) {
	if n < 2 {
		n = 2
	}
	v = make([]float64, n)
	wV = make([]float64, n)
	wW = make([]float64, n)

	step := (vmax - vmin) / float64(n-1)
	for i := 0; i < n; i++ {
		x := vmin + float64(i)*step
		v[i] = x
		wV[i] = x - (x*x*x)/3 + m.i
		wW[i] = (x + m.a) / m.b
	}
	return v, wV, wW
}

func (m *Model) system(_ float64, y, dydt []float64) {
	v, w := y[0], y[1]
	dydt[0] = v - (v*v*v)/3 - w + m.i
	dydt[1] = (v + m.a - m.b*w) / m.tau
}

func (m *Model) materialize(params map[string]any) error {
	scalars := []struct {
		key string
		dst *float64
	}{
		{"a", &m.a},
		{"b", &m.b},
		{"tau", &m.tau},
		{"I", &m.i},
		{"dt", &m.dt},
		{"tend", &m.tend},
	}
	for _, item := range scalars {
		value, ok := config.AsFloat64(params[item.key])
		if !ok {
			return &config.ConfigError{Reason: fmt.Sprintf("parameter %s must be numeric, got %T", item.key, params[item.key])}
		}
		*item.dst = value
	}

	y0, ok := config.AsFloat64Slice(params["y0"])
	if !ok || len(y0) != 2 {
		return &config.ConfigError{Reason: "parameter y0 must be a numeric array of length 2"}
	}
	m.y0 = y0

	m.method = solver.MethodRK45
	if method, ok := params["method"].(string); ok && method != "" {
		m.method = method
	}
	return nil
}
