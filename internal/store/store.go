package store

import (
	"context"

	"github.com/nishs1729/simulation-manager/internal/model"
)

// Store defines persistence operations for trial output: named sample
// series and per-run metadata.
type Store interface {
	Init(ctx context.Context) error
	SaveSeries(ctx context.Context, series model.Series) error
	GetSeries(ctx context.Context, name string) (model.Series, bool, error)
	ListSeries(ctx context.Context) ([]string, error)
	SaveRunMeta(ctx context.Context, meta model.RunMeta) error
	GetRunMeta(ctx context.Context, runID string) (model.RunMeta, bool, error)
}
