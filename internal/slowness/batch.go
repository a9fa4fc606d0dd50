package slowness

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BuildAll constructs a Model for each velocity model concurrently, using
// at most workers goroutines (GOMAXPROCS when workers <= 0). Results keep
// the input order. The first failure cancels the remaining builds.
func BuildAll(ctx context.Context, vmods []VelocityModel, params Params, workers int, opts ...Option) ([]*Model, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	models := make([]*Model, len(vmods))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, vm := range vmods {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := New(vm, params, opts...)
			if err != nil {
				return fmt.Errorf("model %d: %w", i, err)
			}
			models[i] = m
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return models, nil
}
