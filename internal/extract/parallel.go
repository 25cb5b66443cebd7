package extract

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mint/internal/mint"
)

// ExtractAll extracts every construct concurrently, sharing the extractor's
// registry. Results keep the order of the input slice. The first failing
// extraction cancels the remaining work and is returned; registry entries
// committed before the failure stay valid.
func (x *Extractor) ExtractAll(ctx context.Context, constructs []any) ([]mint.Mint, error) {
	results := make([]mint.Mint, len(constructs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, c := range constructs {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := x.Extract(c)
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
