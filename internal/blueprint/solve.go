package blueprint

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MaxGeodesAll runs MaxGeodes for every blueprint concurrently and returns
// the results in input order.
func MaxGeodesAll(ctx context.Context, bps []Blueprint, minutes int) ([]int, error) {
	out := make([]int, len(bps))
	g, ctx := errgroup.WithContext(ctx)
	for i := range bps {
		g.Go(func() error {
			n, err := bps[i].MaxGeodesContext(ctx, minutes)
			out[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// QualitySum adds up the quality level of every blueprint.
func QualitySum(ctx context.Context, bps []Blueprint, minutes int) (int, error) {
	geodes, err := MaxGeodesAll(ctx, bps, minutes)
	if err != nil {
		return 0, err
	}
	sum := 0
	for i, n := range geodes {
		sum += bps[i].ID * n
	}
	return sum, nil
}

// TopProduct multiplies the geode counts of the first n blueprints.
func TopProduct(ctx context.Context, bps []Blueprint, n, minutes int) (int, error) {
	if n < len(bps) {
		bps = bps[:n]
	}
	geodes, err := MaxGeodesAll(ctx, bps, minutes)
	if err != nil {
		return 0, err
	}
	product := 1
	for _, g := range geodes {
		product *= g
	}
	return product, nil
}
