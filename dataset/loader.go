package dataset

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/trip-replay/network"
	"github.com/theoremus-urban-solutions/trip-replay/trips"
)

// LoadResult carries whichever dataset halves were requested. An empty path
// leaves that half nil: an unset dataset is data absence, not an error.
type LoadResult struct {
	Trips   *trips.Dataset
	Network *network.RawNetwork
}

// Load reads and parses the trip and network files concurrently.
func Load(ctx context.Context, tripsPath, networkPath string, log *zap.Logger) (LoadResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var res LoadResult
	g, ctx := errgroup.WithContext(ctx)

	if tripsPath != "" {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ds, err := trips.LoadDataset(tripsPath, log)
			if err != nil {
				return errors.Wrap(err, "load trips")
			}
			res.Trips = ds
			return nil
		})
	}
	if networkPath != "" {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := network.LoadRawNetwork(networkPath)
			if err != nil {
				return errors.Wrap(err, "load network")
			}
			res.Network = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, err
	}
	return res, nil
}

// LoadIntoStore loads both files and applies the result to the store.
func LoadIntoStore(ctx context.Context, s *Store, tripsPath, networkPath string, log *zap.Logger) error {
	res, err := Load(ctx, tripsPath, networkPath, log)
	if err != nil {
		return err
	}
	if res.Trips != nil {
		s.SetTrips(res.Trips)
	}
	if res.Network != nil {
		s.SetNetwork(res.Network)
	}
	return nil
}
