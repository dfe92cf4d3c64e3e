package cli

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"fieldpaths/internal/flatten"
	"fieldpaths/internal/shape"
)

// Result is the output for one queried type.
type Result struct {
	Type    string   `json:"type"              yaml:"type"`
	Leaf    bool     `json:"leaf,omitempty"    yaml:"leaf,omitempty"`
	Paths   []string `json:"paths"             yaml:"paths"`
	Outline string   `json:"outline,omitempty" yaml:"outline,omitempty"`
}

// resolveAll computes the leaf paths of types and renders them as results.
func (a *app) resolveAll(ctx context.Context, types []*shape.Type) ([]Result, error) {
	paths, err := a.resolvePaths(ctx, types)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(types))

	for i, t := range types {
		res := Result{
			Type:  t.String(),
			Leaf:  paths[i] == nil,
			Paths: paths[i].Slice(),
		}
		if res.Paths == nil {
			res.Paths = []string{}
		}

		if a.cfg.Output.Outline {
			res.Outline = shape.Outline(t, a.cfg.Output.MaxDepth)
		}

		results[i] = res
	}

	return results, nil
}

// resolvePaths computes the leaf paths of types concurrently against one
// shared cache. The result keeps the order of types.
func (a *app) resolvePaths(ctx context.Context, types []*shape.Type) ([]*flatten.LeafPaths, error) {
	f := flatten.New(flatten.WithLogger(a.log))
	paths := make([]*flatten.LeafPaths, len(types))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, t := range types {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p, err := f.LeafPaths(t)
			if err != nil {
				return fmt.Errorf("%s: %w", t.String(), err)
			}

			paths[i] = p

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := f.Stats()
	a.log.Debug("resolved types", "count", len(types), "computed", stats.Computed, "hits", stats.Hits)

	return paths, nil
}
