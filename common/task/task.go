package task

import (
	"context"

	"github.com/xtls/xrelay/common"
	"golang.org/x/sync/errgroup"
)

// Run executes a list of tasks in parallel, returns the first error encountered or nil if all tasks pass.
// The context passed to the tasks is cancelled as soon as one of them fails.
func Run(ctx context.Context, tasks ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			return task(gctx)
		})
	}
	return g.Wait()
}

// Close returns a func() that closes v.
func Close(v interface{}) func(context.Context) error {
	return func(context.Context) error {
		return common.Close(v)
	}
}
