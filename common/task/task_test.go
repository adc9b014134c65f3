package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	. "github.com/xtls/xrelay/common/task"
)

var errTest = errors.New("test")

func TestExecuteParallel(t *testing.T) {
	start := time.Now()
	err := Run(context.Background(),
		func(context.Context) error {
			time.Sleep(time.Millisecond * 200)
			return nil
		},
		func(context.Context) error {
			time.Sleep(time.Millisecond * 200)
			return nil
		})
	assert.NoError(t, err)
	assert.Less(t, time.Since(start), time.Millisecond*390)
}

func TestExecuteFirstErrorCancels(t *testing.T) {
	err := Run(context.Background(),
		func(context.Context) error {
			return errTest
		},
		func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Second * 5):
				return nil
			}
		})
	assert.Equal(t, errTest, err)
}

type closable struct {
	closed bool
}

func (c *closable) Close() error {
	c.closed = true
	return nil
}

func TestClose(t *testing.T) {
	c := new(closable)
	assert.NoError(t, Run(context.Background(), Close(c)))
	assert.True(t, c.closed)
}
