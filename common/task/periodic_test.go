package task_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/xtls/xrelay/common"
	. "github.com/xtls/xrelay/common/task"
)

func TestPeriodicTaskStop(t *testing.T) {
	var period uint64
	task := &Periodic{
		Interval: time.Millisecond * 200,
		Execute: func() error {
			atomic.AddUint64(&period, 1)
			return nil
		},
	}
	common.Must(task.Start())
	time.Sleep(time.Millisecond * 500)
	common.Must(task.Close())

	got := atomic.LoadUint64(&period)
	if got < 2 || got > 4 {
		t.Fatalf("expected about 3 runs, but got %d", got)
	}

	time.Sleep(time.Millisecond * 500)
	if after := atomic.LoadUint64(&period); after != got {
		t.Fatalf("task kept running after Close: %d -> %d", got, after)
	}
}

func TestPeriodicTaskError(t *testing.T) {
	task := &Periodic{
		Interval: time.Millisecond,
		Execute: func() error {
			return errTest
		},
	}
	if err := task.Start(); err != errTest {
		t.Fatalf("expected errTest, but got %v", err)
	}
}

func TestPeriodicCloseNil(t *testing.T) {
	var task *Periodic
	if err := common.CloseIfExists(task); err != nil {
		t.Fatal(err)
	}
}
