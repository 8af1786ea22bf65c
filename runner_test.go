package main

import (
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/felixge/go-observability-bench/workload"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentRunner(t *testing.T) {
	var setups int32
	p := Path{Name: "go", Label: "Go", New: func() (Func, error) {
		atomic.AddInt32(&setups, 1)
		return func(n uint32) (uint64, error) { return fibonacci(uint64(n)), nil }, nil
	}}

	res, err := ConcurrentRunner(newFibWorkload(p, 15), "go", 50*time.Millisecond, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(3), setups)
	assert.Equal(t, "go", res.Name)
	assert.Equal(t, 3, res.Concurrency)
	assert.Greater(t, res.N, 0)
	assert.Greater(t, res.T, time.Duration(0))
}

func TestConcurrentRunnerSetupError(t *testing.T) {
	p := Path{Name: "broken", New: func() (Func, error) { return nil, errors.New("no runtime") }}
	_, err := ConcurrentRunner(newFibWorkload(p, 1), "broken", time.Millisecond, 2)
	assert.ErrorContains(t, err, "bench broken failed early: setting up broken: no runtime")
}

func TestConcurrentRunnerRunError(t *testing.T) {
	p := Path{Name: "flaky", New: func() (Func, error) {
		return func(uint32) (uint64, error) { return 0, errors.New("bad call") }, nil
	}}
	_, err := ConcurrentRunner(newFibWorkload(p, 1), "flaky", time.Second, 1)
	assert.ErrorContains(t, err, "bad call")
}

func TestConcurrentRunnerConcurrency(t *testing.T) {
	_, err := ConcurrentRunner(func() workload.Workload { return nil }, "x", time.Millisecond, 0)
	assert.Error(t, err)
}

func TestResultToRecord(t *testing.T) {
	r := Result{
		Name:         "js",
		N:            12,
		T:            3 * time.Second,
		CPUTime:      2 * time.Millisecond,
		Profiles:     "cpu",
		ProfileBytes: 512,
		Concurrency:  2,
	}
	assert.Equal(t,
		[]string{"js", "12", "3000000000", "2000000", "cpu", "512", "2", strconv.FormatBool(usingCgotraceback)},
		r.ToRecord())
}

func TestByteCounter(t *testing.T) {
	var bc ByteCounter
	n, err := bc.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	bc.Write([]byte("!!"))
	assert.Equal(t, ByteCounter(7), bc)
}
