package main

import (
	"strconv"
	"syscall"
	"time"

	"github.com/felixge/go-observability-bench/workload"
	"github.com/pkg/errors"
)

var usingCgotraceback bool

// ByteCounter is an io.Writer which records how many bytes have been written.
type ByteCounter int64

func (b *ByteCounter) Write(p []byte) (int, error) {
	*b += ByteCounter(len(p))
	return len(p), nil
}

// fibWorkload runs one call path as a go-observability-bench workload.
type fibWorkload struct {
	path  Path
	input uint32
	fn    Func
}

var _ workload.Workload = (*fibWorkload)(nil)

func newFibWorkload(p Path, input uint32) func() workload.Workload {
	return func() workload.Workload { return &fibWorkload{path: p, input: input} }
}

func (w *fibWorkload) Setup() error {
	fn, err := w.path.New()
	if err != nil {
		return errors.Wrapf(err, "setting up %s", w.path.Name)
	}
	w.fn = fn
	return nil
}

func (w *fibWorkload) Run() error {
	_, err := w.fn(w.input)
	return err
}

// Result is the information collected after running a benchmark.
// Modeled after testing.BenchmarkResult
type Result struct {
	// Name is the call path, e.g. c or js
	Name string
	// N is the number of iterations
	N int
	// T is the total elapsed time
	T time.Duration
	// CPUTime is the total CPU time, including user and system time
	CPUTime time.Duration
	// Profiles is the profile which was enabled, or none
	Profiles string
	// ProfileBytes is how much profiling data was recorded.
	ProfileBytes int64
	// Concurrency is how many goroutines were running the benchmark
	Concurrency int
}

const csvHeader = "name,iters,ns,cpu-ns,profiles,profile-bytes,concurrency,using-cgotraceback"

// ToRecord encodes the Result as a CSV record
func (r Result) ToRecord() []string {
	return []string{
		r.Name,
		strconv.FormatInt(int64(r.N), 10),
		strconv.FormatInt(r.T.Nanoseconds(), 10),
		strconv.FormatInt(r.CPUTime.Nanoseconds(), 10),
		r.Profiles,
		strconv.FormatInt(r.ProfileBytes, 10),
		strconv.FormatInt(int64(r.Concurrency), 10),
		strconv.FormatBool(usingCgotraceback),
	}
}

// ConcurrentRunner starts concurrency goroutines, each with its own workload
// from newWorkload, and calls Run on them until the given duration has
// elapsed. Returns a result with the timing and iteration information
// populated. Any goroutine failing fails the whole run.
func ConcurrentRunner(newWorkload func() workload.Workload, name string, duration time.Duration, concurrency int) (Result, error) {
	if concurrency < 1 {
		return Result{}, errors.Errorf("concurrency must be at least 1, got %d", concurrency)
	}
	done := make(chan struct{})
	t := time.AfterFunc(duration, func() { close(done) })
	defer t.Stop()

	type runInfo struct {
		iters   int
		elapsed time.Duration
		err     error
	}
	ch := make(chan runInfo, concurrency)
	run := func() {
		var info runInfo
		w := newWorkload()
		if err := w.Setup(); err != nil {
			info.err = err
			ch <- info
			return
		}
		for {
			start := time.Now()
			if err := w.Run(); err != nil {
				info.err = err
				ch <- info
				return
			}
			info.elapsed += time.Since(start)
			info.iters++
			select {
			case <-done:
				ch <- info
				return
			default:
			}
		}
	}
	before := CPURusage()
	for i := 0; i < concurrency; i++ {
		go run()
	}
	res := Result{
		Name:        name,
		Concurrency: concurrency,
	}
	var err error
	for i := 0; i < concurrency; i++ {
		info := <-ch
		res.N += info.iters
		res.T += info.elapsed
		if info.err != nil && err == nil {
			err = errors.Wrapf(info.err, "bench %s failed early", name)
		}
	}
	res.CPUTime = CPURusage() - before
	return res, err
}

// CPURusage reports the total elapsed CPU time scheduled to the process,
// including user and system time.
func CPURusage() time.Duration {
	var r syscall.Rusage
	syscall.Getrusage(0, &r)
	return tvtotd(r.Stime) + tvtotd(r.Utime)
}

func tvtotd(t syscall.Timeval) time.Duration {
	return time.Duration(t.Nano())
}
