package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// RunBenchmark calls fn(input) iterations times and reports the wall-clock
// time taken by the whole loop. Results are thrown away. The loop stops at
// the first error.
func RunBenchmark(iterations int, input uint32, fn Func) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, err := fn(input); err != nil {
			return time.Since(start), errors.Wrapf(err, "iteration %d", i)
		}
	}
	return time.Since(start), nil
}

// Ratio is how many whole times fast fits into slow. A fast duration too
// short for the clock to see gives +Inf.
func Ratio(fast, slow time.Duration) float64 {
	if fast <= 0 {
		return math.Inf(1)
	}
	if slow <= 0 {
		return 0
	}
	return math.Floor(float64(slow) / float64(fast))
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

func formatRatio(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// comparison times two paths one after the other and writes the report.
type comparison struct {
	iterations int
	input      uint32
	verify     bool
}

func (c comparison) run(w io.Writer, fast, slow Path) error {
	fastFn, err := fast.New()
	if err != nil {
		return errors.Wrapf(err, "setting up %s", fast.Name)
	}
	slowFn, err := slow.New()
	if err != nil {
		return errors.Wrapf(err, "setting up %s", slow.Name)
	}

	if c.verify {
		if err := agree(c.input, fast, fastFn, slow, slowFn); err != nil {
			return err
		}
	}

	fastTime, err := c.time(w, fast, fastFn)
	if err != nil {
		return err
	}
	slowTime, err := c.time(w, slow, slowFn)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s is faster than %s about %s times.\n", fast.Label, slow.Label, formatRatio(Ratio(fastTime, slowTime)))
	return nil
}

func (c comparison) time(w io.Writer, p Path, fn Func) (time.Duration, error) {
	fmt.Fprintf(w, "Calling %s fibonacci function\n", p.Label)
	d, err := RunBenchmark(c.iterations, c.input, fn)
	if err != nil {
		return 0, errors.Wrapf(err, "benchmarking %s", p.Name)
	}
	fmt.Fprintf(w, "%s time: %s\n", p.Label, formatSeconds(d))
	return d, nil
}

// agree checks both paths compute the same fib(n) before anything is timed.
func agree(n uint32, a Path, aFn Func, b Path, bFn Func) error {
	x, err := aFn(n)
	if err != nil {
		return errors.Wrapf(err, "%s", a.Name)
	}
	y, err := bFn(n)
	if err != nil {
		return errors.Wrapf(err, "%s", b.Name)
	}
	if x != y {
		return errors.Errorf("paths disagree on fibonacci(%d): %s=%d, %s=%d", n, a.Name, x, b.Name, y)
	}
	return nil
}
