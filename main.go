// Command fib-bench times a naive recursive Fibonacci computed by a native C
// function called through cgo against the same function run by an embedded
// JavaScript interpreter, and reports how many times faster the native one
// is. A plain Go path is available too, so any two paths can be compared.
//
// With no flags it runs fibonacci(30) fifty times on each path and prints the
// two wall-clock times and their ratio.
//
// With -duration it switches to the CSV output of the profiler overhead
// benchmark it grew out of: each path runs for the given time on
// -concurrency goroutines and one record per path and repeat is printed,
// ready for read_csv or sqlite3's .import.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/pkg/profile"
)

type config struct {
	iterations  int
	input       uint
	native      string
	interpreted string
	verify      bool

	duration    string
	concurrency int
	repeat      int
	header      bool
	profiles    string

	profile     string
	profilePath string
}

func main() {
	var cfg config
	flag.IntVar(&cfg.iterations, "iterations", 50, "how many times to call fibonacci on each path")
	flag.UintVar(&cfg.input, "input", 30, "which fibonacci number to compute")
	flag.StringVar(&cfg.native, "native", defaultNative(), "path to report as the fast one ("+strings.Join(pathNames(), ", ")+")")
	flag.StringVar(&cfg.interpreted, "interpreted", "js", "path to report as the slow one")
	flag.BoolVar(&cfg.verify, "verify", true, "check both paths agree before timing them")
	flag.StringVar(&cfg.duration, "duration", "", "run each path for this long (in Go time.Duration format) and print CSV")
	flag.IntVar(&cfg.concurrency, "concurrency", 1, "how many concurrent goroutines to run each path with -duration")
	flag.IntVar(&cfg.repeat, "repeat", 1, "how many times to repeat the -duration benchmark")
	flag.BoolVar(&cfg.header, "header", true, "print CSV header")
	flag.StringVar(&cfg.profiles, "profiles", "none", "profiles to count the bytes of with -duration (none or cpu)")
	flag.StringVar(&cfg.profile, "profile", "none", "write a profile of the whole run (none, cpu or mem)")
	flag.StringVar(&cfg.profilePath, "profile-path", ".", "directory for -profile output")
	flag.Parse()

	if err := run(cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "fib-bench: %s\n", err)
		os.Exit(1)
	}
}

func run(cfg config, stdout io.Writer) error {
	if cfg.input > 1<<32-1 {
		return errors.Errorf("input %d out of range", cfg.input)
	}
	fast, err := lookupPath(cfg.native)
	if err != nil {
		return err
	}
	slow, err := lookupPath(cfg.interpreted)
	if err != nil {
		return err
	}

	switch cfg.profile {
	case "", "none":
	case "cpu":
		if strings.Contains(cfg.profiles, "cpu") {
			return errors.New("-profile cpu and -profiles cpu both need the CPU profiler")
		}
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(cfg.profilePath), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(cfg.profilePath), profile.Quiet).Stop()
	default:
		return errors.Errorf("unrecognized profile %q", cfg.profile)
	}

	if cfg.duration == "" {
		c := comparison{iterations: cfg.iterations, input: uint32(cfg.input), verify: cfg.verify}
		return c.run(stdout, fast, slow)
	}

	d, err := time.ParseDuration(cfg.duration)
	if err != nil {
		return errors.Wrap(err, "bad time format")
	}
	return timed(cfg, d, stdout, []Path{fast, slow})
}

func timed(cfg config, d time.Duration, stdout io.Writer, ps []Path) error {
	enabledProfs := strings.Split(cfg.profiles, ";")
	sort.Strings(enabledProfs)
	profiles := strings.Join(enabledProfs, ";")
	for _, prof := range enabledProfs {
		switch prof {
		case "", "none", "cpu":
		default:
			return errors.Errorf("unrecognized profile %q", prof)
		}
	}

	if cfg.header {
		fmt.Fprintln(stdout, csvHeader)
	}
	for i := 0; i < cfg.repeat; i++ {
		for _, p := range ps {
			bc := new(ByteCounter)
			for _, prof := range enabledProfs {
				if prof == "cpu" {
					if err := pprof.StartCPUProfile(bc); err != nil {
						return errors.Wrap(err, "starting CPU profile")
					}
				}
			}

			res, err := ConcurrentRunner(newFibWorkload(p, uint32(cfg.input)), p.Name, d, cfg.concurrency)

			for _, prof := range enabledProfs {
				if prof == "cpu" {
					pprof.StopCPUProfile()
				}
			}
			if err != nil {
				return err
			}
			res.Profiles = profiles
			res.ProfileBytes = int64(*bc)
			fmt.Fprintln(stdout, strings.Join(res.ToRecord(), ","))
		}
	}
	return nil
}
