package main

import (
	"sort"

	"github.com/pkg/errors"
)

// Func computes the nth Fibonacci number along one call path.
type Func func(n uint32) (uint64, error)

// Path is a named way of computing Fibonacci numbers. New builds the state a
// single goroutine needs to call the path; the result must not be shared
// between goroutines.
type Path struct {
	// Name is what the path is called on the command line, e.g. c or js
	Name string
	// Label is how the path is described in the report
	Label string
	New   func() (Func, error)
}

var paths = map[string]Path{}

func register(p Path) {
	if _, dup := paths[p.Name]; dup {
		panic("duplicate path " + p.Name)
	}
	paths[p.Name] = p
}

func lookupPath(name string) (Path, error) {
	p, ok := paths[name]
	if !ok {
		return Path{}, errors.Errorf("unrecognized path %q (have %v)", name, pathNames())
	}
	return p, nil
}

func pathNames() []string {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultNative is the fastest path compiled into the binary. Without cgo
// that's plain Go.
func defaultNative() string {
	if _, ok := paths["c"]; ok {
		return "c"
	}
	return "go"
}
