package main

import (
	"github.com/dop251/goja"
	"github.com/pkg/errors"
)

const jsSource = `
function fibonacci(n) {
	if (n <= 1) {
		return n;
	}
	return fibonacci(n - 1) + fibonacci(n - 2);
}
`

func init() {
	register(Path{
		Name:  "js",
		Label: "Interpreted",
		New:   newJSFibonacci,
	})
}

// newJSFibonacci evaluates jsSource in a fresh goja runtime and returns a Func
// calling into it. Every Func owns its runtime.
func newJSFibonacci() (Func, error) {
	vm := goja.New()
	if _, err := vm.RunString(jsSource); err != nil {
		return nil, errors.Wrap(err, "evaluating fibonacci script")
	}
	fn, ok := goja.AssertFunction(vm.Get("fibonacci"))
	if !ok {
		return nil, errors.New("fibonacci script does not define a function")
	}
	return func(n uint32) (uint64, error) {
		v, err := fn(goja.Undefined(), vm.ToValue(n))
		if err != nil {
			return 0, errors.Wrapf(err, "fibonacci(%d)", n)
		}
		return uint64(v.ToInteger()), nil
	}, nil
}
