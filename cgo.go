//go:build cgo

package main

/*
#include <stdint.h>

uint64_t fibonacci(uint64_t n) {
	if (n <= 1) {
		return n;
	}
	return fibonacci(n - 1) + fibonacci(n - 2);
}
*/
import "C"

func init() {
	register(Path{
		Name:  "c",
		Label: "Native",
		New: func() (Func, error) {
			return cFibonacci, nil
		},
	})
}

func cFibonacci(n uint32) (uint64, error) {
	return uint64(C.fibonacci(C.uint64_t(n))), nil
}
