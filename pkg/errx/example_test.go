package errx_test

import (
	"errors"
	"fmt"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

func Example() {
	errStorage := errors.New("storage exhausted")

	err := errx.WrapAllocation("failed to allocate 64 bytes for exception", errStorage).
		WithContext("tag", "buffer").
		WithContext("size", 64)

	if errors.Is(err, errStorage) {
		fmt.Println("allocator refused the request")
	}
	fmt.Println(errx.Diagnostic("trycatch", err))
	// Output:
	// allocator refused the request
	// trycatch: failed to allocate 64 bytes for exception
}
