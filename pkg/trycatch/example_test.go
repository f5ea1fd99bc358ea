package trycatch_test

import (
	"fmt"

	"github.com/mhahnFr/mh-tryCatch/pkg/trycatch"
)

func Example() {
	rt := trycatch.New()

	rt.Try(func() {
		trycatch.ThrowTagged(rt, "int", 42)
	},
		trycatch.CatchTag("float", func(f float64) { fmt.Println("float", f) }),
		trycatch.CatchTag("int", func(i int) { fmt.Println("int", i) }),
	)

	_, active := rt.Active()
	fmt.Println("active after handling:", active)
	// Output:
	// int 42
	// active after handling: false
}

func ExampleDo() {
	rt := trycatch.New()

	e := trycatch.Do(rt, func() {
		trycatch.Throw(rt, "disk full")
	})
	fmt.Println(e.Tag(), e.Value())
	// Output:
	// string disk full
}
