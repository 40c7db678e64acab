package spanzip_test

import (
	"fmt"

	"spanzip/spanzip/spanzip"
)

func ExampleEncode() {
	c := spanzip.Encode([]byte("abcdabcd"))
	fmt.Printf("raw: %q\n", c.Raw)
	fmt.Println("tokens:", c.Tokens)

	out, err := c.All()
	if err != nil {
		panic(err)
	}
	fmt.Printf("decoded: %q\n", out)

	// Output:
	// raw: "abcd"
	// tokens: [Literal(0) Literal(1) Literal(2) Literal(3) Run(0,3)]
	// decoded: "abcdabcd"
}

func ExampleCompressed_At() {
	c := spanzip.Encode([]byte("xyzxyz!"))
	for i := 0; ; i++ {
		b, ok, err := c.At(i)
		if err != nil {
			panic(err)
		}
		if !ok {
			break
		}
		fmt.Printf("%d %q\n", i, b)
	}

	// Output:
	// 0 "x"
	// 1 "y"
	// 2 "z"
	// 3 "xyz"
	// 4 "!"
}
