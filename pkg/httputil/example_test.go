package httputil_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/treeoflife/pkg/httputil"
)

func ExampleBackoff_Do() {
	b := httputil.Backoff{Attempts: 3, Initial: time.Millisecond}
	attempts := 0
	err := b.Do(context.Background(), func(context.Context) error {
		attempts++
		if attempts < 3 {
			return httputil.Temporary(errors.New("502 bad gateway"))
		}
		return nil
	})
	fmt.Println("Attempts:", attempts)
	fmt.Println("Error:", err)
	// Output:
	// Attempts: 3
	// Error: <nil>
}

func ExampleBackoff_Do_permanent() {
	attempts := 0
	err := httputil.DefaultBackoff.Do(context.Background(), func(context.Context) error {
		attempts++
		return errors.New("404 not found")
	})
	fmt.Println("Attempts:", attempts)
	fmt.Println("Error:", err)
	// Output:
	// Attempts: 1
	// Error: 404 not found
}
