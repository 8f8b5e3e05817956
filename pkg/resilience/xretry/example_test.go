package xretry_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omeyang/xsock/pkg/resilience/xretry"
)

var errRefused = errors.New("connection refused")

func ExampleDo() {
	attempts := 0
	err := xretry.Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errRefused
		}
		return nil
	},
		xretry.Attempts(5),
		xretry.Delay(time.Millisecond),
		xretry.DelayType(xretry.FixedDelay),
		xretry.OnlyFor(errRefused),
	)
	fmt.Println(attempts, err)
	// Output: 3 <nil>
}
