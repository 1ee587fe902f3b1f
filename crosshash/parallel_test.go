package crosshash

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"
)

// TestFingerprintParallel hashes the same inputs from many goroutines and
// checks every result against a sequential run.
func TestFingerprintParallel(t *testing.T) {
	inputs := make([]Value, 64)
	want := make([]string, len(inputs))
	for i := range inputs {
		inputs[i] = Object{
			"id":    Int(int64(i)),
			"name":  String(fmt.Sprintf("item-%d", i)),
			"ratio": Float(float64(i) / 7),
			"tags":  Array{String("a"), Bool(i%2 == 0), Null{}},
		}
		h, err := Fingerprint(inputs[i])
		if err != nil {
			t.Fatalf("Fingerprint(%d) failed: %v", i, err)
		}
		want[i] = h
	}

	done := make(chan error, 1)
	go func() {
		var g errgroup.Group
		for range 16 {
			g.Go(func() error {
				for i, v := range inputs {
					got, err := Fingerprint(v)
					if err != nil {
						return err
					}
					if got != want[i] {
						return fmt.Errorf("input %d: got %s, want %s", i, got, want[i])
					}
				}
				return nil
			})
		}
		done <- g.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("parallel fingerprinting timed out")
	}
}
