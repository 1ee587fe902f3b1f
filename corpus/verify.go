package corpus

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"slices"
	"sync"

	"github.com/dendrascience/crosshash/crosshash"
	"golang.org/x/sync/errgroup"
)

// Problem is a single verification failure.
type Problem struct {
	Name string // entry name, or MetadataFile
	Err  error
}

func (p Problem) Error() string {
	return p.Name + ": " + p.Err.Error()
}

func (p Problem) Unwrap() error {
	return p.Err
}

// Report is the outcome of Verify.
type Report struct {
	Checked  int // entries expected to hash
	Rejected int // entries expected to fail
	Problems []Problem
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Err joins every problem into one error, or returns nil.
func (r Report) Err() error {
	errs := make([]error, len(r.Problems))
	for i, p := range r.Problems {
		errs[i] = p
	}
	return errors.Join(errs...)
}

// Verify re-runs every manifest entry of src through the canonicalizer
// and checks the stored vector file, its name, its size and the metadata
// counters. Entries are checked in parallel.
func Verify(src Source) Report {
	m := src.Manifest()

	var (
		mu     sync.Mutex
		report Report
	)
	addProblem := func(name string, err error) {
		mu.Lock()
		report.Problems = append(report.Problems, Problem{Name: name, Err: err})
		mu.Unlock()
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for e := range m.Iterate {
		if e.Error != "" {
			report.Rejected++
		} else {
			report.Checked++
		}
		g.Go(func() error {
			if err := verifyEntry(src, e); err != nil {
				addProblem(e.Name, err)
			}
			return nil
		})
	}
	g.Wait()

	if want := m.GenerateMetadata(0); !src.Metadata().Matches(want) {
		addProblem(MetadataFile, fmt.Errorf("%w: got %d vectors, %d errors, %d files, %d bytes; want %d, %d, %d, %d",
			ErrMetadataMismatch,
			src.Metadata().VectorCount, src.Metadata().ErrorCount, src.Metadata().TargetFileCount, src.Metadata().CanonicalSize,
			want.VectorCount, want.ErrorCount, want.TargetFileCount, want.CanonicalSize))
	}

	slices.SortFunc(report.Problems, func(a, b Problem) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return report
}

func verifyEntry(src Source, e Entry) error {
	if e.Error != "" {
		_, err := crosshash.CanonicalJSON([]byte(e.Input))
		if err == nil || err.Error() != e.Error {
			return fmt.Errorf("%w: got %v, want %s", ErrExpectedFailure, err, e.Error)
		}
		return nil
	}

	if err := checkTarget(e.Target, e.Fingerprint); err != nil {
		return err
	}
	body, err := src.ReadVector(e.Target)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingVector, e.Target)
	}
	if err != nil {
		return err
	}
	if int64(len(body)) != e.Size {
		return fmt.Errorf("%w: %d bytes, want %d", ErrSizeMismatch, len(body), e.Size)
	}
	if got := crosshash.HashString(string(body)); got != e.Fingerprint {
		return fmt.Errorf("%w: vector hashes to %s", ErrFingerprintMismatch, got)
	}

	text, err := crosshash.CanonicalJSON([]byte(e.Input))
	if err != nil {
		return err
	}
	if text != string(body) {
		return fmt.Errorf("%w: input canonicalizes to %q", ErrTextMismatch, text)
	}
	again, err := crosshash.CanonicalJSON(body)
	if err != nil {
		return err
	}
	if again != text {
		return fmt.Errorf("%w: vector is not canonical", ErrTextMismatch)
	}
	return nil
}
