package corpus

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/taigrr/colorhash"
)

// VectorExt is the extension of every vector file.
const VectorExt = ".json"

// Store writes vectors into a content-addressed directory tree.
type Store struct {
	Root string

	// Subbuckets spreads each bucket over this many subdirectories.
	// Values below 2 keep every vector in subbucket 0.
	// recommendation for ext3 is no more than 32000 files per directory
	// so raise this once a corpus passes a few million vectors.
	Subbuckets int
}

// NewStore creates root if needed and returns a Store writing into it.
func NewStore(root string) (*Store, error) {
	if info, err := os.Stat(root); err == nil && !info.IsDir() {
		return nil, ErrExpectedDirectory
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create corpus directory %s: %w", root, err)
	}
	return &Store{Root: root}, nil
}

// TargetFor returns the slash separated path, relative to the store root,
// of the vector file for fingerprint.
func (s *Store) TargetFor(fingerprint string) string {
	subbucket := 0
	if s.Subbuckets > 1 {
		subbucket = GetSubbucketFromHash(fingerprint) % s.Subbuckets
	}
	hashPath := HashPathFromHashWithSubbucket(fingerprint, subbucket)
	dir, _ := DirFromHashPath(hashPath)
	return path.Join(dir, hashPath+VectorExt)
}

// Put stores the canonical text of c and returns its manifest entry.
// Failing cases have no canonical text and produce an entry without a
// target. Identical texts share one file; an existing file is kept only
// when its contents still hash to the fingerprint.
func (s *Store) Put(c Case) (Entry, error) {
	e := Entry{
		Name:    c.Name,
		Input:   c.Input,
		Error:   c.Error,
		Created: time.Now().UTC(),
	}
	if c.Failing() {
		return e, nil
	}
	e.Fingerprint = c.Fingerprint
	e.Target = s.TargetFor(c.Fingerprint)
	e.Size = int64(len(c.Canonical))

	full := filepath.Join(s.Root, filepath.FromSlash(e.Target))
	if hash, err := GetFileHash(full); err == nil && hash == e.Fingerprint {
		return e, nil
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return Entry{}, err
	}
	if err := writeFileAtomic(full, []byte(c.Canonical)); err != nil {
		return Entry{}, fmt.Errorf("failed to write vector %s: %w", c.Name, err)
	}
	return e, nil
}

// ReadVector returns the contents of the vector file at target.
func (s *Store) ReadVector(target string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.Root, filepath.FromSlash(target)))
}

type putResult struct {
	entry Entry
	err   error
}

func putWorker(s *Store, cases <-chan Case, results chan<- putResult, wg *sync.WaitGroup) {
	defer wg.Done()

	for c := range cases {
		e, err := s.Put(c)
		results <- putResult{entry: e, err: err}
	}
}

// PutAll stores every case using one worker per CPU and returns the sorted
// manifest. The first write error is returned after all workers finish.
func (s *Store) PutAll(cases []Case) (Manifest, error) {
	m := Manifest{entries: make([]Entry, 0, len(cases))}
	caseChan := make(chan Case, runtime.NumCPU())
	resultChan := make(chan putResult, runtime.NumCPU())
	var wg sync.WaitGroup

	// Start workers
	wg.Add(runtime.NumCPU())
	for range runtime.NumCPU() {
		go putWorker(s, caseChan, resultChan, &wg)
	}

	// Feed cases
	go func() {
		defer close(caseChan)
		for _, c := range cases {
			caseChan <- c
		}
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var firstErr error
	for r := range resultChan {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			log.Printf("error storing vector: %s", r.err)
			continue
		}
		m.Add(r.entry)
	}
	if firstErr != nil {
		return Manifest{}, firstErr
	}
	m.Sort()
	return m, nil
}

func writeFileAtomic(name string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(name), ".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, name)
}

// WriteJSONFile writes any value as indented JSON to the specified file path.
func WriteJSONFile(name string, v any) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// HashFromHashPath extracts the fingerprint from a hash path or vector
// file name. It expects "bucket-subbucket-hash", optionally with a
// directory and the .json extension.
func HashFromHashPath(p string) (string, error) {
	base := strings.TrimSuffix(path.Base(filepath.ToSlash(p)), VectorExt)
	parts := strings.Split(base, "-")
	if len(parts) != 3 {
		return "", ErrInvalidHashPath
	}
	return parts[2], nil
}

// HashPathFromHashWithSubbucket generates the content-addressed name
// "bucket-subbucket-hash" (e.g., "742-00003-abc123...") used for vector
// files, without the extension. The bucket is a color hash mod 1000.
func HashPathFromHashWithSubbucket(hash string, subbucket int) string {
	return fmt.Sprintf("%d-%05d-%s", BucketFromHash(hash), subbucket, hash)
}

// BucketFromHash returns the primary bucket, 0-999, for hash.
func BucketFromHash(hash string) int {
	bucket := int(colorhash.HashString(hash) % 1000)
	if bucket < 0 {
		// keep "-" free for the hash path separator
		bucket = -bucket
	}
	return bucket
}

// GetSubbucketFromHash returns a secondary subbucket index based on the hash.
// Returns a value from 0-99999.
func GetSubbucketFromHash(hash string) int {
	// Use the last 5 characters of the hash as the secondary bucket
	if len(hash) < 5 {
		return 0
	}
	var subbucket int
	for i := len(hash) - 5; i < len(hash); i++ {
		subbucket = subbucket*16 + hexCharToInt(hash[i])
	}
	return subbucket % 100000
}

// hexCharToInt converts a hex character to its integer value.
func hexCharToInt(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c - 'a' + 10)
	case c >= 'A' && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return 0
	}
}

// DirFromHashPath returns the slash separated directory, bucket/subbucket,
// that holds the vector file for a hash path.
func DirFromHashPath(p string) (string, error) {
	parts := strings.Split(strings.TrimSuffix(path.Base(filepath.ToSlash(p)), VectorExt), "-")
	if len(parts) != 3 {
		return "", ErrInvalidHashPath
	}
	return path.Join(parts[0], parts[1]), nil
}

// GetFileHash returns the MD5 of a file as a hex string. For a vector
// file this is its fingerprint.
func GetFileHash(name string) (hash string, err error) {
	info, err := os.Stat(name)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(name)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return GetHash(file)
}

// GetHash calculates the MD5 hash of data from an io.Reader.
// It returns the hash as a hexadecimal string.
func GetHash(r io.Reader) (string, error) {
	h := md5.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// checkTarget reports whether target is the path Store would pick for
// fingerprint under any subbucket.
func checkTarget(target, fingerprint string) error {
	hash, err := HashFromHashPath(target)
	if err != nil {
		return errors.Join(ErrTargetMismatch, err)
	}
	if hash != fingerprint {
		return fmt.Errorf("%w: %s", ErrTargetMismatch, target)
	}
	dir, err := DirFromHashPath(target)
	if err != nil {
		return errors.Join(ErrTargetMismatch, err)
	}
	bucket, _, _ := strings.Cut(dir, "/")
	if bucket != fmt.Sprint(BucketFromHash(fingerprint)) || path.Dir(target) != dir {
		return fmt.Errorf("%w: %s", ErrTargetMismatch, target)
	}
	return nil
}
