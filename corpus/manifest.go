package corpus

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// ManifestFile is the name of the manifest inside a corpus or bundle.
const ManifestFile = "manifest.json"

type (
	Entry struct {
		Name        string    `json:"name"`                  // case name, unique within a corpus
		Fingerprint string    `json:"fingerprint,omitempty"` // MD5 of the canonical text
		Target      string    `json:"target,omitempty"`      // slash separated path of the vector file
		Size        int64     `json:"size"`                  // length of the canonical text in bytes
		Created     time.Time `json:"created"`               // when the entry was stored
		Input       string    `json:"input"`                 // JSON text given to implementations
		Error       string    `json:"error,omitempty"`       // expected error for failing cases
	}
	Manifest struct {
		entries []Entry
		sorted  bool
	}
)

func (m *Manifest) UnmarshalJSON(data []byte) error {
	var aux struct {
		Entries []Entry `json:"entries"`
		Sorted  bool    `json:"sorted"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.entries = aux.Entries
	m.sorted = aux.Sorted
	return nil
}

func (m Manifest) MarshalJSON() ([]byte, error) {
	entries := m.entries
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(struct {
		Entries []Entry `json:"entries"`
		Sorted  bool    `json:"sorted"`
	}{
		Entries: entries,
		Sorted:  m.sorted,
	})
}

func (m Manifest) Iterate(yield func(Entry) bool) {
	for _, entry := range m.entries {
		if !yield(entry) {
			return
		}
	}
}

func (m *Manifest) Add(e Entry) {
	m.sorted = false
	m.entries = append(m.entries, e)
}

// Lookup returns the entry called name. The manifest must be sorted.
func (m Manifest) Lookup(name string) (Entry, bool) {
	i, found := slices.BinarySearchFunc(m.entries, name, func(e Entry, name string) int {
		return strings.Compare(e.Name, name)
	})
	if !found {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Sort orders entries by name.
func (m *Manifest) Sort() {
	slices.SortStableFunc(m.entries, func(a, b Entry) int {
		return strings.Compare(a.Name, b.Name)
	})
	m.sorted = true
}

func (m Manifest) Sorted() bool {
	return m.sorted
}

func (m Manifest) Len() int {
	return len(m.entries)
}

// GetOldestEntryTS returns the earliest creation time in the manifest.
func (m Manifest) GetOldestEntryTS() time.Time {
	var oldest time.Time
	for e := range m.Iterate {
		if oldest.IsZero() || e.Created.Before(oldest) {
			oldest = e.Created
		}
	}
	return oldest
}

// Does the opposite of GetOldestEntryTS
func (m Manifest) GetNewestEntryTS() time.Time {
	var newest time.Time
	for e := range m.Iterate {
		if e.Created.After(newest) {
			newest = e.Created
		}
	}
	return newest
}

// GetVectorCount returns the number of entries expected to hash.
func (m Manifest) GetVectorCount() int {
	n := 0
	for e := range m.Iterate {
		if e.Error == "" {
			n++
		}
	}
	return n
}

// GetErrorCount returns the number of entries expected to fail.
func (m Manifest) GetErrorCount() int {
	return m.Len() - m.GetVectorCount()
}

// GetTargetFileCount returns the number of distinct vector files.
func (m Manifest) GetTargetFileCount() int {
	files := make(map[string]bool)
	for e := range m.Iterate {
		if e.Target != "" {
			files[e.Target] = true
		}
	}
	return len(files)
}

// GetCanonicalSize returns the total canonical text size over all entries.
func (m Manifest) GetCanonicalSize() int64 {
	var total int64
	for e := range m.Iterate {
		total += e.Size
	}
	return total
}

// Cases converts the manifest back into cases. Canonical text is not
// recorded in the manifest and is left empty.
func (m Manifest) Cases() []Case {
	cases := make([]Case, 0, m.Len())
	for e := range m.Iterate {
		cases = append(cases, Case{Name: e.Name, Input: e.Input, Fingerprint: e.Fingerprint, Error: e.Error})
	}
	return cases
}

// Save writes the manifest to path, or to ManifestFile inside path when
// path is a directory.
func (m Manifest) Save(path string) error {
	if !strings.HasSuffix(path, ".json") {
		path = filepath.Join(path, ManifestFile)
	}
	return WriteJSONFile(path, m)
}

// LoadManifest reads a manifest saved with Save.
func LoadManifest(path string) (Manifest, error) {
	if !strings.HasSuffix(path, ".json") {
		path = filepath.Join(path, ManifestFile)
	}
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, err
	}
	defer f.Close()
	return ReadManifest(f)
}

// ReadManifest decodes a manifest from r.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	err := json.NewDecoder(r).Decode(&m)
	return m, err
}
