package corpus

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testManifest() Manifest {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var m Manifest
	m.Add(Entry{Name: "b", Fingerprint: "h1", Target: "1/00000/1-00000-h1.json", Size: 3, Created: base.Add(2 * time.Hour), Input: "[1]"})
	m.Add(Entry{Name: "a", Fingerprint: "h1", Target: "1/00000/1-00000-h1.json", Size: 3, Created: base, Input: "[1.0]"})
	m.Add(Entry{Name: "c", Fingerprint: "h2", Target: "2/00000/2-00000-h2.json", Size: 2, Created: base.Add(time.Hour), Input: "{}"})
	m.Add(Entry{Name: "d", Created: base.Add(3 * time.Hour), Input: "9007199254740992", Error: "ERROR_UNSAFE_NUMBER: 9007199254740992"})
	return m
}

func TestManifestCounts(t *testing.T) {
	m := testManifest()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		got  any
		want any
	}{
		{name: "len", got: m.Len(), want: 4},
		{name: "vectors", got: m.GetVectorCount(), want: 3},
		{name: "errors", got: m.GetErrorCount(), want: 1},
		{name: "target files", got: m.GetTargetFileCount(), want: 2},
		{name: "canonical size", got: m.GetCanonicalSize(), want: int64(8)},
		{name: "oldest", got: m.GetOldestEntryTS(), want: base},
		{name: "newest", got: m.GetNewestEntryTS(), want: base.Add(3 * time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestManifestEmpty(t *testing.T) {
	var m Manifest
	if !m.GetOldestEntryTS().IsZero() || !m.GetNewestEntryTS().IsZero() {
		t.Error("empty manifest should have zero timestamps")
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) != `{"entries":[],"sorted":false}` {
		t.Errorf("Marshal() = %s", b)
	}
}

func TestManifestSortAndLookup(t *testing.T) {
	m := testManifest()
	if m.Sorted() {
		t.Fatal("manifest should not be sorted after Add")
	}
	m.Sort()
	if !m.Sorted() {
		t.Fatal("manifest should be sorted after Sort")
	}
	var names []string
	for e := range m.Iterate {
		names = append(names, e.Name)
	}
	if got := strings.Join(names, ","); got != "a,b,c,d" {
		t.Errorf("sorted names = %s, want a,b,c,d", got)
	}

	e, ok := m.Lookup("c")
	if !ok || e.Fingerprint != "h2" {
		t.Errorf("Lookup(c) = %+v, %v", e, ok)
	}
	if _, ok := m.Lookup("zz"); ok {
		t.Error("Lookup(zz) found an entry")
	}
}

func TestManifestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	m := testManifest()
	m.Sort()
	if err := m.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadManifest(filepath.Join(dir, ManifestFile))
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	if loaded.Len() != m.Len() || !loaded.Sorted() {
		t.Fatalf("LoadManifest() len %d sorted %v", loaded.Len(), loaded.Sorted())
	}
	for want := range m.Iterate {
		got, ok := loaded.Lookup(want.Name)
		if !ok || got.Target != want.Target || got.Error != want.Error || !got.Created.Equal(want.Created) {
			t.Errorf("entry %s = %+v, want %+v", want.Name, got, want)
		}
	}
}

func TestManifestCases(t *testing.T) {
	m := testManifest()
	cases := m.Cases()
	if len(cases) != m.Len() {
		t.Fatalf("Cases() len = %d", len(cases))
	}
	if !cases[3].Failing() || cases[0].Failing() {
		t.Errorf("Cases() failing flags wrong: %+v", cases)
	}
}

func TestMetadata(t *testing.T) {
	m := testManifest()
	md := m.GenerateMetadata(42)
	if md.VectorCount != 3 || md.ErrorCount != 1 || md.TargetFileCount != 2 || md.CanonicalSize != 8 {
		t.Errorf("GenerateMetadata() = %+v", md)
	}
	if md.Seed != 42 {
		t.Errorf("Seed = %d, want 42", md.Seed)
	}
	if md.ToolVersion == "" {
		t.Error("ToolVersion is empty")
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(md); err != nil {
		t.Fatal(err)
	}
	back, err := ReadMetadata(&buf)
	if err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	if !back.Matches(md) {
		t.Errorf("ReadMetadata() = %+v, want %+v", back, md)
	}

	other := md
	other.VectorCount++
	if other.Matches(md) {
		t.Error("Matches() ignored a changed vector count")
	}
}

func TestMetadataSaveLoad(t *testing.T) {
	dir := t.TempDir()
	md := testManifest().GenerateMetadata(7)
	if err := md.Save(dir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := LoadMetadata(dir)
	if err != nil {
		t.Fatalf("LoadMetadata() error = %v", err)
	}
	if !loaded.Matches(md) || loaded.Seed != 7 {
		t.Errorf("LoadMetadata() = %+v, want %+v", loaded, md)
	}
}
