package corpus

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dendrascience/crosshash/version"
)

// MetadataFile is the name of the metadata file inside a corpus or bundle.
const MetadataFile = "metadata.json"

type Metadata struct {
	CanonicalSize   int64     `json:"canonical_size"`
	ErrorCount      int       `json:"error_count"`
	NewestEntryTS   time.Time `json:"newest_entry_ts"`
	OldestEntryTS   time.Time `json:"oldest_entry_ts"`
	Seed            uint64    `json:"seed"`
	TargetFileCount int       `json:"target_file_count"`
	ToolVersion     string    `json:"tool_version"`
	VectorCount     int       `json:"vector_count"`
}

// GetVersion returns the current crosshash version string.
// It delegates to the version package to get the version information.
func GetVersion() string {
	return version.GetVersion()
}

// GenerateMetadata summarizes the manifest. seed records the generator
// seed the random vectors were built from, 0 if there were none.
func (m Manifest) GenerateMetadata(seed uint64) Metadata {
	return Metadata{
		CanonicalSize:   m.GetCanonicalSize(),
		ErrorCount:      m.GetErrorCount(),
		NewestEntryTS:   m.GetNewestEntryTS(),
		OldestEntryTS:   m.GetOldestEntryTS(),
		Seed:            seed,
		TargetFileCount: m.GetTargetFileCount(),
		ToolVersion:     GetVersion(),
		VectorCount:     m.GetVectorCount(),
	}
}

// Matches reports whether the counters in md agree with o. The version,
// seed and timestamps are not compared.
func (md Metadata) Matches(o Metadata) bool {
	return md.CanonicalSize == o.CanonicalSize &&
		md.ErrorCount == o.ErrorCount &&
		md.TargetFileCount == o.TargetFileCount &&
		md.VectorCount == o.VectorCount
}

func (md Metadata) Save(path string) error {
	if !strings.HasSuffix(path, ".json") {
		path = filepath.Join(path, MetadataFile)
	}
	return WriteJSONFile(path, md)
}

// LoadMetadata reads metadata saved with Save.
func LoadMetadata(path string) (Metadata, error) {
	if !strings.HasSuffix(path, ".json") {
		path = filepath.Join(path, MetadataFile)
	}
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer f.Close()
	return ReadMetadata(f)
}

// ReadMetadata decodes metadata from r.
func ReadMetadata(r io.Reader) (Metadata, error) {
	var md Metadata
	err := json.NewDecoder(r).Decode(&md)
	return md, err
}
