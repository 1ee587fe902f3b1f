package corpus

import (
	"fmt"
	"os"
	"path/filepath"
)

// Source is a readable corpus: a directory or a bundle.
type Source interface {
	Manifest() Manifest
	Metadata() Metadata
	ReadVector(target string) ([]byte, error)
	Close() error
}

// Write stores cases under root and saves the manifest and metadata next
// to them. seed is recorded in the metadata.
func Write(root string, cases []Case, seed uint64) (Manifest, Metadata, error) {
	store, err := NewStore(root)
	if err != nil {
		return Manifest{}, Metadata{}, err
	}
	return store.Write(cases, seed)
}

// Write stores cases and saves the manifest and metadata in the store root.
func (s *Store) Write(cases []Case, seed uint64) (Manifest, Metadata, error) {
	m, err := s.PutAll(cases)
	if err != nil {
		return Manifest{}, Metadata{}, err
	}
	if err := m.Save(filepath.Join(s.Root, ManifestFile)); err != nil {
		return Manifest{}, Metadata{}, fmt.Errorf("failed to write manifest: %w", err)
	}
	md := m.GenerateMetadata(seed)
	if err := md.Save(filepath.Join(s.Root, MetadataFile)); err != nil {
		return Manifest{}, Metadata{}, fmt.Errorf("failed to write metadata: %w", err)
	}
	return m, md, nil
}

// Dir is a corpus directory opened for reading.
type Dir struct {
	*Store

	manifest Manifest
	metadata Metadata
}

// OpenDir reads the manifest and metadata of the corpus at root.
func OpenDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrExpectedDirectory
	}
	m, err := LoadManifest(filepath.Join(root, ManifestFile))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w in %s", ErrMissingManifest, root)
	}
	if err != nil {
		return nil, err
	}
	if !m.Sorted() {
		m.Sort()
	}
	md, err := LoadMetadata(filepath.Join(root, MetadataFile))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return &Dir{Store: &Store{Root: root}, manifest: m, metadata: md}, nil
}

func (d *Dir) Manifest() Manifest {
	return d.manifest
}

func (d *Dir) Metadata() Metadata {
	return d.metadata
}

func (d *Dir) Close() error {
	return nil
}

// Open opens a corpus directory or, for a path ending in .zip, a bundle.
func Open(path string) (Source, error) {
	if filepath.Ext(path) == BundleExt {
		b, err := OpenBundle(path)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	d, err := OpenDir(path)
	if err != nil {
		return nil, err
	}
	return d, nil
}
