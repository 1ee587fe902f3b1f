package corpus

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BundleExt is the extension of a zipped corpus.
const BundleExt = ".zip"

// WriteBundle zips the corpus directory root into dest. The manifest and
// metadata are written first so readers can stream the archive.
func WriteBundle(root, dest string) (err error) {
	if filepath.Ext(dest) != BundleExt {
		return ErrNotBundleExtension
	}
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrExpectedDirectory
	}
	if _, err := os.Stat(filepath.Join(root, ManifestFile)); err != nil {
		return fmt.Errorf("%w in %s", ErrMissingManifest, root)
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return err
	}

	os.Remove(dest)
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	w := zip.NewWriter(file)
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	for _, name := range []string{ManifestFile, MetadataFile} {
		if err := addToZip(w, filepath.Join(root, name), name); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".tmp-") {
			return nil
		}
		if abs, _ := filepath.Abs(p); abs == absDest {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		rel = filepath.ToSlash(rel)
		if rel == ManifestFile || rel == MetadataFile {
			return nil
		}
		return addToZip(w, p, rel)
	})
}

func addToZip(w *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()
	writer, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, f)
	return err
}

// Bundle is an open zipped corpus.
type Bundle struct {
	Path string

	zrc      *zip.ReadCloser
	files    map[string]*zip.File
	manifest Manifest
	metadata Metadata
}

// OpenBundle opens a bundle written by WriteBundle and reads its manifest
// and metadata. The caller must Close it.
func OpenBundle(path string) (*Bundle, error) {
	if filepath.Ext(path) != BundleExt {
		return nil, ErrNotBundleExtension
	}
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	b := &Bundle{Path: path, zrc: zrc, files: make(map[string]*zip.File, len(zrc.File))}
	for _, f := range zrc.File {
		b.files[f.Name] = f
	}

	mf, ok := b.files[ManifestFile]
	if !ok {
		zrc.Close()
		return nil, fmt.Errorf("%w in %s", ErrMissingManifest, path)
	}
	if err := decodeZipFile(mf, func(r io.Reader) (err error) {
		b.manifest, err = ReadManifest(r)
		return err
	}); err != nil {
		zrc.Close()
		return nil, err
	}
	if !b.manifest.Sorted() {
		b.manifest.Sort()
	}

	if f, ok := b.files[MetadataFile]; ok {
		if err := decodeZipFile(f, func(r io.Reader) (err error) {
			b.metadata, err = ReadMetadata(r)
			return err
		}); err != nil {
			zrc.Close()
			return nil, err
		}
	}
	return b, nil
}

func decodeZipFile(f *zip.File, decode func(io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	return decode(bufio.NewReader(rc))
}

func (b *Bundle) Manifest() Manifest {
	return b.manifest
}

func (b *Bundle) Metadata() Metadata {
	return b.metadata
}

// ReadVector returns the vector file at target. A missing file is reported
// as fs.ErrNotExist.
func (b *Bundle) ReadVector(target string) ([]byte, error) {
	f, ok := b.files[target]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: target, Err: fs.ErrNotExist}
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// CountFiles returns the number of files in the bundle, including the
// manifest and metadata.
func (b *Bundle) CountFiles() int {
	return len(b.zrc.File)
}

func (b *Bundle) Close() error {
	return b.zrc.Close()
}
