// Package archive unpacks downloaded resources into an install directory.
package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned for archive entries that would land outside the
// destination directory.
var ErrUnsafePath = errors.New("archive: entry escapes destination")

// Kind is the container format of a file, derived from its extension.
type Kind int

const (
	KindNone Kind = iota
	KindZip
	KindTar
	KindTarGz
)

func (k Kind) String() string {
	switch k {
	case KindZip:
		return "zip"
	case KindTar:
		return "tar"
	case KindTarGz:
		return "tar.gz"
	default:
		return "file"
	}
}

// SplitExt splits name into its stem and extension without the leading dot.
// A ".tar.X" suffix is kept together as one extension.
func SplitExt(name string) (base, ext string) {
	parts := strings.Split(name, ".")
	switch {
	case len(parts) > 2 && strings.EqualFold(parts[len(parts)-2], "tar"):
		return strings.Join(parts[:len(parts)-2], "."), strings.Join(parts[len(parts)-2:], ".")
	case len(parts) > 1:
		return strings.Join(parts[:len(parts)-1], "."), parts[len(parts)-1]
	default:
		return name, ""
	}
}

// Detect reports the archive kind of name.
func Detect(name string) Kind {
	_, ext := SplitExt(filepath.Base(name))
	switch strings.ToLower(ext) {
	case "zip":
		return KindZip
	case "tar":
		return KindTar
	case "tar.gz", "tgz":
		return KindTarGz
	default:
		return KindNone
	}
}

// Extract unpacks the archive at path into dst and returns the files written.
// Anything that is not a recognised archive is copied to dst under its own
// base name.
func Extract(path, dst string) ([]string, error) {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, err
	}

	switch Detect(path) {
	case KindZip:
		return extractZip(path, dst)
	case KindTar:
		return extractTarFile(path, dst, false)
	case KindTarGz:
		return extractTarFile(path, dst, true)
	default:
		target := filepath.Join(dst, filepath.Base(path))
		if err := Copy(path, target); err != nil {
			return nil, err
		}
		return []string{target}, nil
	}
}

// Copy copies the regular file src to dst, creating dst's parent directories.
func Copy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	return writeFile(dst, in, info.Mode().Perm())
}

func extractZip(path, dst string) ([]string, error) {
	r, err := zip.OpenReader(path)
	if errors.Is(err, zip.ErrInsecurePath) {
		_ = r.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnsafePath, filepath.Base(path))
	}
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = r.Close() }()

	var written []string
	for _, f := range r.File {
		target, err := safeJoin(dst, f.Name)
		if err != nil {
			return written, err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return written, err
			}
			continue
		}
		if !f.Mode().IsRegular() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return written, err
		}
		err = writeFile(target, rc, f.Mode().Perm())
		_ = rc.Close()
		if err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}

func extractTarFile(path, dst string, gzipped bool) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if gzipped {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", filepath.Base(path), err)
		}
		defer func() { _ = gzr.Close() }()
		r = gzr
	}
	return extractTar(tar.NewReader(r), dst)
}

func extractTar(tr *tar.Reader, dst string) ([]string, error) {
	var written []string
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return written, nil
		}
		// the entry name is checked by safeJoin
		if errors.Is(err, tar.ErrInsecurePath) {
			err = nil
		}
		if err != nil {
			return written, err
		}

		target, err := safeJoin(dst, header.Name)
		if err != nil {
			return written, err
		}

		// links and device entries are skipped
		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return written, err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, os.FileMode(header.Mode).Perm()); err != nil {
				return written, err
			}
			written = append(written, target)
		}
	}
}

func safeJoin(dst, name string) (string, error) {
	name = strings.ReplaceAll(name, `\`, "/")
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	target := filepath.Join(dst, filepath.FromSlash(name))
	rel, err := filepath.Rel(dst, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}

func writeFile(target string, r io.Reader, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
