// pkg/fetch/extract.go
package fetch

import (
	"archive/tar"
	"bufio"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"
)

// decompressXZ decompresses an xz file next to itself and returns the
// decompressed path.
func decompressXZ(src string) (string, error) {
	inputFile, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening source file: %w", err)
	}
	defer inputFile.Close()

	xzReader, err := xz.NewReader(inputFile)
	if err != nil {
		return "", fmt.Errorf("creating xz reader: %w", err)
	}

	dst := strings.TrimSuffix(src, ".xz")
	if dst == src {
		dst = src + ".out"
	}

	outFile, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, xzReader); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("decompressing data: %w", err)
	}

	return dst, nil
}

// extractTarXZ unpacks an xz-compressed tarball into destPath,
// stripping the single top-level directory.
func extractTarXZ(archivePath, destPath string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	xzReader, err := xz.NewReader(bufio.NewReader(f))
	if err != nil {
		return fmt.Errorf("creating xz reader: %w", err)
	}

	tarReader := tar.NewReader(xzReader)
	for {
		hdr, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}

		rel := stripTopLevel(hdr.Name)
		if rel == "" {
			continue
		}
		targetPath, err := securePath(destPath, rel)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
		case tar.TypeSymlink:
			if err := secureLink(destPath, targetPath, hdr.Linkname); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(hdr.Linkname, targetPath); err != nil {
				return fmt.Errorf("creating symlink: %w", err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}

			perm := os.FileMode(0644)
			if hdr.FileInfo().Mode()&0111 != 0 {
				perm = 0755
			}

			outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
			if err != nil {
				return fmt.Errorf("creating file %s: %w", targetPath, err)
			}

			_, err = io.Copy(outFile, tarReader)
			outFile.Close()
			if err != nil {
				return fmt.Errorf("writing file: %w", err)
			}

		default:
			// Ignore other types
		}
	}

	return nil
}

// extractNar unpacks an uncompressed NAR archive into destPath
func extractNar(narPath, destPath string) error {
	f, err := os.Open(narPath)
	if err != nil {
		return fmt.Errorf("opening NAR file: %w", err)
	}
	defer f.Close()

	narReader := nar.NewReader(bufio.NewReader(f))

	for {
		hdr, err := narReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading NAR entry: %w", err)
		}

		targetPath, err := securePath(destPath, hdr.Path)
		if err != nil {
			return err
		}

		switch hdr.Mode.Type() {
		case os.ModeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
		case os.ModeSymlink:
			if err := secureLink(destPath, targetPath, hdr.LinkTarget); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(hdr.LinkTarget, targetPath); err != nil {
				return fmt.Errorf("creating symlink: %w", err)
			}
		case 0: // Regular file
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}

			perm := os.FileMode(0644)
			if hdr.Mode&0111 != 0 {
				perm = 0755
			}

			outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
			if err != nil {
				return fmt.Errorf("creating file %s: %w", targetPath, err)
			}

			written, err := io.Copy(outFile, narReader)
			outFile.Close()
			if err != nil {
				return fmt.Errorf("writing file: %w", err)
			}
			if written != hdr.Size {
				return fmt.Errorf("size mismatch extracting %s", hdr.Path)
			}

		default:
			// Ignore other types
		}
	}

	return nil
}

// verifyNarHash checks the sha256 of an uncompressed NAR archive
// against a pin hash of the form "sha256-<base64>".
func verifyNarHash(narPath, expected string) error {
	encoded, ok := strings.CutPrefix(expected, "sha256-")
	if !ok {
		return fmt.Errorf("unsupported hash format '%s'", expected)
	}

	f, err := os.Open(narPath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return fmt.Errorf("computing hash: %w", err)
	}

	actual := base64.StdEncoding.EncodeToString(hasher.Sum(nil))
	if actual != encoded {
		return fmt.Errorf("%w: expected sha256-%s, got sha256-%s", ErrHashMismatch, encoded, actual)
	}

	return nil
}

// stripTopLevel removes the archive's single wrapping directory from
// an entry name.
func stripTopLevel(name string) string {
	name = strings.TrimPrefix(name, "./")
	_, rest, ok := strings.Cut(name, "/")
	if !ok {
		return ""
	}
	return rest
}

// secureLink validates a symlink entry's target, rejecting absolute
// targets and relative targets that resolve outside dest.
func secureLink(dest, entryPath, linkname string) error {
	if filepath.IsAbs(linkname) {
		return fmt.Errorf("symlink '%s' has absolute target '%s'", entryPath, linkname)
	}
	resolved := filepath.Join(filepath.Dir(entryPath), linkname)
	if resolved != dest && !strings.HasPrefix(resolved, dest+string(os.PathSeparator)) {
		return fmt.Errorf("symlink '%s' target '%s' escapes destination", entryPath, linkname)
	}
	return nil
}

// securePath joins an archive entry path under dest, rejecting entries
// that would escape it.
func securePath(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry '%s' escapes destination", name)
	}
	return target, nil
}
