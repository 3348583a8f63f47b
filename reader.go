package sdtid

import (
	"fmt"
	"io"
	"os"

	"github.com/absfs/absfs"
)

// ReadFile reads and parses an SDTID file from the local filesystem. This
// is the one-shot, synchronous I/O spec §5 allows the core to perform.
func ReadFile(path string) (*SDTIDBatch, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("sdtid: failed to read %s: %w", path, err)
	}
	return ReadXMLString(string(contents))
}

// ReadFS reads and parses an SDTID file through an absfs.FileSystem,
// letting callers point the reader at an in-memory filesystem (tests, a
// staged batch import) or any other absfs-compatible mount instead of the
// local disk.
func ReadFS(fs absfs.FileSystem, path string) (*SDTIDBatch, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sdtid: failed to open %s: %w", path, err)
	}
	defer f.Close()

	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("sdtid: failed to read %s: %w", path, err)
	}
	return ReadXMLString(string(contents))
}
