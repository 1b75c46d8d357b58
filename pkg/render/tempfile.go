package render

import (
	"fmt"
	"os"
)

// WriteTemp creates a temporary file in dir (the OS default when empty),
// writes data to it and syncs it to disk before returning its path.
// The file is closed on return so another process can open it.
//
// release removes the file and is safe to call more than once.
func WriteTemp(dir, pattern string, data []byte) (path string, release func(), err error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	release = func() { _ = os.Remove(f.Name()) }

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		release()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		release()
		return "", nil, fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), release, nil
}

// ReserveTemp creates an empty temporary file in dir whose name matches
// pattern and returns its path, for tools that insist on writing their
// result to a named file. The pattern's "*" is replaced by a random string,
// so "mermaid-*.png" keeps the .png suffix.
func ReserveTemp(dir, pattern string) (path string, release func(), err error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	release = func() { _ = os.Remove(f.Name()) }
	if err := f.Close(); err != nil {
		release()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), release, nil
}
