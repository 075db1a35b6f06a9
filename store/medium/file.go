package medium

import "os"
import "fmt"
import "strings"
import "io/ioutil"
import "path/filepath"

const (
	dirMode  = 0700
	fileMode = 0600
)

type fileMedium struct {
	dir string
}

func (f *fileMedium) pathFor(key string) (string, error) {
	if len(key) == 0 || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("medium: invalid key '%s'", key)
	}

	return filepath.Join(f.dir, key), nil
}

// Get reads the file named by key inside the medium's directory.
func (f *fileMedium) Get(key string) (string, error) {
	path, e := f.pathFor(key)

	if e != nil {
		return "", e
	}

	data, e := ioutil.ReadFile(path)

	if os.IsNotExist(e) {
		return "", ErrNotFound
	}

	if e != nil {
		return "", fmt.Errorf("medium: read %s: %w", path, e)
	}

	return string(data), nil
}

// Set writes the value to a temporary file and renames it over the key's file.
func (f *fileMedium) Set(key string, value string) error {
	path, e := f.pathFor(key)

	if e != nil {
		return e
	}

	if e := os.MkdirAll(f.dir, dirMode); e != nil {
		return fmt.Errorf("medium: create %s: %w", f.dir, e)
	}

	temp, e := ioutil.TempFile(f.dir, "."+key+".*")

	if e != nil {
		return fmt.Errorf("medium: write %s: %w", path, e)
	}

	name := temp.Name()

	if _, e := temp.WriteString(value); e != nil {
		temp.Close()
		os.Remove(name)
		return fmt.Errorf("medium: write %s: %w", path, e)
	}

	if e := temp.Close(); e != nil {
		os.Remove(name)
		return fmt.Errorf("medium: write %s: %w", path, e)
	}

	if e := os.Chmod(name, fileMode); e != nil {
		os.Remove(name)
		return fmt.Errorf("medium: write %s: %w", path, e)
	}

	if e := os.Rename(name, path); e != nil {
		os.Remove(name)
		return fmt.Errorf("medium: write %s: %w", path, e)
	}

	return nil
}

// Delete removes the key's file if present.
func (f *fileMedium) Delete(key string) error {
	path, e := f.pathFor(key)

	if e != nil {
		return e
	}

	if e := os.Remove(path); e != nil && !os.IsNotExist(e) {
		return fmt.Errorf("medium: remove %s: %w", path, e)
	}

	return nil
}

// DefaultDir returns ~/.krumsession.
func DefaultDir() (string, error) {
	home, e := os.UserHomeDir()

	if e != nil {
		return "", fmt.Errorf("medium: home dir: %w", e)
	}

	return filepath.Join(home, ".krumsession"), nil
}

// NewFile returns a Medium storing one file per key under dir. The directory is
// created on first write.
func NewFile(dir string) Medium {
	return &fileMedium{dir: dir}
}
