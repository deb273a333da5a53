package utils

import (
	"io/fs"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to a temporary file in the target directory
// and renames it over name, so readers never observe a partial file.
func AtomicWrite(name string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(name)
	fd, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			fd.Close()
			os.Remove(fd.Name())
		}
	}()
	if _, err = fd.Write(data); err != nil {
		return err
	}
	// os.CreateTemp always creates file with 0600
	if perm != 0600 {
		if err = fd.Chmod(perm); err != nil {
			return err
		}
	}
	if err = fd.Sync(); err != nil {
		return err
	}
	if err = fd.Close(); err != nil {
		return err
	}
	err = os.Rename(fd.Name(), name)
	return err
}
