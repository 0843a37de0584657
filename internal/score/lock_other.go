//go:build !unix

package score

import "os"

// lockFile is a no-op where flock is unavailable; appends are still
// serialized within the process.
func lockFile(file *os.File, exclusive bool) error {
	return nil
}

func unlockFile(file *os.File) error {
	return nil
}
