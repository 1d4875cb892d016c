package media

import "fmt"

// CheckBlockDevice fails unless the path refers to an existing block
// special file.
func CheckBlockDevice(sys System, path string) error {
	ok, err := sys.IsBlockDevice(path)
	if err != nil {
		return fmt.Errorf("cannot inspect %s: %w", path, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotABlockDevice, path)
	}
	return nil
}

// IsSensitiveDevice reports whether the path names a disk that commonly
// holds the running system. The match is done against the base disk, so a
// partition path like /dev/sda1 trips the check as well as /dev/sda.
func IsSensitiveDevice(path string, patterns []string) bool {
	base := BaseDisk(path)
	for _, p := range patterns {
		if base == p {
			return true
		}
	}
	return false
}
