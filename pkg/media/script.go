package media

import (
	"errors"
	"fmt"
	"strings"
)

// BuildPartitionScript renders the sfdisk input that replaces whatever is on
// the device with a fresh DOS partition table holding a single bootable
// partition of the given size. The historical recipe drove interactive fdisk
// with a canned keystroke sequence (new table, one primary partition, type
// "e", toggle bootable); the sfdisk script preserves that intent without
// depending on fdisk's prompt order.
func BuildPartitionScript(size string) (string, error) {
	norm, err := NormalizeSize(size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("label: dos\nstart=2048, size=%s, type=e, bootable\n", norm), nil
}

// NormalizeSize converts a user-facing size expression into sfdisk syntax.
// The fdisk-style leading "+" ("+64M" meaning 64 MiB from the start of free
// space) is stripped; the rest passes through unchanged.
func NormalizeSize(expr string) (string, error) {
	s := strings.TrimSpace(expr)
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return "", errors.New("empty size expression")
	}

	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return "", fmt.Errorf("size expression %q must start with a number", expr)
	}

	switch s[i:] {
	case "", "K", "M", "G", "T", "KiB", "MiB", "GiB", "TiB":
		return s, nil
	default:
		return "", fmt.Errorf("unsupported size suffix %q in %q", s[i:], expr)
	}
}
