package media

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// MountedPartition represents a currently mounted filesystem that belongs to
// the target device.
type MountedPartition struct {
	Device     string
	Mountpoint string
}

// System abstracts how we inspect the underlying OS: whether a path is a
// block device, which filesystems are mounted from it, and when a freshly
// written partition node becomes visible. Tests provide a fake
// implementation; the real one inspects /dev and /proc.
type System interface {
	IsBlockDevice(path string) (bool, error)
	MountedPartitions(devicePrefix string) ([]MountedPartition, error)
	WaitForPartition(path string, timeout time.Duration) error
}

// localSystem is a System backed by the local OS.
type localSystem struct{}

// NewLocalSystem creates a System backed by the local OS.
func NewLocalSystem() System {
	return localSystem{}
}

func (localSystem) IsBlockDevice(path string) (bool, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		if err == unix.ENOENT {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return st.Mode&unix.S_IFMT == unix.S_IFBLK, nil
}

// MountedPartitions returns every mounted filesystem whose source device
// path starts with devicePrefix. It reads /proc/self/mounts and is
// intentionally conservative: on errors it reports no mounts instead of
// failing hard, since the result only feeds an advisory warning and a
// best-effort unmount pass.
func (localSystem) MountedPartitions(devicePrefix string) ([]MountedPartition, error) {
	data, err := os.ReadFile("/proc/self/mounts")
	if err != nil {
		return nil, nil
	}
	return parseMountedPartitions(string(data), devicePrefix), nil
}

// WaitForPartition polls until the partition node exists or the timeout
// expires. It replaces the fixed settle sleep used by legacy SD-card
// scripts after a partition table rewrite.
func (localSystem) WaitForPartition(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: %s did not appear within %s", ErrPartitionNotReady, path, timeout)
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// parseMountedPartitions parses /proc/self/mounts contents and returns the
// entries whose device path starts with the given prefix.
func parseMountedPartitions(mounts, devicePrefix string) []MountedPartition {
	var result []MountedPartition

	scanner := bufio.NewScanner(strings.NewReader(mounts))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		device := fields[0]
		mountpoint := fields[1]

		if strings.HasPrefix(device, devicePrefix) {
			result = append(result, MountedPartition{
				Device:     device,
				Mountpoint: mountpoint,
			})
		}
	}
	return result
}

// PartitionPath returns the device path of the numbered partition on the
// given disk, accounting for the "p" separator used by mmcblk and nvme
// style names ("/dev/mmcblk0" -> "/dev/mmcblk0p1", "/dev/sdb" ->
// "/dev/sdb1").
func PartitionPath(disk string, index int) string {
	name := strings.TrimPrefix(disk, "/dev/")
	if strings.HasPrefix(name, "mmcblk") || strings.HasPrefix(name, "nvme") || strings.HasPrefix(name, "loop") {
		return fmt.Sprintf("/dev/%sp%d", name, index)
	}
	return fmt.Sprintf("/dev/%s%d", name, index)
}

// BaseDisk takes a device like "/dev/mmcblk0p2" or "/dev/sda1" and returns
// the base disk device path ("/dev/mmcblk0" or "/dev/sda").
func BaseDisk(dev string) string {
	if !strings.HasPrefix(dev, "/dev/") {
		return dev
	}

	s := dev
	for len(s) > 0 {
		last := s[len(s)-1]
		if last < '0' || last > '9' {
			break
		}
		s = s[:len(s)-1]
	}

	// mmcblk0p2 and nvme0n1p2 keep a trailing 'p' once digits are gone.
	if strings.HasSuffix(s, "p") && (strings.Contains(s, "mmcblk") || strings.Contains(s, "nvme")) {
		s = s[:len(s)-1]
	}

	return s
}
