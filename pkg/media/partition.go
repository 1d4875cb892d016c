package media

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ApplyPartitionPlan destructively rewrites the device's partition table so
// it holds a single bootable partition of the given size, and returns the
// new partition's device path.
//
// Unmounting pre-existing filesystems and wiping old signatures are
// best-effort: failure there means the device was already in the desired
// state. The table write itself is a single sfdisk call judged only by its
// exit status; the boot flag is then re-set with a dedicated --activate
// call rather than trusted to the script alone.
func ApplyPartitionPlan(dev, size string, settle time.Duration, sys System, r Runner, log logrus.FieldLogger) (string, error) {
	parts, _ := sys.MountedPartitions(dev)
	for _, p := range parts {
		if err := r.Run(Command{Name: "umount", Args: []string{p.Device}}); err != nil {
			log.Debugf("umount %s: %v (ignored)", p.Device, err)
		}
	}

	if err := r.Run(Command{Name: "wipefs", Args: []string{"-a", dev}}); err != nil {
		log.Debugf("wipefs %s: %v (ignored)", dev, err)
	}

	script, err := BuildPartitionScript(size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPartitioningFailed, err)
	}
	if err := r.Run(Command{Name: "sfdisk", Args: []string{dev}, Input: script}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPartitioningFailed, err)
	}

	// Older kernels/devices may not need or support the re-read; the poll
	// below is what actually decides whether the partition is usable.
	if err := r.Run(Command{Name: "blockdev", Args: []string{"--rereadpt", dev}}); err != nil {
		log.Debugf("blockdev --rereadpt %s: %v (ignored)", dev, err)
	}

	part := PartitionPath(dev, 1)
	if err := sys.WaitForPartition(part, settle); err != nil {
		return "", err
	}

	if err := r.Run(Command{Name: "sfdisk", Args: []string{"--activate", dev, "1"}}); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPartitioningFailed, err)
	}

	return part, nil
}
