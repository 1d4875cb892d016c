package media

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Mount is the scoped resource representing the freshly formatted partition
// mounted at a private temporary directory. Release must run on every exit
// path once the mount exists; it is safe to call more than once.
type Mount struct {
	Device string
	Dir    string

	runner   Runner
	log      logrus.FieldLogger
	released bool
}

// ProvisionFilesystem formats the partition as FAT32, applies the volume
// label, and mounts it at a fresh session-scoped temporary directory.
func ProvisionFilesystem(part, label, sessionID string, r Runner, log logrus.FieldLogger) (*Mount, error) {
	if err := r.Run(Command{Name: "mkfs.vfat", Args: []string{"-F", "32", part}}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormatFailed, err)
	}

	if err := r.Run(Command{Name: "fatlabel", Args: []string{part, label}}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLabelFailed, err)
	}

	dir, err := os.MkdirTemp("", "mksdboot-"+sessionID+"-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMountFailed, err)
	}
	if err := r.Run(Command{Name: "mount", Args: []string{part, dir}}); err != nil {
		if rmErr := os.Remove(dir); rmErr != nil {
			log.Warnf("cannot remove mount dir %s: %v", dir, rmErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrMountFailed, err)
	}

	log.Debugf("mounted %s at %s", part, dir)
	return &Mount{Device: part, Dir: dir, runner: r, log: log}, nil
}

// Release syncs, unmounts, and removes the temporary directory. Each step
// is best-effort: at teardown time there is nothing better to do than warn.
func (m *Mount) Release() {
	if m.released {
		return
	}
	m.released = true

	if err := m.runner.Run(Command{Name: "sync"}); err != nil {
		m.log.Warnf("sync: %v", err)
	}
	if err := m.runner.Run(Command{Name: "umount", Args: []string{m.Dir}}); err != nil {
		m.log.Warnf("umount %s: %v", m.Dir, err)
	}
	if err := os.RemoveAll(m.Dir); err != nil {
		m.log.Warnf("cannot remove %s: %v", m.Dir, err)
	}
}
