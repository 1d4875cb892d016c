package media

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestProvisionFilesystem(t *testing.T) {
	r := &fakeRunner{}

	mnt, err := ProvisionFilesystem("/dev/sdb1", "boot", "abc123", r, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mnt.Release()

	if !r.ran("mkfs.vfat -F 32 /dev/sdb1") {
		t.Fatalf("mkfs.vfat not invoked: %v", r.commands)
	}
	if !r.ran("fatlabel /dev/sdb1 boot") {
		t.Fatalf("fatlabel not invoked: %v", r.commands)
	}
	if !r.ran("mount /dev/sdb1 " + mnt.Dir) {
		t.Fatalf("mount not invoked for %s: %v", mnt.Dir, r.commands)
	}
	if st, err := os.Stat(mnt.Dir); err != nil || !st.IsDir() {
		t.Fatalf("mount dir %s not usable: %v", mnt.Dir, err)
	}
}

func TestMountRelease(t *testing.T) {
	r := &fakeRunner{}
	mnt, err := ProvisionFilesystem("/dev/sdb1", "boot", "abc123", r, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dir := mnt.Dir

	mnt.Release()
	if !r.ran("sync") || !r.ran("umount "+dir) {
		t.Fatalf("release did not sync and unmount: %v", r.commands)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("mount dir %s not removed", dir)
	}

	// Second release is a no-op.
	before := len(r.commands)
	mnt.Release()
	if len(r.commands) != before {
		t.Fatalf("second Release ran commands: %v", r.commands[before:])
	}
}

func TestProvisionFilesystem_FormatFailure(t *testing.T) {
	r := &fakeRunner{failOn: map[string]error{"mkfs.vfat": fmt.Errorf("exit status 1")}}

	_, err := ProvisionFilesystem("/dev/sdb1", "boot", "abc123", r, testLogger())
	if !errors.Is(err, ErrFormatFailed) {
		t.Fatalf("expected ErrFormatFailed, got %v", err)
	}
	if r.ran("mount") {
		t.Fatalf("mount should not run after a failed format")
	}
}

func TestProvisionFilesystem_LabelFailure(t *testing.T) {
	r := &fakeRunner{failOn: map[string]error{"fatlabel": fmt.Errorf("exit status 1")}}

	_, err := ProvisionFilesystem("/dev/sdb1", "boot", "abc123", r, testLogger())
	if !errors.Is(err, ErrLabelFailed) {
		t.Fatalf("expected ErrLabelFailed, got %v", err)
	}
}

func TestProvisionFilesystem_MountFailure(t *testing.T) {
	r := &fakeRunner{failOn: map[string]error{"mount": fmt.Errorf("exit status 32")}}

	_, err := ProvisionFilesystem("/dev/sdb1", "boot", "abc123", r, testLogger())
	if !errors.Is(err, ErrMountFailed) {
		t.Fatalf("expected ErrMountFailed, got %v", err)
	}

	// The temporary directory must not leak.
	cmd, ok := r.find("mount /dev/sdb1 ")
	if !ok || len(cmd.Args) != 2 {
		t.Fatalf("mount command not recorded: %v", r.commands)
	}
	if _, err := os.Stat(cmd.Args[1]); !os.IsNotExist(err) {
		t.Fatalf("mount dir %s leaked after failed mount", cmd.Args[1])
	}
}
