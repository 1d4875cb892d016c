package media

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RequiredTools lists the external utilities the session shells out to.
// They are all checked up front so a missing tool cannot interrupt the
// workflow halfway through a destructive sequence.
var RequiredTools = []string{
	"sfdisk",
	"wipefs",
	"blockdev",
	"mkfs.vfat",
	"fatlabel",
	"mount",
	"umount",
	"sync",
}

// Artifacts holds the resolved paths of the two payload images.
type Artifacts struct {
	StageOne string
	Main     string
}

// CheckArtifacts resolves both payload images under the build directory and
// verifies they are regular files. It runs before anything touches the
// device so a missing build cannot cause data loss.
func CheckArtifacts(cfg Config) (Artifacts, error) {
	a := Artifacts{
		StageOne: filepath.Join(cfg.BuildDir, cfg.StageOneImage),
		Main:     filepath.Join(cfg.BuildDir, cfg.MainImage),
	}

	for _, path := range []string{a.StageOne, a.Main} {
		st, err := os.Stat(path)
		if err != nil {
			return Artifacts{}, fmt.Errorf("%w: %s (build the bootloader first)", ErrMissingArtifact, path)
		}
		if !st.Mode().IsRegular() {
			return Artifacts{}, fmt.Errorf("%w: %s is not a regular file", ErrMissingArtifact, path)
		}
	}
	return a, nil
}

// CheckTools ensures every named utility is resolvable on PATH.
func CheckTools(names []string) error {
	var missing []string
	for _, name := range names {
		if _, err := exec.LookPath(name); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s (install util-linux and dosfstools)", ErrMissingTool, strings.Join(missing, ", "))
	}
	return nil
}
