package media

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// InstallPayloads copies the two bootloader images onto the mounted
// filesystem under their fixed destination names. The copies are
// byte-for-byte; the boot ROM reads the files as-is.
func InstallPayloads(mountDir string, a Artifacts, cfg Config, log logrus.FieldLogger) error {
	copies := []struct {
		src, dst string
	}{
		{a.StageOne, filepath.Join(mountDir, cfg.DestStageOne)},
		{a.Main, filepath.Join(mountDir, cfg.DestMain)},
	}

	for _, c := range copies {
		if err := copyFile(c.src, c.dst); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPayloadCopyFailed, c.src, err)
		}
		log.Debugf("installed %s -> %s", c.src, c.dst)
	}
	return nil
}

// VerifyPayloads re-reads the installed files and compares their SHA-256
// digests against the sources. It runs before the mount is released so a
// truncated or corrupted copy is caught while the medium is still attached.
func VerifyPayloads(mountDir string, a Artifacts, cfg Config) error {
	checks := []struct {
		src, dst string
	}{
		{a.StageOne, filepath.Join(mountDir, cfg.DestStageOne)},
		{a.Main, filepath.Join(mountDir, cfg.DestMain)},
	}

	for _, c := range checks {
		srcSum, err := fileDigest(c.src)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPayloadCopyFailed, c.src, err)
		}
		dstSum, err := fileDigest(c.dst)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrPayloadCopyFailed, c.src, err)
		}
		if !bytes.Equal(srcSum, dstSum) {
			return fmt.Errorf("%w: %s: checksum mismatch after copy", ErrPayloadCopyFailed, c.src)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func fileDigest(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
