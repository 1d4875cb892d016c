// Package cli provides the command-line interface used by mksdboot.
//
// The CLI parses flags, loads configuration, and runs a provisioning
// session that turns a block device into a bootable FAT32 medium carrying
// the two bootloader images. Use `Run` as the entry point when embedding
// the CLI in other tools.
//
// Example usage:
//
//	if err := cli.Run(os.Args); err != nil {
//	    logrus.Fatalf("mksdboot: %v", err)
//	}
package cli
