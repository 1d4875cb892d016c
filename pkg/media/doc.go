// Package media contains the core domain logic for mksdboot: preflight
// checks of the built bootloader images and required host utilities,
// target-device validation, destructive repartitioning, FAT32 provisioning,
// payload installation and verification, and the session controller that
// sequences it all behind the confirmation gates. It is used by the CLI
// layer but can also be embedded in other tooling that needs to prepare
// bootable media programmatically.
package media
