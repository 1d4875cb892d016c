package media

import "errors"

// Sentinel errors for the distinct failure conditions of a provisioning
// session. Call sites wrap them with context via fmt.Errorf and %w so the
// CLI and tests can classify failures with errors.Is.
var (
	ErrMissingArtifact    = errors.New("missing payload artifact")
	ErrMissingTool        = errors.New("missing required tool")
	ErrNotABlockDevice    = errors.New("not a block device")
	ErrPartitioningFailed = errors.New("partitioning failed")
	ErrPartitionNotReady  = errors.New("partition not ready")
	ErrFormatFailed       = errors.New("format failed")
	ErrLabelFailed        = errors.New("label failed")
	ErrMountFailed        = errors.New("mount failed")
	ErrPayloadCopyFailed  = errors.New("payload copy failed")

	// ErrCancelled reports that the user declined a confirmation gate.
	// Cancellation is not a failure; callers map it to a clean exit.
	ErrCancelled = errors.New("cancelled by user")
)
