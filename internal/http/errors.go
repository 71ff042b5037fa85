package http

import (
	"logpulse/internal/shared/svcerrors"
)

const codeSnapshotNotReady = "SNAP_1000"

// errSnapshotNotReady returns an error for requests arriving before the first
// snapshot is published.
func errSnapshotNotReady() *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeSnapshotNotReady, "no snapshot published yet", nil)
}
