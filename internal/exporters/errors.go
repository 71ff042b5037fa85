package exporters

import (
	"fmt"

	"logpulse/internal/shared/svcerrors"
)

const (
	codeInternalExportFailed = "EXP_9000"
)

// errInternalExportFailed returns an error when replacing the export file fails.
func errInternalExportFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalExportFailed, fmt.Errorf("snapshotExportFailed: %w", cause))
}
