package pkg

import (
	"errors"
)

var (
	ErrDuplicateVersion          = errors.New("package version already exists")
	ErrVersionNotFound           = errors.New("package version not found")
	ErrLatestVersionInconsistent = errors.New("force update flag set on the latest version")
	ErrUnsupportedPlatform       = errors.New("unsupported platform")
	ErrInvalidPackage            = errors.New("invalid package")
)

const (
	CodeVersionExisted      = "PKG_VERSION_EXISTED"
	CodeVersionNotExist     = "PKG_VERSION_NOT_EXIST"
	CodeLatestAppNotExist   = "LATEST_APP_VERSION_NOT_EXIST"
	CodeLatestBoxNotExist   = "LATEST_BOX_VERSION_NOT_EXIST"
	CodeUnsupportedPlatform = "UNSUPPORTED_PLATFORM"
)

type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the machine code of err, or "" when err carries none.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
