package registry

import "errors"

var (
	ErrSubdomainTaken   = errors.New("subdomain is bound to another box")
	ErrInvalidRegistry  = errors.New("invalid registry info")
	ErrInvalidMigration = errors.New("invalid migration info")
	ErrNotFound         = errors.New("not found")
)

const (
	CodeSubdomainTaken = "SUBDOMAIN_TAKEN"
	CodeInvalidInput   = "INVALID_INPUT"
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
