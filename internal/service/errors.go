package service

import (
	"errors"

	"lingo-quiz/internal/domain"
)

// isDomainCode reports whether err wraps a DomainError with the given code.
func isDomainCode(err error, code domain.ErrorCode) bool {
	var domainErr *domain.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
