package pipeline

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by pipeline errors.
const (
	CodeNilRequest       = "NIL_REQUEST"
	CodeHandlerNotFound  = "HANDLER_NOT_FOUND"
	CodeUnexpectedType   = "UNEXPECTED_TYPE"
	CodeValidationFailed = "VALIDATION_FAILED"
)

func errNilRequest() error {
	return goerrors.New("cannot dispatch a nil request", goerrors.CategoryInternal).
		WithTextCode(CodeNilRequest)
}

func noHandler(req Request) error {
	return goerrors.New(fmt.Sprintf("no handler registered for %s", RequestName(req)), goerrors.CategoryInternal).
		WithTextCode(CodeHandlerNotFound)
}

func unexpectedRequest(req Request, want any) error {
	return goerrors.New(fmt.Sprintf("handler for %T received %T", want, req), goerrors.CategoryInternal).
		WithTextCode(CodeUnexpectedType)
}

func unexpectedResult(req Request, got, want any) error {
	return goerrors.New(fmt.Sprintf("%s returned %T, expected %T", RequestName(req), got, want), goerrors.CategoryInternal).
		WithTextCode(CodeUnexpectedType)
}

// HasTextCode reports whether err, or an error it wraps, is a go-errors
// error carrying code.
func HasTextCode(err error, code string) bool {
	var target *goerrors.Error
	if !errors.As(err, &target) {
		return false
	}
	return target.TextCode == code
}

// IsCategory reports whether err, or an error it wraps, is a go-errors
// error of the given category.
func IsCategory(err error, category goerrors.Category) bool {
	var target *goerrors.Error
	if !errors.As(err, &target) {
		return false
	}
	return target.Category == category
}
