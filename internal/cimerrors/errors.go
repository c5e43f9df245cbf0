// Package cimerrors implements the single tagged failure kind the
// responder raises: a DSP0200 numeric CIM status code paired with a human
// message (spec.md §7), in the shape of the teacher's
// internal/grpc/errors.New(code, msg) constructor but carrying CIM status
// codes instead of gRPC codes — there is no gRPC server in this module, so
// gRPC's status/protoadapt machinery has no role here.
package cimerrors

import "fmt"

// Code is a DSP0200 / pywbem CIM_ERR_* numeric status code.
type Code int

const (
	Failed                     Code = 1
	AccessDenied               Code = 2
	InvalidNamespace           Code = 3
	InvalidParameter           Code = 4
	InvalidClass               Code = 5
	NotFound                   Code = 6
	NotSupported               Code = 7
	ClassHasChildren           Code = 8
	ClassHasInstances          Code = 9
	InvalidSuperclass          Code = 10
	AlreadyExists              Code = 11
	NoSuchProperty             Code = 12
	TypeMismatch               Code = 13
	QueryLanguageNotSupported  Code = 14
	InvalidQuery               Code = 15
	NamespaceNotEmpty          Code = 20
	InvalidEnumerationContext  Code = 21
	InvalidOperationTimeout    Code = 22
)

func (c Code) String() string {
	switch c {
	case Failed:
		return "CIM_ERR_FAILED"
	case AccessDenied:
		return "CIM_ERR_ACCESS_DENIED"
	case InvalidNamespace:
		return "CIM_ERR_INVALID_NAMESPACE"
	case InvalidParameter:
		return "CIM_ERR_INVALID_PARAMETER"
	case InvalidClass:
		return "CIM_ERR_INVALID_CLASS"
	case NotFound:
		return "CIM_ERR_NOT_FOUND"
	case NotSupported:
		return "CIM_ERR_NOT_SUPPORTED"
	case ClassHasChildren:
		return "CIM_ERR_CLASS_HAS_CHILDREN"
	case ClassHasInstances:
		return "CIM_ERR_CLASS_HAS_INSTANCES"
	case InvalidSuperclass:
		return "CIM_ERR_INVALID_SUPERCLASS"
	case AlreadyExists:
		return "CIM_ERR_ALREADY_EXISTS"
	case NoSuchProperty:
		return "CIM_ERR_NO_SUCH_PROPERTY"
	case TypeMismatch:
		return "CIM_ERR_TYPE_MISMATCH"
	case QueryLanguageNotSupported:
		return "CIM_ERR_QUERY_LANGUAGE_NOT_SUPPORTED"
	case InvalidQuery:
		return "CIM_ERR_INVALID_QUERY"
	case NamespaceNotEmpty:
		return "CIM_ERR_NAMESPACE_NOT_EMPTY"
	case InvalidEnumerationContext:
		return "CIM_ERR_INVALID_ENUMERATION_CONTEXT"
	case InvalidOperationTimeout:
		return "CIM_ERR_INVALID_OPERATION_TIMEOUT"
	default:
		return "CIM_ERR_UNKNOWN"
	}
}

// Error is the single error type raised by every package in this module.
type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf returns err's CIM status code and true when err is a *Error, and
// 0 and false otherwise; callers compare the returned code with the one they
// expect.
func CodeOf(err error) (Code, bool) {
	ce, ok := err.(*Error)
	if !ok {
		return 0, false
	}
	return ce.Code, true
}

func InvalidNamespaceErr(format string, args ...any) *Error {
	return New(InvalidNamespace, format, args...)
}

func NotFoundErr(format string, args ...any) *Error {
	return New(NotFound, format, args...)
}

func InvalidClassErr(format string, args ...any) *Error {
	return New(InvalidClass, format, args...)
}

func InvalidSuperclassErr(format string, args ...any) *Error {
	return New(InvalidSuperclass, format, args...)
}

func AlreadyExistsErr(format string, args ...any) *Error {
	return New(AlreadyExists, format, args...)
}

func InvalidParameterErr(format string, args ...any) *Error {
	return New(InvalidParameter, format, args...)
}

func NotSupportedErr(format string, args ...any) *Error {
	return New(NotSupported, format, args...)
}

func NamespaceNotEmptyErr(format string, args ...any) *Error {
	return New(NamespaceNotEmpty, format, args...)
}

func InvalidEnumerationContextErr(format string, args ...any) *Error {
	return New(InvalidEnumerationContext, format, args...)
}

func QueryLanguageNotSupportedErr(format string, args ...any) *Error {
	return New(QueryLanguageNotSupported, format, args...)
}

func FailedErr(format string, args ...any) *Error {
	return New(Failed, format, args...)
}
