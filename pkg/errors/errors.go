package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Descriptor errors
	ErrDescriptorInvalid ErrorCode = "DESCRIPTOR_INVALID"
	ErrDescriptorParse   ErrorCode = "DESCRIPTOR_PARSE"

	// Resolution errors
	ErrArtifactNotFound   ErrorCode = "ARTIFACT_NOT_FOUND"
	ErrCoordinateInvalid  ErrorCode = "COORDINATE_INVALID"
	ErrCircularDependency ErrorCode = "CIRCULAR_DEPENDENCY"

	// Snapshot metadata errors, never fatal
	ErrMetadataGenerate ErrorCode = "METADATA_GENERATE"

	// Manifest errors
	ErrManifestLoad ErrorCode = "MANIFEST_LOAD"
	ErrManifestSave ErrorCode = "MANIFEST_SAVE"

	// FileSystem errors
	ErrKarExtract ErrorCode = "KAR_EXTRACT"
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileCopy   ErrorCode = "FILE_COPY"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// KassembleError represents a structured error with code and details
type KassembleError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KassembleError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KassembleError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KassembleError) Is(target error) bool {
	var targetErr *KassembleError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KassembleError with the given code and message
func New(code ErrorCode, message string) *KassembleError {
	return &KassembleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KassembleError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KassembleError {
	return &KassembleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KassembleError
func Wrap(err error, code ErrorCode, message string) *KassembleError {
	if err == nil {
		return nil
	}
	return &KassembleError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KassembleError {
	if err == nil {
		return nil
	}
	return &KassembleError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KassembleError) WithDetail(key string, value interface{}) *KassembleError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in its chain
func IsErrorCode(err error, code ErrorCode) bool {
	for err != nil {
		var kErr *KassembleError
		if !errors.As(err, &kErr) {
			return false
		}
		if kErr.Code == code {
			return true
		}
		err = kErr.Wrapped
	}
	return false
}

// GetErrorCode returns the outermost error code, or ErrUnknown if not a KassembleError
func GetErrorCode(err error) ErrorCode {
	var kErr *KassembleError
	if errors.As(err, &kErr) {
		return kErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details collected along the error chain, outer
// errors taking precedence, or nil if there is no KassembleError in the chain
func GetErrorDetails(err error) map[string]interface{} {
	var chain []*KassembleError
	for err != nil {
		var kErr *KassembleError
		if !errors.As(err, &kErr) {
			break
		}
		chain = append(chain, kErr)
		err = kErr.Wrapped
	}
	if len(chain) == 0 {
		return nil
	}

	details := make(map[string]interface{})
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Details {
			details[k] = v
		}
	}
	return details
}
