package archive

import "fmt"

// ErrorKind classifies a packaging failure.
type ErrorKind int

const (
	NotFound ErrorKind = iota + 1
	NotADirectory
	ValidationFailed
	IOError
	InvalidOption
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not-found"
	case NotADirectory:
		return "not-a-directory"
	case ValidationFailed:
		return "validation-failed"
	case IOError:
		return "io-error"
	case InvalidOption:
		return "invalid-option"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// PackageError is returned by Package. Message carries the validator's
// message for ValidationFailed; Err is the underlying cause, if any.
type PackageError struct {
	Kind    ErrorKind
	Path    string
	Message string
	Err     error
}

func (e *PackageError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("skill directory not found: %s", e.Path)
	case NotADirectory:
		return fmt.Sprintf("path is not a directory: %s", e.Path)
	case ValidationFailed:
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *PackageError) Unwrap() error { return e.Err }

func ioError(path, action string, err error) *PackageError {
	return &PackageError{
		Kind:    IOError,
		Path:    path,
		Message: fmt.Sprintf("%s %s", action, path),
		Err:     err,
	}
}
