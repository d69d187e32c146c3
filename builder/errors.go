package builder

import "errors"

var (
	// ErrEmptyLibraryID is returned when a library is added without an id
	ErrEmptyLibraryID = errors.New("library id is empty")
	// ErrInvalidLibraryID is returned for library ids that are not a single directory name
	ErrInvalidLibraryID = errors.New("invalid library id")
	// ErrLibraryNotFound is returned when root path has no directory named after the library id
	ErrLibraryNotFound = errors.New("library directory not found")
	// ErrDuplicateNamespace is returned when a namespace is registered twice
	ErrDuplicateNamespace = errors.New("namespace already added")
	// ErrNamespaceNotFound is returned when removing a namespace that was never registered
	ErrNamespaceNotFound = errors.New("namespace not added")
)

// ErrorKind classifies a per-file failure
type ErrorKind int

const (
	// OpenError means the file could not be opened for reading
	OpenError ErrorKind = iota
	// ReadError means reading failed after the file was opened
	ReadError
	// FormatError means no class, interface or trait declaration was found
	FormatError
)

// FileError describes why a single file was not mapped. It never aborts a scan.
type FileError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *FileError) Error() string {
	switch e.Kind {
	case OpenError:
		return "Cannot open file for reading: " + e.Path
	case ReadError:
		return "Cannot read file: " + e.Path
	default:
		return "Not a valid class file: " + e.Path
	}
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Messages returns error strings in order
func Messages(errs []*FileError) []string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Error())
	}
	return messages
}
