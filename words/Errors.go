package words

import "errors"

// LoadError implements errors unique to loading a word list
type LoadError struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *LoadError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause of the LoadError
func (e *LoadError) Unwrap() error {
	return e.Err
}

var errEmptyList error = errors.New("word list is empty")

var errMalformedWord error = errors.New("word list contains a malformed word")

// IsLoadError returns whether or not an error reports that a word list
// could not be loaded
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}
