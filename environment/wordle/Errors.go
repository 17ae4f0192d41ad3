package wordle

import "errors"

// GameError implements errors unique to stepping a Wordle environment
type GameError struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *GameError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause of the GameError
func (e *GameError) Unwrap() error {
	return e.Err
}

var errEpisodeOver error = errors.New("episode has already ended")

var errNotReset error = errors.New("environment has not been reset")

var errUnknownWord error = errors.New("guess is not in the vocabulary")

var errBadAction error = errors.New("action is not a valid word index")

// IsInvalidState returns whether an error reports that Step was called
// on an environment that is not in the middle of an episode
func IsInvalidState(err error) bool {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		err = gameErr.Err
	}
	return err == errEpisodeOver || err == errNotReset
}

// IsInvalidInput returns whether an error reports that a guess was
// malformed, outside the vocabulary, or not a legal action index
func IsInvalidInput(err error) bool {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		err = gameErr.Err
	}
	return err == errUnknownWord || err == errBadAction
}
