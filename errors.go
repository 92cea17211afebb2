package commitsuggest

import "errors"

// Errors reported by the suggestion pipeline. Adapters wrap these so callers
// can classify failures with errors.Is.
var (
	// ErrLaunch indicates a required executable could not be started.
	ErrLaunch = errors.New("cannot launch external command")
	// ErrListChanges indicates the changed-file listing failed.
	ErrListChanges = errors.New("cannot list changed files")
	// ErrFileDiff indicates a single file's diff could not be collected.
	ErrFileDiff = errors.New("cannot diff file")
	// ErrInference indicates the inference process reported failure.
	ErrInference = errors.New("inference failed")
	// ErrUndecodable indicates command output was not valid UTF-8 text.
	ErrUndecodable = errors.New("output is not valid UTF-8")
	// ErrNoChanges indicates the repository has no changed files.
	ErrNoChanges = errors.New("no changes to describe")
)
