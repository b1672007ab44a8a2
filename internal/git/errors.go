package git

import (
	"errors"
	"strings"
)

// ErrNotRepository is returned when no repository is found at or above a path
var ErrNotRepository = errors.New("not a git repository (or any of the parent directories)")

// GitError provides better context for git command failures
type GitError struct {
	Command string
	Output  string
}

func (e *GitError) Error() string {
	return "git " + e.Command + ": " + e.Output
}

// ReferenceNotFoundError indicates a branch or revision could not be resolved
type ReferenceNotFoundError struct {
	Name string
}

func (e *ReferenceNotFoundError) Error() string {
	return "reference not found: " + e.Name
}

// newGitError wraps the combined output of a failed git invocation
func newGitError(args []string, output string) *GitError {
	command := ""
	if len(args) > 0 {
		command = args[0]
	}
	output = strings.TrimSpace(output)
	if output == "" {
		output = "command failed"
	}
	return &GitError{Command: command, Output: output}
}
