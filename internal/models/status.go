package models

import (
	"fmt"
	"strings"
)

// FileStatus is how a path differs from HEAD
type FileStatus int

const (
	Staged FileStatus = iota
	Modified
	Untracked
	Deleted
)

// Symbol returns the short marker shown in the status pane
func (s FileStatus) Symbol() string {
	switch s {
	case Staged:
		return "S"
	case Modified:
		return "M"
	case Untracked:
		return "?"
	case Deleted:
		return "D"
	default:
		return " "
	}
}

// StatusFile is one entry of the status pane
type StatusFile struct {
	Path   string
	Status FileStatus
}

// ValidationResult is the outcome of the background git environment check
type ValidationResult struct {
	// GitVersion as reported by git --version, empty if undetected
	GitVersion string
	// VersionOK is set for git 2.23 and newer
	VersionOK      bool
	FailedCommands []string
	Warnings       []string
}

// HasIssues reports whether anything is worth telling the user
func (v ValidationResult) HasIssues() bool {
	return !v.VersionOK || len(v.FailedCommands) > 0
}

// Summary renders the problems found, one per line
func (v ValidationResult) Summary() string {
	var b strings.Builder

	if v.GitVersion == "" {
		b.WriteString("Could not detect git version\n")
	} else if !v.VersionOK {
		fmt.Fprintf(&b, "Git version %s may not be fully supported (recommend 2.23+)\n", v.GitVersion)
	}

	if len(v.FailedCommands) > 0 {
		fmt.Fprintf(&b, "%d git command(s) failed validation:\n", len(v.FailedCommands))
		for _, cmd := range v.FailedCommands {
			fmt.Fprintf(&b, "  - %s\n", cmd)
		}
	}

	for _, w := range v.Warnings {
		b.WriteString(w + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
