package git

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/wahlandcase/railway/internal/models"
)

const validateTimeout = 10 * time.Second

// minimum supported git version
const (
	minMajor = 2
	minMinor = 23
)

var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts major and minor from "git version 2.39.2" style output
func ParseVersion(output string) (major, minor int, ok bool) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return 0, 0, false
	}
	major, _ = strconv.Atoi(m[1])
	minor, _ = strconv.Atoi(m[2])
	return major, minor, true
}

// VersionSupported reports whether major.minor is at least 2.23
func VersionSupported(major, minor int) bool {
	return major > minMajor || (major == minMajor && minor >= minMinor)
}

// validationChecks are the read-only commands the dashboard relies on
var validationChecks = [][]string{
	{"log", "--format=%H %P", "-n", "1"},
	{"status", "--porcelain"},
	{"rev-parse", "HEAD"},
	{"branch", "--format=%(refname:short)"},
	{"config", "--list"},
}

// Validator checks the git environment in the background. The result is
// written once and polled without blocking.
type Validator struct {
	runner *Runner

	mu     sync.Mutex
	result *models.ValidationResult
}

// NewValidator creates a Validator running its checks through runner
func NewValidator(runner *Runner) *Validator {
	return &Validator{runner: runner}
}

// Start runs the checks in a new goroutine
func (v *Validator) Start(ctx context.Context) {
	go func() {
		result := v.validate(ctx)
		v.mu.Lock()
		v.result = &result
		v.mu.Unlock()
	}()
}

// Result returns the finished result, or false while checks are running
func (v *Validator) Result() (models.ValidationResult, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.result == nil {
		return models.ValidationResult{}, false
	}
	return *v.result, true
}

func (v *Validator) validate(ctx context.Context) models.ValidationResult {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	var result models.ValidationResult

	out, err := v.runner.Version(ctx)
	if err == nil {
		if major, minor, ok := ParseVersion(out); ok {
			result.GitVersion = strconv.Itoa(major) + "." + strconv.Itoa(minor)
			result.VersionOK = VersionSupported(major, minor)
		}
	}

	for _, args := range validationChecks {
		if _, err := v.runner.query(ctx, args...); err != nil {
			name := "git " + args[0]
			// an unborn HEAD is not an environment problem
			if args[0] == "rev-parse" {
				result.Warnings = append(result.Warnings, "HEAD does not point at a commit yet")
				continue
			}
			result.FailedCommands = append(result.FailedCommands, name)
			slog.Warn("validation check failed", "command", name, "error", err)
		}
	}

	slog.Debug("validation finished", "version", result.GitVersion, "issues", result.HasIssues())
	return result
}
