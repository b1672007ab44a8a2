package models

// Outcome is what running a command produced
type Outcome interface {
	isOutcome()
}

type outcomeDone struct{ Message string }
type outcomeFailed struct{ Error string }
type outcomeChooseBranch struct {
	Branches []string
	CommitID string
}

func (outcomeDone) isOutcome()         {}
func (outcomeFailed) isOutcome()       {}
func (outcomeChooseBranch) isOutcome() {}

// Done creates an Outcome for a command that ran successfully
func Done(message string) Outcome {
	return outcomeDone{Message: message}
}

// Failed creates an Outcome for a command that failed
func Failed(err string) Outcome {
	return outcomeFailed{Error: err}
}

// ChooseBranch creates an Outcome asking the user to pick one of several
// branches at commitID before the command can continue
func ChooseBranch(commitID string, branches []string) Outcome {
	return outcomeChooseBranch{Branches: branches, CommitID: commitID}
}

// IsDone returns true if the outcome is Done
func IsDone(o Outcome) bool {
	_, ok := o.(outcomeDone)
	return ok
}

// IsFailed returns true if the outcome is Failed
func IsFailed(o Outcome) bool {
	_, ok := o.(outcomeFailed)
	return ok
}

// BranchChoice returns the commit and branches of a ChooseBranch outcome
func BranchChoice(o Outcome) (commitID string, branches []string, ok bool) {
	c, ok := o.(outcomeChooseBranch)
	if !ok {
		return "", nil, false
	}
	return c.CommitID, c.Branches, true
}

// OutcomeText returns the message of Done or the error of Failed
func OutcomeText(o Outcome) string {
	switch v := o.(type) {
	case outcomeDone:
		return v.Message
	case outcomeFailed:
		return v.Error
	default:
		return ""
	}
}
