package models

import "time"

// CommitDetails is everything the details pane shows for one commit
type CommitDetails struct {
	// ID is the full commit hash
	ID string
	// ShortID is the 7 character hash
	ShortID     string
	Author      string
	AuthorEmail string
	Date        time.Time
	// Message is the full commit message
	Message string
	// Parents are the short ids of the parents
	Parents []string
	// Branches are the local branches pointing at the commit
	Branches []string
	// Patch is the diff against the first parent
	Patch string
}

// NewCommitDetails creates a new CommitDetails
func NewCommitDetails(id, author, email string, date time.Time, message string) CommitDetails {
	short := id
	if len(short) > 7 {
		short = short[:7]
	}
	return CommitDetails{
		ID:          id,
		ShortID:     short,
		Author:      author,
		AuthorEmail: email,
		Date:        date,
		Message:     message,
	}
}
