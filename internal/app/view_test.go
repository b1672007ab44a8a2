package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wahlandcase/railway/internal/models"
)

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		index, total, height int
		start, end           int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 5, 0, 5},
		{4, 20, 5, 0, 5},
		{5, 20, 5, 1, 6},
		{19, 20, 5, 15, 20},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.index, tt.total, tt.height)
		assert.Equal(t, tt.start, start, "index %d", tt.index)
		assert.Equal(t, tt.end, end, "index %d", tt.index)
	}
}

func TestTrackingLabel(t *testing.T) {
	assert.Empty(t, trackingLabel(models.Tracking{}))
	assert.Equal(t, "origin/main", trackingLabel(models.Tracking{Upstream: "origin/main"}))
	assert.Equal(t, "origin/main ↑2 ↓1", trackingLabel(models.Tracking{Upstream: "origin/main", Ahead: 2, Behind: 1}))
}

func TestFormatDetails(t *testing.T) {
	d := models.CommitDetails{
		ID:          "0123456789abcdef0123456789abcdef01234567",
		Author:      "Ada",
		AuthorEmail: "ada@example.com",
		Date:        time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Message:     "fix parser\n\nhandle empty input\n",
		Parents:     []string{"abc1234"},
		Branches:    []string{"main"},
		Patch:       "diff --git a/x b/x",
	}

	out := formatDetails(d)
	assert.Contains(t, out, "commit 0123456789abcdef0123456789abcdef01234567\n")
	assert.Contains(t, out, "Author:   Ada <ada@example.com>\n")
	assert.Contains(t, out, "Date:     Fri Mar 1 09:00:00 2024 +0000\n")
	assert.Contains(t, out, "Parents:  abc1234\n")
	assert.Contains(t, out, "Branches: main\n")
	assert.Contains(t, out, "    fix parser\n    \n    handle empty input\n")
	assert.Contains(t, out, "─── Changes ───")
	assert.Contains(t, out, "\ndiff --git a/x b/x")

	d.Patch = ""
	assert.NotContains(t, formatDetails(d), "Changes")
}

func TestFileStatusName(t *testing.T) {
	assert.Equal(t, "staged", fileStatusName(models.Staged))
	assert.Equal(t, "untracked", fileStatusName(models.Untracked))
}
