package components

import "strings"

// Spacer is empty space along one axis.
type Spacer struct {
	size       int
	horizontal bool
}

// NewSpacer creates vertical space of size lines.
func NewSpacer(size int) *Spacer {
	return &Spacer{size: max(size, 0)}
}

// Horizontal switches the spacer to columns.
func (s *Spacer) Horizontal() *Spacer {
	s.horizontal = true
	return s
}

// View renders the spacer. A vertical spacer of n lines is n-1 newlines so
// that joining it vertically yields n blank rows.
func (s *Spacer) View() string {
	if s.size == 0 {
		return ""
	}
	if s.horizontal {
		return strings.Repeat(" ", s.size)
	}
	return strings.Repeat(" \n", s.size-1) + " "
}
