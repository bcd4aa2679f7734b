package tui

import "github.com/pders01/brief/internal/dashboard"

// StatusKind indicates severity for status messages/spinners.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusWarn
	StatusError
)

func statusKindFor(s dashboard.Severity) StatusKind {
	switch s {
	case dashboard.SeveritySuccess:
		return StatusSuccess
	case dashboard.SeverityWarn:
		return StatusWarn
	case dashboard.SeverityError:
		return StatusError
	default:
		return StatusInfo
	}
}
