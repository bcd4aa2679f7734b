package dashboard

// Severity of a user-facing notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarn
	SeverityError
)

// Notice is a message for the status bar. The zero value means nothing to
// show.
type Notice struct {
	Text     string
	Severity Severity
}

func (n Notice) IsZero() bool {
	return n.Text == ""
}

const (
	MsgLoadFailed = "Failed to load data. Please try again."
	MsgLoggedOut  = "You have been logged out. Refresh to login again."
)
