package config

// UsageError reports malformed or missing command-line input. It is raised
// before any socket activity.
type UsageError struct {
	Msg string
	Err error
}

func (e *UsageError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usagef(msg string) error {
	return &UsageError{Msg: msg}
}
