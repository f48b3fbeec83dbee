package upcase

// Op names the stage of Upcase that failed.
type Op string

const (
	OpRead   Op = "read"
	OpDecode Op = "decode"
	OpWrite  Op = "write"
)

// Error is the only error type returned by Upcase. Op is informational;
// callers should handle every Error the same way.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string {
	if e == nil || e.Err == nil {
		return "upcase: i/o error"
	}
	return "upcase " + string(e.Op) + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
