package core

import "io"

// Transformer consumes all of r and writes a transformed copy to w.
type Transformer interface {
	Transform(r io.Reader, w io.Writer) error
}

// TransformFunc adapts a function to the Transformer interface.
type TransformFunc func(r io.Reader, w io.Writer) error

func (f TransformFunc) Transform(r io.Reader, w io.Writer) error {
	return f(r, w)
}

// TransientError marks a transform failure worth retrying with fresh streams.
// The worker pool reports it through Result.Transient.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	if e == nil || e.Err == nil {
		return "transient transform error"
	}
	return e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
