// Package upcase converts text read from an io.Reader to uppercase and writes
// it to an io.Writer.
//
// The whole input is buffered before any output is produced. Case mapping is
// locale-independent and applied to decoded text, so the output may differ in
// byte length from the input (for example "ß" becomes "SS").
package upcase

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidUTF8 is wrapped by the Error returned when input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Upcase reads all of r, uppercases it and writes the result to w in a single
// Write call. On a read or decode failure nothing is written to w.
func Upcase(r io.Reader, w io.Writer) error {
	buf, err := io.ReadAll(r)
	if err != nil {
		return &Error{Op: OpRead, Err: err}
	}
	if !utf8.Valid(buf) {
		return &Error{Op: OpDecode, Err: ErrInvalidUTF8}
	}
	if len(buf) == 0 {
		return nil
	}

	// Casers are stateful; never share one across calls.
	out := cases.Upper(language.Und).Bytes(buf)

	n, err := w.Write(out)
	if err == nil && n < len(out) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &Error{Op: OpWrite, Err: err}
	}
	return nil
}

// String uppercases s using Upcase.
func String(s string) (string, error) {
	var sb strings.Builder
	if err := Upcase(strings.NewReader(s), &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
