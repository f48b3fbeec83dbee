package core_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/palantir/upcase/pkg/pipeline/core"
	"github.com/palantir/upcase/pkg/upcase"
)

func TestTransformFunc(t *testing.T) {
	t.Parallel()

	var tr core.Transformer = core.TransformFunc(upcase.Upcase)

	var out bytes.Buffer
	if err := tr.Transform(strings.NewReader("Hello, world!\n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "HELLO, WORLD!\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestTransientError(t *testing.T) {
	t.Parallel()

	base := io.ErrUnexpectedEOF
	err := fmt.Errorf("job a: %w", &core.TransientError{Err: base})

	var te *core.TransientError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransientError in chain: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error: %v", err)
	}
	if (&core.TransientError{}).Error() != "transient transform error" {
		t.Fatalf("unexpected empty message")
	}
}
