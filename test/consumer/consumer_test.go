package consumer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/palantir/upcase/pkg/pipeline/core"
	"github.com/palantir/upcase/pkg/pipeline/worker"
	"github.com/palantir/upcase/pkg/upcase"
)

func TestPublicPackagesCompile(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := upcase.Upcase(strings.NewReader("bob@corp.test"), &out); err != nil {
		t.Fatalf("Upcase failed: %v", err)
	}
	if out.String() != "BOB@CORP.TEST" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	opts, err := worker.ParseOptions([]byte("workers: 1\n"))
	if err != nil {
		t.Fatalf("ParseOptions failed: %v", err)
	}

	var batchOut bytes.Buffer
	_, err = worker.RunAll(context.Background(), []worker.Job{{
		Name: "x",
		In:   strings.NewReader("x"),
		Out:  &batchOut,
	}}, core.TransformFunc(upcase.Upcase), opts)
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if batchOut.String() != "X" {
		t.Fatalf("unexpected batch output: %q", batchOut.String())
	}
}
