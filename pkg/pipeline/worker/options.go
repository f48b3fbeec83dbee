package worker

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseOptions decodes Options from YAML. Unknown keys are rejected and an
// empty document yields zero Options.
//
//	workers: 8
//	rate_limit_rps: 50
//	failure_policy: fail_fast
func ParseOptions(data []byte) (Options, error) {
	var o Options
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&o); err != nil {
		if errors.Is(err, io.EOF) {
			return Options{}, nil
		}
		return Options{}, fmt.Errorf("parse worker options: %w", err)
	}
	if o.Workers < 0 {
		return Options{}, fmt.Errorf("workers must be >= 0, got %d", o.Workers)
	}
	return o, nil
}

func (p *FailurePolicy) UnmarshalYAML(value *yaml.Node) error {
	s := strings.ToLower(strings.TrimSpace(value.Value))
	switch s {
	case "", "partial", "partial_output":
		*p = FailurePolicyPartialOutput
	case "fail_fast", "failfast":
		*p = FailurePolicyFailFast
	default:
		return fmt.Errorf("invalid failure_policy %q (expected partial|fail_fast)", value.Value)
	}
	return nil
}

func (p FailurePolicy) String() string {
	if p == FailurePolicyFailFast {
		return "fail_fast"
	}
	return "partial"
}
