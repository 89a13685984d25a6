package pendingwrite

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"meetroom/internal/pkg/errs"
)

type FailureMode string

const (
	// FailureDrop logs and discards a write that fails to replay.
	FailureDrop FailureMode = "drop"
	// FailureRetain moves a failed write to the dead-letter list.
	FailureRetain FailureMode = "retain"
	// FailureRetry retries transient failures before dropping.
	FailureRetry FailureMode = "retry"
)

const maxRetries = 10

type FailurePolicy struct {
	Mode       FailureMode
	MaxRetries int
}

func DropPolicy() FailurePolicy { return FailurePolicy{Mode: FailureDrop} }

var retryPattern = regexp.MustCompile(`^retry\((\d+)\)$`)

// ParseFailurePolicy accepts "drop", "retain" or "retry(n)".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "", string(FailureDrop):
		return DropPolicy(), nil
	case string(FailureRetain):
		return FailurePolicy{Mode: FailureRetain}, nil
	}

	m := retryPattern.FindStringSubmatch(v)
	if m == nil {
		return FailurePolicy{}, errs.Wrapf(ErrInvalidPolicy, "%q", s)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > maxRetries {
		return FailurePolicy{}, errs.Wrapf(ErrInvalidPolicy, "retry count must be between 1 and %d, got %q", maxRetries, m[1])
	}
	return FailurePolicy{Mode: FailureRetry, MaxRetries: n}, nil
}

func (p FailurePolicy) String() string {
	if p.Mode == FailureRetry {
		return fmt.Sprintf("retry(%d)", p.MaxRetries)
	}
	return string(p.Mode)
}
