package actions

import (
	"errors"
	"fmt"
)

// FailureKind is the closed set of reasons an action is rejected. Every kind
// is deterministic: the same inputs always yield the same kind.
type FailureKind uint8

const (
	CurrencyMismatch FailureKind = 1 + iota
	BelowMinimumBounty
	InsufficientBalance
	InvalidSeasonWindow
	RepeatedConsecutiveSeasonContribution
	UnauthorizedAvatar
	InsufficientStaking
	MalformedPayload
	GasExhausted
)

var failureNames = map[FailureKind]string{
	CurrencyMismatch:                      "CurrencyMismatch",
	BelowMinimumBounty:                    "BelowMinimumBounty",
	InsufficientBalance:                   "InsufficientBalance",
	InvalidSeasonWindow:                   "InvalidSeasonWindow",
	RepeatedConsecutiveSeasonContribution: "RepeatedConsecutiveSeasonContribution",
	UnauthorizedAvatar:                    "UnauthorizedAvatar",
	InsufficientStaking:                   "InsufficientStaking",
	MalformedPayload:                      "MalformedPayload",
	GasExhausted:                          "GasExhausted",
}

func (k FailureKind) String() string {
	if name, ok := failureNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FailureKind(%d)", uint8(k))
}

// Failure is a typed rejection. Compare with errors.Is against the Err*
// sentinels; the message is informational only.
type Failure struct {
	Kind FailureKind
	Msg  string
}

func (f *Failure) Error() string {
	if f.Msg == "" {
		return f.Kind.String()
	}
	return f.Kind.String() + ": " + f.Msg
}

// Is matches any Failure of the same kind.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

var (
	ErrCurrencyMismatch                      = &Failure{Kind: CurrencyMismatch}
	ErrBelowMinimumBounty                    = &Failure{Kind: BelowMinimumBounty}
	ErrInsufficientBalance                   = &Failure{Kind: InsufficientBalance}
	ErrInvalidSeasonWindow                   = &Failure{Kind: InvalidSeasonWindow}
	ErrRepeatedConsecutiveSeasonContribution = &Failure{Kind: RepeatedConsecutiveSeasonContribution}
	ErrUnauthorizedAvatar                    = &Failure{Kind: UnauthorizedAvatar}
	ErrInsufficientStaking                   = &Failure{Kind: InsufficientStaking}
	ErrMalformedPayload                      = &Failure{Kind: MalformedPayload}
	ErrGasExhausted                          = &Failure{Kind: GasExhausted}
)

// ErrMissingTableRow means the loaded sheets lack a row the action needs.
// It is a configuration fault, deterministic across nodes sharing genesis.
var ErrMissingTableRow = errors.New("actions: missing table row")

func fail(kind FailureKind, format string, args ...interface{}) *Failure {
	return &Failure{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the failure kind of err.
func KindOf(err error) (FailureKind, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind, true
	}
	return 0, false
}
