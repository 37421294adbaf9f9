package strategy

// Outcome enumerates the three ways an authentication attempt can end.
type Outcome int

const (
	// OutcomeSuccess means a user was established.
	OutcomeSuccess Outcome = iota
	// OutcomeFail means the credentials were rejected. Not an error.
	OutcomeFail
	// OutcomeError means the attempt could not be completed.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFail:
		return "fail"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one authentication attempt. Exactly one of the
// three constructors produces it; which fields are meaningful depends on
// the Outcome.
type Result struct {
	Outcome Outcome

	// User is the application-level principal. Set on success only.
	User any

	// Info carries auxiliary detail: application metadata on success,
	// the rejection reason on failure.
	Info any

	// Err is the failure cause. Set on error only.
	Err error
}

// Success reports an established user together with optional metadata.
func Success(user, info any) Result {
	return Result{Outcome: OutcomeSuccess, User: user, Info: info}
}

// Fail reports rejected credentials with an optional reason.
func Fail(info any) Result {
	return Result{Outcome: OutcomeFail, Info: info}
}

// Error reports an attempt that could not be completed.
func Error(err error) Result {
	return Result{Outcome: OutcomeError, Err: err}
}
