// Package strategy defines the contract between authentication strategies
// and the HTTP layer that drives them: a transport-flexible request carrier,
// a three-variant outcome, and a registry for dispatch by name.
package strategy

import "context"

// Strategy is implemented by authentication mechanisms that decide the
// outcome of a request from the credentials it carries.
type Strategy interface {
	// Name returns the identifier the strategy is registered under.
	Name() string

	// Authenticate inspects the request and produces an outcome. Missing
	// credentials are reported through the result, never by panicking.
	Authenticate(ctx context.Context, req *Request) Result
}
