// Package workflows contains the business logic for yubivault operations,
// separated from the CLI presentation layer.
//
// Each workflow takes a context and an Options struct, and returns a
// Result struct plus an error. Failures are sentinel errors from the
// internal/errors package, wrapped with context via %w, so the CLI layer
// can match them with errors.Is and render an actionable message.
//
// Options structs carry an optional Store and Responder. When nil, they
// are resolved from the discovered vault settings and config; tests pass
// explicit values to run against a temp directory and a fake token.
//
// Every operation is a full load -> mutate -> save pass over the single
// vault document. Nothing is cached between calls, and no derived key or
// plaintext outlives one workflow invocation.
package workflows
