// Package host is the boundary between the safemath core and the runtimes that
// consume it. The core only returns safemath.ErrorKind values; this package turns
// them into stable numeric codes, gRPC statuses, Connect errors and typed service
// errors, and runs instructions so that a failed one leaves no partial state.
package host
