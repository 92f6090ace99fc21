// Copyright (c) 2019 The DasCore developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dcore

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies failures of state transition code.
type ErrorKind int

const (
	// KindValidation - a precondition on current state is violated. The
	// enclosing transaction is rejected and undone, block processing goes on.
	KindValidation ErrorKind = iota + 1
	// KindAuthorization - authority/administrator mismatch. A specialization
	// of validation carrying the domain name for diagnostics.
	KindAuthorization
	// KindConsistency - an internal invariant broke during apply. Fatal to
	// block processing, reported as a defect.
	KindConsistency
	// KindResourceExhausted - a configured cap exceeded. Recoverable at the
	// transaction level except for undo-history exhaustion, which is fatal.
	KindResourceExhausted
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindConsistency:
		return "consistency"
	case KindResourceExhausted:
		return "resource exhausted"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a classified state transition failure.
type Error struct {
	Kind   ErrorKind
	Domain string // set for authorization failures
	msg    string
	cause  error
}

func (e *Error) Error() string {
	var s string
	if e.Domain != "" {
		s = fmt.Sprintf("%v (%s): %s", e.Kind, e.Domain, e.msg)
	} else {
		s = fmt.Sprintf("%v: %s", e.Kind, e.msg)
	}
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.cause }

// Validationf builds a validation failure.
func Validationf(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, msg: fmt.Sprintf(format, args...)}
}

// Authorizationf builds an authorization failure for the named domain.
func Authorizationf(domain, format string, args ...interface{}) error {
	return &Error{Kind: KindAuthorization, Domain: domain, msg: fmt.Sprintf(format, args...)}
}

// Consistencyf builds a fatal consistency fault.
func Consistencyf(format string, args ...interface{}) error {
	return &Error{Kind: KindConsistency, msg: fmt.Sprintf(format, args...)}
}

// Exhaustedf builds a resource exhaustion failure.
func Exhaustedf(format string, args ...interface{}) error {
	return &Error{Kind: KindResourceExhausted, msg: fmt.Sprintf(format, args...)}
}

// WrapConsistency marks err fatal, keeping it as the cause.
func WrapConsistency(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindConsistency, msg: fmt.Sprintf(format, args...), cause: err}
}

// KindOf extracts the error kind, or 0 when err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation also covers authorization, which specializes it.
func IsValidation(err error) bool {
	k := KindOf(err)
	return k == KindValidation || k == KindAuthorization
}

func IsAuthorization(err error) bool {
	return KindOf(err) == KindAuthorization
}

func IsConsistency(err error) bool {
	return KindOf(err) == KindConsistency
}

func IsResourceExhausted(err error) bool {
	return KindOf(err) == KindResourceExhausted
}

// Rejectable reports whether err may reject a transaction without aborting
// block processing.
func Rejectable(err error) bool {
	switch KindOf(err) {
	case KindValidation, KindAuthorization, KindResourceExhausted:
		return true
	default:
		return false
	}
}
