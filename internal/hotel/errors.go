package hotel

import (
	"errors"
	"fmt"
)

// Kind classifies failures the presentation layer can act on.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindInvalidRequest
	KindForbidden
)

type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

func InvalidRequest(format string, args ...any) error {
	return &Error{Kind: KindInvalidRequest, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool  { return KindOf(err) == KindConflict }
func IsInvalid(err error) bool   { return KindOf(err) == KindInvalidRequest }
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }
