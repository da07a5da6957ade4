package fileserver

import (
	"errors"
	"fmt"
	weakrand "math/rand"
	"path"
	"runtime"
	"strings"
)

// Kind classifies the failures the share can produce. The HTTP layer is the
// only place that maps kinds to status codes.
type Kind int

const (
	// KindForbidden marks a path that escapes the shared root.
	KindForbidden Kind = iota
	// KindNotFound marks a path that does not exist (or is the wrong type
	// for the requested operation).
	KindNotFound
	// KindUnreadable marks a directory that could not be enumerated.
	KindUnreadable
	// KindTransient marks a race between resolve and serve, e.g. a file
	// deleted after it was classified.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindUnreadable:
		return "unreadable"
	case KindTransient:
		return "transient io"
	}
	return "unknown"
}

// HandlerError is a typed outcome from the resolver, lister, or file server.
// The ID and Trace exist for log correlation only; they are never sent to
// clients.
type HandlerError struct {
	Err  error // the original error value and message
	Kind Kind

	ID    string // generated; for identifying this error in logs
	Trace string // produced from call stack
}

// Errorf builds a HandlerError of the given kind from a format string.
func Errorf(kind Kind, format string, args ...any) HandlerError {
	return Error(kind, fmt.Errorf(format, args...))
}

// Error wraps err as a HandlerError of the given kind. If err already is a
// HandlerError its kind, ID, and trace are preserved.
func Error(kind Kind, err error) HandlerError {
	const idLen = 9
	var he HandlerError
	if errors.As(err, &he) {
		if he.ID == "" {
			he.ID = randString(idLen)
		}
		if he.Trace == "" {
			he.Trace = trace()
		}
		return he
	}
	return HandlerError{
		Err:   err,
		Kind:  kind,
		ID:    randString(idLen),
		Trace: trace(),
	}
}

func (e HandlerError) Error() string {
	var s string
	if e.ID != "" {
		s += fmt.Sprintf("{id=%s}", e.ID)
	}
	if e.Trace != "" {
		s += " " + e.Trace
	}
	s += ": " + e.Kind.String()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return strings.TrimSpace(s)
}

// Unwrap returns the underlying error value. See the `errors` package for info.
func (e HandlerError) Unwrap() error { return e.Err }

// KindOf extracts the kind from err. Errors that are not HandlerErrors are
// reported as transient so callers fail closed rather than leak details.
func KindOf(err error) Kind {
	var he HandlerError
	if errors.As(err, &he) {
		return he.Kind
	}
	return KindTransient
}

// randString returns a string of n random characters. It is not even
// remotely secure OR a proper distribution, but it's good enough for
// tagging errors in logs. Excludes confusing characters like l, 1, O.
func randString(n int) string {
	if n <= 0 {
		return ""
	}
	dict := []byte("abcdefghijkmnpqrstuvwxyz0123456789")
	b := make([]byte, n)
	for i := range b {
		//nolint:gosec
		b[i] = dict[weakrand.Int63()%int64(len(dict))]
	}
	return string(b)
}

func trace() string {
	if pc, file, line, ok := runtime.Caller(2); ok {
		filename := path.Base(file)
		pkgAndFuncName := path.Base(runtime.FuncForPC(pc).Name())
		return fmt.Sprintf("%s (%s:%d)", pkgAndFuncName, filename, line)
	}
	return ""
}
