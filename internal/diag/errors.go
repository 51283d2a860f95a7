// Package diag defines a closed error taxonomy for internal/pyenv, plus
// the panic value internal/store raises on internal-invariant violations
// (a stale handle — a "programmer error," not a recoverable result).
//
// Each error type here is a small exported struct with an Error()
// string method — no wrapped-error chains, no sentinel values, just
// named struct types a caller can type-switch on.
package diag

import "fmt"

// Origin records why environment discovery was attempted, so an error
// can say "looked for a venv because $VIRTUAL_ENV was set" rather than
// just "no pyvenv.cfg."
type Origin int

const (
	OriginCLIFlag Origin = iota
	OriginEnvVar
	OriginConfigFile
	OriginLocalDotVenv
	OriginCondaPrefix
	OriginSystemInterpreter
)

func (o Origin) String() string {
	switch o {
	case OriginCLIFlag:
		return "cli-flag"
	case OriginEnvVar:
		return "env-var"
	case OriginConfigFile:
		return "config-file"
	case OriginLocalDotVenv:
		return "local-.venv"
	case OriginCondaPrefix:
		return "conda-prefix"
	case OriginSystemInterpreter:
		return "system-interpreter"
	default:
		return "unknown-origin"
	}
}

// CanonicalizationIoError wraps a filesystem error encountered while
// resolving symlinks or stat-ing a candidate path.
type CanonicalizationIoError struct {
	Path   string
	Origin Origin
	Cause  error
}

func (e *CanonicalizationIoError) Error() string {
	return fmt.Sprintf("canonicalizing %q (origin: %s): %v", e.Path, e.Origin, e.Cause)
}
func (e *CanonicalizationIoError) Unwrap() error { return e.Cause }

// PathNotExecutableOrDirectoryError is returned when the candidate path
// is neither a Python executable nor a directory.
type PathNotExecutableOrDirectoryError struct {
	Path   string
	Origin Origin
}

func (e *PathNotExecutableOrDirectoryError) Error() string {
	return fmt.Sprintf("%q (origin: %s) is neither an executable nor a directory", e.Path, e.Origin)
}

// NoPyvenvCfgFileError is returned when origin demands a virtual
// environment but sys.prefix has no pyvenv.cfg.
type NoPyvenvCfgFileError struct {
	SysPrefix string
	Origin    Origin
}

func (e *NoPyvenvCfgFileError) Error() string {
	return fmt.Sprintf("no pyvenv.cfg under %q (origin: %s)", e.SysPrefix, e.Origin)
}

// PyvenvCfgParseErrorKind enumerates the ways a pyvenv.cfg line can be
// malformed enough to be an error, as opposed to merely skipped (a line
// with no '=' is skipped, not an error).
type PyvenvCfgParseErrorKind int

const (
	ParseErrEmptyKey PyvenvCfgParseErrorKind = iota
	ParseErrNoHomeKey
	ParseErrInvalidHomeValue
)

func (k PyvenvCfgParseErrorKind) String() string {
	switch k {
	case ParseErrEmptyKey:
		return "empty-key"
	case ParseErrNoHomeKey:
		return "no-home-key"
	case ParseErrInvalidHomeValue:
		return "invalid-home-value"
	default:
		return "unknown"
	}
}

// PyvenvCfgParseError is returned for a structurally invalid pyvenv.cfg:
// an empty key or an empty value around '=' (both reported as
// ParseErrEmptyKey), a missing required `home` key, or a `home` value
// that is not an absolute path (the path is not checked on disk). Line
// is 1-indexed, or 0 if the error isn't tied to one line (e.g.
// ParseErrNoHomeKey).
type PyvenvCfgParseError struct {
	Path string
	Kind PyvenvCfgParseErrorKind
	Line int
}

func (e *PyvenvCfgParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Kind)
}

// CouldNotReadLibDirectoryError is returned when the concurrent
// `lib`/`lib64` scan under sys.prefix (Dir) is aborted, which happens
// only when its context is cancelled. A `lib`/`lib64` that cannot be
// read is not this error: it becomes a warning on the result, and
// finding nothing at all is NoSitePackagesDirFoundError.
type CouldNotReadLibDirectoryError struct {
	Dir   string
	Cause error
}

func (e *CouldNotReadLibDirectoryError) Error() string {
	return fmt.Sprintf("reading %q: %v", e.Dir, e.Cause)
}
func (e *CouldNotReadLibDirectoryError) Unwrap() error { return e.Cause }

// NoSitePackagesDirFoundError is returned when no site-packages
// directory could be located under sys.prefix.
type NoSitePackagesDirFoundError struct {
	SysPrefix string
}

func (e *NoSitePackagesDirFoundError) Error() string {
	return fmt.Sprintf("no site-packages directory found under %q", e.SysPrefix)
}

// NoStdlibFoundError is returned when the real standard library
// directory could not be located for the resolved interpreter.
type NoStdlibFoundError struct {
	Home string
}

func (e *NoStdlibFoundError) Error() string {
	return fmt.Sprintf("no standard library found under interpreter home %q", e.Home)
}

// InvariantViolation is panicked, never returned, when core code detects
// its own bug: a stale store.Handle, a malformed intersection built
// outside the smart constructors, or similar. The core aborts with a
// diagnostic identifying the culprit rather than silently corrupting
// state.
type InvariantViolation struct {
	Component string
	Detail    string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("tycore invariant violated in %s: %s", e.Component, e.Detail)
}
