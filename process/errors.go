package process

import "errors"

var (
	// ErrProcessNotFound is returned by Open when no process with the given pid exists
	ErrProcessNotFound = errors.New("process not found")

	// ErrAccessDenied is returned by Open when the process exists but the caller
	// lacks the rights to read its memory
	ErrAccessDenied = errors.New("access denied")

	// ErrOpenFailed is returned by Open when the handle could not be acquired for
	// a reason other than a missing process or missing rights
	ErrOpenFailed = errors.New("handle acquisition failed")

	// ErrModuleNotFound is returned by BaseAddress when enumeration succeeds but
	// no loaded module matches the requested name
	ErrModuleNotFound = errors.New("module not found")

	// ErrModuleEnumeration is returned when the module list itself cannot be
	// obtained, usually because the process exited or the handle lacks query rights
	ErrModuleEnumeration = errors.New("module enumeration failed")

	// ErrInvalidAddress is returned when a read touches memory the target has not
	// mapped or that is protected against reading
	ErrInvalidAddress = errors.New("address not readable")

	// ErrPartialRead is returned when the target delivered fewer bytes than
	// requested; no prefix is exposed to the caller
	ErrPartialRead = errors.New("partial read")

	// ErrProcessExited is returned when the target terminated after the handle
	// was acquired
	ErrProcessExited = errors.New("process exited")

	// ErrProcessClosed is returned when the process handle has already been
	// released by Close
	ErrProcessClosed = errors.New("process closed")
)
