package vkquad

import (
	"os"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Error kinds. Every failure returned by this package is marked with exactly
// one of these so callers can branch with errors.Is.
var (
	ErrInitialization    = errors.New("initialization failed")
	ErrNoSuitableDevice  = errors.New("no suitable device")
	ErrMissingExtension  = errors.New("missing extension")
	ErrPresentationChain = errors.New("presentation chain")
	ErrPipelineBuild     = errors.New("pipeline build")
	ErrNoSuitableMemory  = errors.New("no suitable memory type")
	ErrShaderNotFound    = errors.New("shader not found")
	ErrRecording         = errors.New("command recording")
	ErrPresent           = errors.New("present")
)

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// NewError converts a Vulkan result into an error carrying a stack trace.
// Success yields nil.
func NewError(ret vk.Result) error {
	if !isError(ret) {
		return nil
	}
	if err := vk.Error(ret); err != nil {
		return errors.Wrapf(err, "vulkan result %d", ret)
	}
	return errors.Newf("vulkan result %d", ret)
}

// markf wraps cause with a message and marks it with kind. A nil cause
// produces a fresh error of that kind.
func markf(kind error, cause error, format string, args ...interface{}) error {
	if cause == nil {
		return errors.Mark(errors.Newf(format, args...), kind)
	}
	return errors.Mark(errors.Wrapf(cause, format, args...), kind)
}

// checkResult turns a non-success result into an error of the given kind.
func checkResult(kind error, ret vk.Result, format string, args ...interface{}) error {
	if !isError(ret) {
		return nil
	}
	return markf(kind, NewError(ret), format, args...)
}

// Fatal runs finalizers, reports err on the error log and exits with status 1.
// It does nothing when err is nil.
func Fatal(log *Logger, err error, finalizers ...func()) {
	if err == nil {
		return
	}
	for _, fn := range finalizers {
		fn()
	}
	if log == nil {
		log = NewStderrLogger()
	}
	log.Error.Printf("%v", err)
	log.Close()
	os.Exit(1)
}

func checkErr(err *error) {
	if v := recover(); v != nil {
		*err = errors.Newf("%+v", v)
	}
}
