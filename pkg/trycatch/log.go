package trycatch

import (
	"errors"

	"github.com/go-logr/logr"

	"github.com/mhahnFr/mh-tryCatch/pkg/errx"
)

// logFatal logs err with its errx fields flattened into key/value pairs:
//   - error.code: "70000"
//   - error.category: "Uncaught exception"
//   - error.message: "terminating due to uncaught exception of type \"int\""
//   - error.context.tag: "int"
func logFatal(logger logr.Logger, err error, msg string) {
	if err == nil {
		return
	}

	var errxErr *errx.Error
	if !errors.As(err, &errxErr) {
		logger.Error(err, msg)
		return
	}

	keysAndValues := []any{
		"error.code", errxErr.Code(),
		"error.category", errxErr.Description(),
		"error.message", errxErr.Message(),
	}
	for key, value := range errxErr.Context() {
		keysAndValues = append(keysAndValues, "error.context."+key, value)
	}
	if cause := errxErr.Cause(); cause != nil {
		keysAndValues = append(keysAndValues, "error.cause", cause.Error())
	}
	logger.Error(err, msg, keysAndValues...)
}
