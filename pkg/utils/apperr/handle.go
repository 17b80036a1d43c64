package apperr

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
)

// Handle logs an unexpected application error. Errors caused by a caller
// going away are logged at debug level only.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Debug("request abandoned", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
