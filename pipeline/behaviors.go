package pipeline

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"go.uber.org/zap"
)

// LoggingBehavior logs every request and its outcome.
type LoggingBehavior struct {
	logger *zap.Logger
}

// NewLoggingBehavior creates a new logging behavior.
func NewLoggingBehavior(logger *zap.Logger) *LoggingBehavior {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingBehavior{logger: logger}
}

func (b *LoggingBehavior) Handle(ctx context.Context, req Request, next Next) (any, error) {
	name := RequestName(req)
	start := time.Now()

	b.logger.Debug("executing request", zap.String("request", name))

	result, err := next(ctx)
	if err != nil {
		b.logger.Error("request failed",
			zap.String("request", name),
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return result, err
	}

	b.logger.Debug("request succeeded",
		zap.String("request", name),
		zap.Duration("duration", time.Since(start)))
	return result, nil
}

// ValidationBehavior rejects requests whose Validate method fails before
// any later stage runs. Requests without a Validate method pass through.
type ValidationBehavior struct {
	logger *zap.Logger
}

// NewValidationBehavior creates a new validation behavior.
func NewValidationBehavior(logger *zap.Logger) *ValidationBehavior {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ValidationBehavior{logger: logger}
}

func (b *ValidationBehavior) Handle(ctx context.Context, req Request, next Next) (any, error) {
	v, ok := req.(validation.Validatable)
	if !ok {
		return next(ctx)
	}

	if err := v.Validate(); err != nil {
		b.logger.Warn("request validation failed",
			zap.String("request", RequestName(req)),
			zap.Error(err))
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
			WithTextCode(CodeValidationFailed)
	}

	return next(ctx)
}
