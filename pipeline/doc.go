// Package pipeline implements an in-process mediator: requests are routed
// by type to a single handler through an ordered chain of behaviors.
//
// # Basic Usage
//
//	m := pipeline.NewMediator(logger,
//		pipeline.NewLoggingBehavior(logger),
//		pipeline.NewValidationBehavior(logger),
//	)
//	pipeline.RegisterHandler(m, func(ctx context.Context, q GetChecklist) (*ChecklistDTO, error) {
//		return store.Get(ctx, q.ID)
//	})
//
//	dto, err := pipeline.Send[*ChecklistDTO](ctx, m, GetChecklist{ID: id})
//
// # Behaviors
//
// A Behavior receives the request and a Next function. Calling Next runs the
// remaining behaviors and the handler; not calling it short-circuits the
// pipeline, which is how the querycache behavior serves hits. Behaviors are
// shared by all concurrent requests and must keep per-request state in local
// variables only.
//
// # Errors
//
// Pipeline failures (nil request, missing handler, unexpected types, failed
// validation) are go-errors values with a category and a text code; see
// HasTextCode and IsCategory. Handler errors are returned as-is.
package pipeline
