package service

import "context"

type operatorKey struct{}

// WithOperator returns a context carrying the id of the operator who triggered the work.
func WithOperator(ctx context.Context, operatorID int) context.Context {
	return context.WithValue(ctx, operatorKey{}, operatorID)
}

// OperatorFromContext returns the operator id stored by WithOperator.
// Work started from the command line has none and reports 0, false.
func OperatorFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(operatorKey{}).(int)
	return id, ok && id > 0
}
