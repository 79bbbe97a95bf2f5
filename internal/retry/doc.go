// Package retry repeats an operation with exponential backoff while its
// error is classified as transient.
//
// The PostgreSQL store uses it, when --connect-retries asks for it, to ride
// out a server that is still starting or briefly unreachable when a run opens
// its connection:
//
//	executor := retry.NewExecutor(
//	    retry.ClassifierFunc(classify.IsTransient),
//	    retry.NewExponentialBackoff(cfg.ConnectRetries),
//	)
//	err := executor.Execute(ctx, connect)
//
// With zero retries Execute makes exactly one attempt. Statements are never
// retried; a failed query or write ends the run.
package retry
