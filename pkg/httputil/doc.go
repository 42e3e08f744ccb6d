// Package httputil retries remote tree fetches.
//
// A [Backoff] re-runs an operation while it fails with a [TemporaryError],
// doubling the wait between attempts up to a cap. A server that answers
// 429 or 503 with a Retry-After header sets the next wait instead:
//
//	err := httputil.DefaultBackoff.Do(ctx, func(ctx context.Context) error {
//	    resp, err := client.Do(req.WithContext(ctx))
//	    if err != nil {
//	        return httputil.Temporary(err)
//	    }
//	    ...
//	})
//
// Errors that are not marked temporary end the loop at once.
package httputil
