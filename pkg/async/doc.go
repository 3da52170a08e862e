// Package async provides a generic Future for running computations in the
// background and collecting their results.
//
// # Usage
//
//	future := async.Async(ctx, secret, func(ctx context.Context, s string) (string, error) {
//		return generator.GenerateAt(ctx, s, at)
//	})
//
//	// Do other work...
//
//	code, err := future.Await()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Waiting with a deadline:
//
//	code, err := future.AwaitWithTimeout(50 * time.Millisecond)
//	if errors.Is(err, async.ErrTimeout) {
//		log.Println("generation timed out")
//	}
//
// # Context Support
//
// A context cancelled before the goroutine starts work completes the future
// with the context's error without calling the function.
//
// All operations are safe for concurrent use. Completion is guarded by sync.Once.
package async
