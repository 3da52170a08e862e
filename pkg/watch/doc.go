// Package watch drives a TOTP display: it polls the countdown on a fixed
// cadence, regenerates the code when the 30-second window rolls over and
// hands each observation to a Renderer.
//
//	gen, _ := totp.New()
//	w, err := watch.New(gen, secret, watch.RendererFunc(func(f watch.Frame) {
//		if f.Err != nil {
//			fmt.Println("error:", f.Err)
//			return
//		}
//		fmt.Printf("%s  %2ds\n", f.Code, f.Remaining)
//	}))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	_ = w.Run(ctx)
//
// Stopping the context at any point leaves nothing to clean up: the code
// source is stateless and the watcher's own state is discarded with it.
package watch
