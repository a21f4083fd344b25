// Package server provides an http.Server wrapper with graceful shutdown,
// environment-driven configuration, and an application bootstrap with
// optional hot reload.
//
// # Direct usage
//
//	srv := server.New(":8080",
//		server.WithLogger(log),
//		server.WithShutdownTimeout(10*time.Second),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := srv.Start(ctx, mux); err != nil && !errors.Is(err, context.Canceled) {
//		log.Error("server failed", "error", err)
//	}
//
// # Bootstrap
//
// Run reads Config from the environment (PORT, ADDRESS, HOTRELOAD and the
// SERVER_* timeouts, with .env support), binds the listener, and serves in
// the background:
//
//	instance, err := server.Run(ctx, func() (http.Handler, error) {
//		return buildApp(), nil
//	})
//	if err != nil {
//		log.Error("startup failed", "error", err)
//		return
//	}
//	defer instance.Close()
//
//	log.Info("listening", "url", instance.BaseURL())
//	instance.Wait()
//
// With HOTRELOAD=true (the default) the handler factory is called again
// whenever a watched directory changes, and new requests are served by the
// rebuilt handler. In-flight requests finish on the handler they started
// with.
//
// # Lifecycle coordination
//
// RunFunc integrates with errgroup for applications running several
// components:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.RunFunc(ctx, nil, mux))
//	g.Go(worker.Run(ctx))
//	err := g.Wait()
package server
