// Command demo runs the reference application built on the framework.
//
// Run:
//
//	go run ./cmd/demo
//
// Then explore:
//
//	GET  http://localhost:8080/                    - plain text
//	GET  http://localhost:8080/health              - JSON map
//	GET  http://localhost:8080/greet/{name}        - path param binding
//	GET  http://localhost:8080/echo/{key}/{value}  - named param binding
//	POST http://localhost:8080/items               - explicit response value
//	GET  http://localhost:8080/api/v1/time         - grouped routes
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/upperxcode/shelf-plus/app/demo"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := demo.NewApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}
}
