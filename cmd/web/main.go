// Command web serves the housing market dashboard: it loads the
// normalized dataset into memory and binds the HTTP server (default port
// 8501) that serves the UI and the JSON API.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"homepulse/internal/app"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("PANIC RECOVERED: %v\n", r)
			fmt.Printf("Stack trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	application, err := app.NewApplication()
	if err != nil {
		fmt.Printf("Error: failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		application.Logger.Error("application exited with error", "error", err)
		os.Exit(1)
	}
}
