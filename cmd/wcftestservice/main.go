// Command wcftestservice runs the reference SOAP service the contract tests are written
// against. The harness can stop it with a DELETE request on its base URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/ceidion/wcf/soap"
	"github.com/ceidion/wcf/wcfservice"
)

const (
	defaultPort     = 8000
	shutdownTimeout = 5 * time.Second
)

func main() {
	var port int
	var maxRequestSize int

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.IntVar(&port, "port", defaultPort, "port to listen on")
	fs.IntVar(&maxRequestSize, "max-request-size", soap.DefaultMaxRequestSize, "largest request body accepted, in bytes")
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.New(os.Stdout, "[testservice] ", log.LstdFlags)
	server := &http.Server{Addr: fmt.Sprintf(":%d", port)}
	done := make(chan struct{})

	server.Handler = wcfservice.NewHandler(wcfservice.HandlerOptions{
		Service:        wcfservice.EchoService{},
		MaxRequestSize: maxRequestSize,
		Logger:         logger,
		OnStop: func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				logger.Printf("Shutdown error: %s", err)
			}
			close(done)
		},
	})

	logger.Printf("Listening on port %d", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server error: %s", err)
	}
	<-done
	logger.Printf("Stopped")
}
