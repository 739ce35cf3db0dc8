// Command server starts the transect parsing HTTP API server.
//
// Usage:
//
//	server [flags]
//
// Flags:
//
//	-addr string
//	    Server address (default ":8080")
//	-read-timeout duration
//	    HTTP read timeout (default 30s)
//	-write-timeout duration
//	    HTTP write timeout (default 30s)
//	-max-nodes-ratio float
//	    Cap on len(nodes)/len(terminals) - 1 before NODE/IMPLICIT is rejected (default 10)
//	-verify
//	    Re-check invariants after every transition (default true)
//
// Example:
//
//	# Start server on default port
//	server
//
//	# Start server on custom port with a looser node-ratio cap
//	server -addr :9090 -max-nodes-ratio 20
//
// The server exposes the following endpoints:
//
//	POST   /api/v1/parse       - Parse tokens + an action trace into a passage
//	GET    /health             - Health check
//	GET    /health/live        - Liveness probe
//	GET    /health/ready       - Readiness probe
//	GET    /metrics            - Prometheus metrics
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yesoreyeram/transect/pkg/config"
	"github.com/yesoreyeram/transect/pkg/server"
)

func main() {
	// Define flags
	addr := flag.String("addr", ":8080", "Server address")
	readTimeout := flag.Duration("read-timeout", 30*time.Second, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", 30*time.Second, "HTTP write timeout")
	maxNodesRatio := flag.Float64("max-nodes-ratio", 10, "Cap on len(nodes)/len(terminals) - 1")
	verify := flag.Bool("verify", true, "Re-check invariants after every transition")

	flag.Parse()

	// Create server config
	serverConfig := server.Config{
		Address:            *addr,
		ReadTimeout:        *readTimeout,
		WriteTimeout:       *writeTimeout,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 10 * 1024 * 1024, // 10MB
		EnableCORS:         true,
	}

	// Create parse options
	parseOptions := config.Default()
	parseOptions.Verify = *verify
	parseOptions.MaxNodesRatio = *maxNodesRatio

	// Create server
	srv, err := server.New(serverConfig, parseOptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create server: %v\n", err)
		os.Exit(1)
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		fmt.Printf("Starting transect parse server on %s\n", *addr)
		fmt.Printf("Health check:     http://localhost%s/health\n", *addr)
		fmt.Printf("Liveness probe:   http://localhost%s/health/live\n", *addr)
		fmt.Printf("Readiness probe:  http://localhost%s/health/ready\n", *addr)
		fmt.Printf("Metrics:          http://localhost%s/metrics\n", *addr)
		fmt.Printf("API endpoint:     http://localhost%s/api/v1/parse\n", *addr)
		fmt.Println("\nPress Ctrl+C to shutdown")

		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal: %v\n", sig)
		fmt.Println("Shutting down gracefully...")

		// Create shutdown context with timeout
		ctx, cancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
		defer cancel()

		// Shutdown server
		if err := srv.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Server stopped")
	}
}
