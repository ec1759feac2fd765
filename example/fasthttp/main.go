package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/logdw"
	"github.com/lixenwraith/logdw/compat"
)

func main() {
	socket := flag.String("socket", logdw.DefaultSocketPath, "Collector socket path")
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	if err := logdw.ApplyConfigString("socket_path=" + *socket); err != nil {
		panic(err)
	}
	defer logdw.Close()

	// nil config selects the package default transport
	fasthttpAdapter, err := compat.NewBuilder().BuildFastHTTP(
		compat.WithDefaultPriority(logdw.PriorityInfo),
		compat.WithLevelDetector(customLevelDetector),
	)
	if err != nil {
		panic(err)
	}

	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		Name:              "logdw-example",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	fmt.Printf("Starting server on %s\n", *addr)
	if err := server.ListenAndServe(*addr); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	logdw.Print(logdw.PriorityVerbose, "http", "%s %s", ctx.Method(), ctx.Path())
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) logdw.Priority {
	if strings.Contains(msg, "connection cannot be served") {
		return logdw.PriorityWarn
	}
	if strings.Contains(msg, "error when serving connection") {
		return logdw.PriorityError
	}
	return compat.DetectPriority(msg)
}
