package main

import (
	"context"
	"expvar"
	"flag"
	"fmt"
	"log"
	"net/http"

	echoapi "github.com/trezcool/masomo-admin/apps/api/echo"
	"github.com/trezcool/masomo-admin/core"
	"github.com/trezcool/masomo-admin/core/dashboard"
)

func main() {
	di := flag.String("di", "manual", "how dependencies are wired: manual | dig")
	flag.Parse()

	switch *di {
	case "dig":
		startWithDig()
	default:
		startManual()
	}
}

// startDebugServer serves /debug/vars on conf.Server.DebugHost.
//
// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
// /debug/vars - Added to the default mux by importing the expvar package.
func startDebugServer(conf *core.Config, logger core.Logger, sessions *dashboard.Registry) {
	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.Publish("sessions", expvar.Func(func() interface{} { return sessions.Len() }))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()
}

// serve starts server and blocks until it fails or is asked to shut down.
func serve(conf *core.Config, logger core.Logger, server echoapi.Server) {
	go func() {
		server.Start()
	}()

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
