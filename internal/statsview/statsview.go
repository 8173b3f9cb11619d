// Package statsview runs a local HTTP server offering runtime statistics of
// the emulator process.
//
// After launch, graphical statistics are viewable at
//
//	localhost:12600/debug/statsview
//
// and the standard Go pprof endpoints at
//
//	localhost:12600/debug/pprof/
package statsview

import (
	"errors"
	"net/http"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the default listen address of the stats server.
const Address = "localhost:12600"

const path = "/debug/statsview"

// Launch starts the stats server in a new goroutine and returns a function
// stopping it.
func Launch(logger *log.Logger, address string) func() {
	viewer.SetConfiguration(viewer.WithAddr(address))
	mgr := statsview.New()

	go func() {
		if err := mgr.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Stats server stopped", log.Err(err))
		}
	}()

	logger.Info("Stats server available", log.String("url", URL(address)))
	return mgr.Stop
}

// URL returns the address of the statistics page.
func URL(address string) string {
	return "http://" + address + path
}
