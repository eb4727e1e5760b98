package testtool

import (
	"net/http"
	_ "net/http/pprof" // registers the pprof endpoints on DefaultServeMux

	"drift_chronicles_service/pkg/config"
	"drift_chronicles_service/pkg/logger"
)

// StartPprof start the pprof monitoring server outside production
func StartPprof() {
	if config.IsProduction() {
		logger.Log.Info("Production environment detected, pprof is disabled.")
		return
	}

	go func() {
		logger.Log.Info("Starting pprof server on :6060")
		if err := http.ListenAndServe("127.0.0.1:6060", nil); err != nil {
			logger.Log.Infof("pprof server failed: ", err)
		}
	}()
}
