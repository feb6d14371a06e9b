package server

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartPprofServer serves the profiling endpoints on their own
// listener, kept off the public port. Meant for localhost or an SSH
// tunnel only.
func StartPprofServer(addr string, logger *zap.Logger) {
	router := gin.New()
	pprof.Register(router)

	go func() {
		logger.Info("Profiling endpoints listening", zap.String("addr", addr))
		if err := router.Run(addr); err != nil {
			logger.Error("Profiling listener stopped", zap.Error(err))
		}
	}()
}
