package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunFinanceSync triggers a full reconciliation pass and returns its summary.
func (s *Server) RunFinanceSync(c *gin.Context) {
	run, err := s.finSync.RunFullSync(c.Request.Context())
	if err != nil {
		s.log.Error("manual sync failed", zap.Error(err))
		status := http.StatusBadGateway
		body := gin.H{"error": "sync_failed"}
		if run != nil {
			body["data"] = run
		}
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": run})
}

// LastFinanceSync returns the most recent run summary, if any.
func (s *Server) LastFinanceSync(c *gin.Context) {
	run := s.finSync.LastRun()
	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no_sync_run_yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": run})
}
