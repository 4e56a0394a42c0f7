package httpserver

import (
	"taskcal-bot/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "taskcal-bot"
)

func statusBody(status string) gin.H {
	return gin.H{
		"status":  status,
		"service": ServiceName,
		"version": HealthVersion,
	}
}

// healthCheck reports that the process is serving HTTP.
// @Summary Health
// @Description Reports that the bot process is up
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, statusBody("healthy"))
}

// readyCheck also reports the delivery mode, so a deploy can tell a
// webhook instance from a polling one.
// @Summary Readiness
// @Description Reports readiness and the Telegram delivery mode
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	body := statusBody("ready")
	body["telegram"] = "polling"
	if srv.telegramHandler != nil {
		body["telegram"] = "webhook"
	}
	response.OK(c, body)
}

// @Summary Liveness
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, statusBody("alive"))
}
