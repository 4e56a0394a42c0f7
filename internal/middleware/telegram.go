package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"taskcal-bot/pkg/response"
	"taskcal-bot/pkg/telegram"
)

// TelegramSecret rejects webhook calls that do not carry the secret token
// registered with setWebhook.
func (m Middleware) TelegramSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.webhookSecret == "" {
			c.Next()
			return
		}
		got := c.GetHeader(telegram.SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.webhookSecret)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.TelegramSecret: rejected request from %s", c.ClientIP())
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// RateLimit throttles requests per client IP.
func (m Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !m.limiter.Allow(ip) {
			m.l.Warnf(c.Request.Context(), "middleware.RateLimit: rate limit exceeded for %s", ip)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
