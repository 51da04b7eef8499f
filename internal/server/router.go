// internal/server/router.go
//
// 本檔負責 HTTP 路由註冊與中介層組裝。
// 所有端點同時掛在根路徑與 /api/v1 之下。

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Router 建立並回傳整個 HTTP 處理鏈。
// 已註冊路徑的錯誤方法回傳 405。
func (s *Server) Router() http.Handler {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery(), s.accessLog(), s.renderErrors())

	s.register(r.Group("/api/v1"))
	s.register(r.Group("/"))
	return r
}

func (s *Server) register(g *gin.RouterGroup) {
	g.GET("/health", s.health)

	g.POST("/accounts", s.createAccount)
	g.GET("/accounts", s.listAccounts)
	g.GET("/accounts/:id", s.getAccount)
	g.POST("/accounts/:id/deposit", s.deposit)
	g.POST("/accounts/:id/withdraw", s.withdraw)
	g.GET("/accounts/:id/logs", s.logs)
	g.GET("/accounts/:id/stats", s.accountStats)

	g.POST("/transfer", s.transfer)
	g.POST("/stats", s.summarize)
}

// accessLog 以 debug 等級記錄每個請求。
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.lggr.Debugw("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
