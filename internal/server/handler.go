// internal/server/handler.go
//
// Package server 提供 HTTP RESTful 介面（gin），作為 bank 與 stats 模組的應用層。
// 每個 handler 僅負責：
//  1. 解析請求
//  2. 呼叫 bank / stats 執行商業邏輯
//  3. 成功時回傳 JSON；失敗時以 c.Error 交給 renderErrors 統一轉換狀態碼
//  4. 成功變更狀態後呼叫 persist hook
package server

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bankstats/internal/bank"
	"bankstats/internal/logger"
	"bankstats/internal/stats"
)

// Server 為 HTTP 層核心結構：
// - Bank：注入商業邏輯層。
// - persist：注入持久化鉤子；為 nil 時不持久化。
type Server struct {
	Bank    *bank.Bank
	persist func() error
	lggr    *zap.SugaredLogger
}

// NewServer 建立新的 HTTP 伺服器。persist 與 lggr 皆可為 nil。
func NewServer(b *bank.Bank, persist func() error, lggr *zap.SugaredLogger) *Server {
	if lggr == nil {
		lggr = logger.Nop()
	}
	return &Server{Bank: b, persist: persist, lggr: lggr.Named("server")}
}

type createRequest struct {
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferRequest struct {
	From   string          `json:"From"`
	To     string          `json:"To"`
	Amount decimal.Decimal `json:"Amount"`
}

type statsRequest struct {
	Numbers []float64 `json:"numbers"`
}

// statsResponse 的 Average 為 nil 代表 NaN（空序列），JSON 輸出為 null。
type statsResponse struct {
	Count    int      `json:"count"`
	Largest  float64  `json:"largest"`
	Smallest float64  `json:"smallest"`
	Average  *float64 `json:"average"`
}

func newStatsResponse(s stats.Summary) statsResponse {
	out := statsResponse{Count: s.Count, Largest: s.Largest, Smallest: s.Smallest}
	if !math.IsNaN(s.Average) && !math.IsInf(s.Average, 0) {
		avg := s.Average
		out.Average = &avg
	}
	return out
}

// POST /accounts
func (s *Server) createAccount(c *gin.Context) {
	var req createRequest
	if !bind(c, &req) {
		return
	}
	a, err := s.Bank.Create(req.Name, req.Balance)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, a)
	s.afterMutation("create")
}

// GET /accounts
func (s *Server) listAccounts(c *gin.Context) {
	c.JSON(http.StatusOK, s.Bank.List())
}

// GET /accounts/:id
func (s *Server) getAccount(c *gin.Context) {
	a, err := s.Bank.Get(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /accounts/:id/deposit
func (s *Server) deposit(c *gin.Context) {
	var req amountRequest
	if !bind(c, &req) {
		return
	}
	a, err := s.Bank.Deposit(c.Param("id"), req.Amount)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
	s.afterMutation("deposit")
}

// POST /accounts/:id/withdraw
func (s *Server) withdraw(c *gin.Context) {
	var req amountRequest
	if !bind(c, &req) {
		return
	}
	a, err := s.Bank.Withdraw(c.Param("id"), req.Amount)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, a)
	s.afterMutation("withdraw")
}

// GET /accounts/:id/logs
func (s *Server) logs(c *gin.Context) {
	logs, err := s.Bank.Logs(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// GET /accounts/:id/stats
func (s *Server) accountStats(c *gin.Context) {
	sum, err := s.Bank.Stats(c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, newStatsResponse(sum))
}

// POST /transfer：成功後同時回傳兩帳戶最新狀態。
func (s *Server) transfer(c *gin.Context) {
	var req transferRequest
	if !bind(c, &req) {
		return
	}
	if err := s.Bank.Transfer(req.From, req.To, req.Amount); err != nil {
		_ = c.Error(err)
		return
	}

	fromAcc, _ := s.Bank.Get(req.From)
	toAcc, _ := s.Bank.Get(req.To)
	c.JSON(http.StatusOK, gin.H{
		"message": "transfer success",
		"from":    fromAcc,
		"to":      toAcc,
	})
	s.afterMutation("transfer")
}

// POST /stats：對任意數列計算最大、最小與平均值。
func (s *Server) summarize(c *gin.Context) {
	var req statsRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, newStatsResponse(stats.Summarize(req.Numbers)))
}

// GET /health
func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// afterMutation 觸發持久化；失敗只記錄日誌，不影響已回傳的結果。
func (s *Server) afterMutation(op string) {
	if s.persist == nil {
		return
	}
	if err := s.persist(); err != nil {
		s.lggr.Errorw("persist failed", "op", op, "err", err)
	}
}
