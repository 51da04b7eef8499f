// internal/server/response.go
//
// 本檔負責統一錯誤回應。
// handler 只需 c.Error(err)，由 renderErrors 依錯誤種類決定狀態碼並輸出
// {"error": "...", "kind": "..."}。

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bankstats/internal/bank"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// bind 解析 JSON 請求；失敗時記錄為 bind 錯誤並回傳 false。
func bind(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}

// statusFor 將錯誤映射為 HTTP 狀態碼。
func statusFor(e *gin.Error) int {
	if e.IsType(gin.ErrorTypeBind) {
		return http.StatusBadRequest
	}
	switch bank.KindOf(e.Err) {
	case bank.KindValidation:
		return http.StatusBadRequest
	case bank.KindInsufficientFunds:
		return http.StatusConflict
	case bank.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// renderErrors 在 handler 之後執行，把最後一個錯誤輸出為 JSON。
func (s *Server) renderErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		last := c.Errors.Last()
		code := statusFor(last)
		kind := bank.KindOf(last.Err).String()
		if last.IsType(gin.ErrorTypeBind) {
			kind = "bad_request"
		}
		if code >= http.StatusInternalServerError {
			s.lggr.Errorw("request failed", "path", c.FullPath(), "err", last.Err)
		}
		c.JSON(code, errorBody{Error: last.Err.Error(), Kind: kind})
	}
}
