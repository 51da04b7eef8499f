// internal/server/server_test.go
//
// 本檔為 server 層的整合測試。
// 以 httptest.Server 模擬完整 HTTP 請求流程，驗證 REST API 與 bank 層的整合、
// 錯誤種類到狀態碼的映射，以及持久化鉤子 (persist hook) 是否在每次成功變更後觸發。
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"bankstats/internal/bank"
	"bankstats/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// doJSON 封裝 HTTP JSON 請求並驗證回傳狀態碼；out 非 nil 時解析回應。
func doJSON(t *testing.T, c *http.Client, method, url string, body any, wantCode int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, wantCode, resp.StatusCode, "%s %s", method, url)
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
}

func newTestServer(t *testing.T, persist func() error) (*httptest.Server, *http.Client) {
	t.Helper()
	s := NewServer(bank.NewBank(logger.Test(t)), persist, logger.Test(t))
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts, ts.Client()
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// TestHTTPFlowAndPersistHook 涵蓋建立、存提款、轉帳、查詢、日誌、統計與錯誤情境。
func TestHTTPFlowAndPersistHook(t *testing.T) {
	var persistCalls int32
	ts, cli := newTestServer(t, func() error {
		atomic.AddInt32(&persistCalls, 1)
		return nil
	})

	var a1, a2 bank.Account
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "A", "balance": 1000}, 201, &a1)
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "B", "balance": 500}, 201, &a2)

	doJSON(t, cli, "POST", ts.URL+"/accounts/"+a1.ID+"/deposit", map[string]any{"amount": 200}, 200, &a1)
	doJSON(t, cli, "POST", ts.URL+"/accounts/"+a2.ID+"/withdraw", map[string]any{"amount": "100"}, 200, &a2)
	assert.True(t, a1.Balance.Equal(dec(1200)))
	assert.True(t, a2.Balance.Equal(dec(400)))

	var tr struct {
		Message string       `json:"message"`
		From    bank.Account `json:"from"`
		To      bank.Account `json:"to"`
	}
	doJSON(t, cli, "POST", ts.URL+"/transfer", map[string]any{"From": a1.ID, "To": a2.ID, "Amount": 800}, 200, &tr)
	assert.Equal(t, "transfer success", tr.Message)
	assert.True(t, tr.From.Balance.Equal(dec(400)), "from=%s", tr.From.Balance)
	assert.True(t, tr.To.Balance.Equal(dec(1200)), "to=%s", tr.To.Balance)

	var got bank.Account
	doJSON(t, cli, "GET", ts.URL+"/api/v1/accounts/"+a1.ID, nil, 200, &got)
	assert.True(t, got.Balance.Equal(dec(400)))

	var all []bank.Account
	doJSON(t, cli, "GET", ts.URL+"/accounts", nil, 200, &all)
	assert.Len(t, all, 2)

	var logs []bank.Log
	doJSON(t, cli, "GET", ts.URL+"/accounts/"+a2.ID+"/logs", nil, 200, &logs)
	require.Len(t, logs, 2)
	assert.Equal(t, bank.DirectionIn, logs[1].Direction)

	var st statsResponse
	doJSON(t, cli, "GET", ts.URL+"/accounts/"+a2.ID+"/stats", nil, 200, &st)
	assert.Equal(t, 2, st.Count)
	assert.Equal(t, 800.0, st.Largest)
	assert.Equal(t, -100.0, st.Smallest)
	require.NotNil(t, st.Average)
	assert.Equal(t, 400.0, *st.Average)

	// 成功變更：create×2 + deposit + withdraw + transfer
	assert.Equal(t, int32(5), atomic.LoadInt32(&persistCalls))
}

// TestErrorKindsMapToStatus 領域錯誤依種類對應 400 / 404 / 409，失敗不觸發持久化。
func TestErrorKindsMapToStatus(t *testing.T) {
	var persistCalls int32
	ts, cli := newTestServer(t, func() error {
		atomic.AddInt32(&persistCalls, 1)
		return nil
	})

	var a bank.Account
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "A", "balance": 50}, 201, &a)

	var body errorBody
	doJSON(t, cli, "POST", ts.URL+"/accounts/"+a.ID+"/withdraw", map[string]any{"amount": 100}, 409, &body)
	assert.Equal(t, "insufficient_funds", body.Kind)

	doJSON(t, cli, "POST", ts.URL+"/accounts/"+a.ID+"/deposit", map[string]any{"amount": -5}, 400, &body)
	assert.Equal(t, "validation", body.Kind)

	doJSON(t, cli, "POST", ts.URL+"/accounts/"+a.ID+"/withdraw", map[string]any{"amount": 0}, 400, nil)
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "N", "balance": -1}, 400, nil)
	doJSON(t, cli, "POST", ts.URL+"/transfer", map[string]any{"From": a.ID, "To": a.ID, "Amount": 1}, 400, nil)

	doJSON(t, cli, "GET", ts.URL+"/accounts/999", nil, 404, &body)
	assert.Equal(t, "not_found", body.Kind)
	doJSON(t, cli, "POST", ts.URL+"/transfer", map[string]any{"From": a.ID, "To": "999", "Amount": 1}, 404, nil)

	var got bank.Account
	doJSON(t, cli, "GET", ts.URL+"/accounts/"+a.ID, nil, 200, &got)
	assert.True(t, got.Balance.Equal(dec(50)))

	assert.Equal(t, int32(1), atomic.LoadInt32(&persistCalls))
}

func TestBadJSON(t *testing.T) {
	ts, cli := newTestServer(t, nil)
	var a bank.Account
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "A", "balance": 1}, 201, &a)

	resp, err := cli.Post(ts.URL+"/accounts/"+a.ID+"/deposit", "application/json", bytes.NewBufferString("{bad json}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "bad_request", body.Kind)
}

// TestMethodNotAllowed 已註冊路徑的錯誤方法回傳 405，未知路徑回傳 404。
func TestMethodNotAllowed(t *testing.T) {
	ts, cli := newTestServer(t, nil)

	doJSON(t, cli, "GET", ts.URL+"/transfer", nil, 405, nil)
	doJSON(t, cli, "POST", ts.URL+"/accounts/1", nil, 405, nil)
	doJSON(t, cli, "GET", ts.URL+"/accounts/1/unknown", nil, 404, nil)
}

// TestStatsEndpoint 驗證任意數列的統計，以及空數列時 average 為 null。
func TestStatsEndpoint(t *testing.T) {
	ts, cli := newTestServer(t, nil)

	var st statsResponse
	doJSON(t, cli, "POST", ts.URL+"/stats", map[string]any{"numbers": []float64{15, 8, 42, 4, 23, 16}}, 200, &st)
	assert.Equal(t, 6, st.Count)
	assert.Equal(t, 42.0, st.Largest)
	assert.Equal(t, 4.0, st.Smallest)
	require.NotNil(t, st.Average)
	assert.Equal(t, 9.5, *st.Average)

	var raw map[string]any
	doJSON(t, cli, "POST", ts.URL+"/api/v1/stats", map[string]any{"numbers": []float64{}}, 200, &raw)
	assert.Equal(t, 0.0, raw["largest"])
	assert.Equal(t, 0.0, raw["smallest"])
	assert.Contains(t, raw, "average")
	assert.Nil(t, raw["average"])
}

func TestHealth(t *testing.T) {
	ts, cli := newTestServer(t, nil)
	var out map[string]string
	doJSON(t, cli, "GET", ts.URL+"/health", nil, 200, &out)
	assert.Equal(t, "ok", out["status"])
}

// TestPersistFailureIsLoggedNotReturned persist 失敗時請求仍成功，並留下錯誤日誌。
func TestPersistFailureIsLoggedNotReturned(t *testing.T) {
	lggr, logs := logger.TestObserved(t, zapcore.ErrorLevel)
	s := NewServer(bank.NewBank(nil), func() error { return errors.New("disk full") }, lggr)
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	doJSON(t, ts.Client(), "POST", ts.URL+"/accounts", map[string]any{"name": "A", "balance": 1}, 201, nil)
	require.Equal(t, 1, logs.FilterMessage("persist failed").Len())
}
