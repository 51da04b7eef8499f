// internal/storage/model.go
//
// 定義「資料持久化層 (storage layer)」的結構模型。
// 該層只提供 Bank 系統的序列化格式（目前為 JSON）與中繼資訊 (Meta)，不涉入商業邏輯。
// 金額一律以 decimal 字串保存，避免浮點誤差。
package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// 目前的快照格式。
const (
	StorageJSON   = "json_snapshot"
	SchemaVersion = 2
)

// Meta 為所有持久化快照的中繼資料 (metadata)。
type Meta struct {
	Storage   string    `json:"storage"`        // 儲存類型，例如 "json_snapshot"
	Version   int       `json:"version"`        // 結構版本號，用於未來升級時比對
	Timestamp time.Time `json:"timestamp"`      // 快照建立時間
	Note      string    `json:"note,omitempty"` // 備註欄
}

// PersistLog 為交易日誌在儲存層的格式。
type PersistLog struct {
	ID           string          `json:"id"`
	Time         time.Time       `json:"time"`
	Amount       decimal.Decimal `json:"amount"`
	Direction    string          `json:"direction"`
	CounterID    string          `json:"counter_account,omitempty"`
	Note         string          `json:"note"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// PersistAccount 為帳戶在儲存層的序列化格式。
type PersistAccount struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Logs    []PersistLog    `json:"logs"`
}

// Snapshot 為 Bank 狀態的完整快照。
type Snapshot struct {
	Meta     Meta             `json:"_meta"`
	NextID   int64            `json:"next_id"`
	Accounts []PersistAccount `json:"accounts"`
}
