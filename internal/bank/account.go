// Package bank 定義核心領域模型與業務規則。
// 本檔定義 Account 與交易 Log 結構，以及單一帳戶的存提款規則，不含任何 HTTP 或儲存細節。

package bank

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account.
// 零值即為可用帳戶（餘額 0）；Balance 只經由 Deposit / Withdraw 變更，恆 >= 0。
// 單一 Account 不自帶鎖，並行存取需由 Bank 序列化。
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
	Logs    []Log           `json:"-"`
}

// Log represents a transaction record.
type Log struct {
	ID           string          `json:"id"`
	Time         time.Time       `json:"time"`
	Amount       decimal.Decimal `json:"amount"`
	Direction    string          `json:"direction"`
	CounterID    string          `json:"counter_account"`
	Note         string          `json:"note"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// 交易方向。
const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// Deposit 存款：金額需 > 0，否則回傳 ErrBadAmount（KindValidation）且餘額不變。
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return opError("deposit", amount.String(), ErrBadAmount)
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw 提款：金額需 > 0 且不得超過餘額。
// 先檢查金額、再檢查餘額；任一失敗皆不改變餘額。
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return opError("withdraw", amount.String(), ErrBadAmount)
	}
	if amount.GreaterThan(a.Balance) {
		return opError("withdraw", amount.String(), ErrInsufficient)
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}
