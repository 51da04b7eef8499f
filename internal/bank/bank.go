// internal/bank/bank.go

// Package bank 定義核心商業邏輯：帳戶建立、存款、提款、轉帳、查詢、交易日誌與日誌統計。
// 採用單一互斥鎖 (sync.Mutex) 保障所有狀態變更「原子且序列化」，避免競爭條件。
// 金額以 decimal.Decimal 儲存，避免浮點誤差；單一帳戶的規則委派給 Account 方法。
package bank

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bankstats/internal/logger"
	"bankstats/internal/stats"
	"bankstats/internal/storage"
)

// Bank 為聚合根 (Aggregate Root)：管理全系統帳戶。
// - mu：序列化所有讀寫，確保跨帳戶操作（轉帳）原子完成。
// - nextID：以原子遞增產生帳戶 ID。
// - accts：帳戶索引表（ID → *Account），內部指標只在臨界區內修改。
type Bank struct {
	mu     sync.Mutex
	nextID int64
	accts  map[string]*Account
	lggr   *zap.SugaredLogger
}

// NewBank 建立空白銀行實例；lggr 為 nil 時不輸出日誌。
func NewBank(lggr *zap.SugaredLogger) *Bank {
	if lggr == nil {
		lggr = logger.Nop()
	}
	return &Bank{accts: make(map[string]*Account), lggr: lggr.Named("bank")}
}

func (b *Bank) newID() string {
	id := atomic.AddInt64(&b.nextID, 1)
	return strconv.FormatInt(id, 10)
}

// Create 以名稱與初始餘額建立帳戶；初始餘額不得為負（0 允許）。
func (b *Bank) Create(name string, balance decimal.Decimal) (*Account, error) {
	if balance.IsNegative() {
		return nil, opError("create", balance.String(), ErrBadAmount)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.newID()
	a := &Account{ID: id, Name: name, Balance: balance}
	b.accts[id] = a
	b.lggr.Debugw("account created", "id", id, "balance", balance)
	cp := *a
	return &cp, nil
}

// Get 依 ID 取得帳戶的目前快照；回傳值拷貝，避免外部改寫內部指標。
func (b *Bank) Get(id string) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	cp := *a
	cp.Logs = nil
	return &cp, nil
}

// List 回傳所有帳戶的拷貝，依數字 ID 排序。
func (b *Bank) List() []*Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Account, 0, len(b.accts))
	for _, a := range b.accts {
		cp := *a
		cp.Logs = nil
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(x, y *Account) int { return compareIDs(x.ID, y.ID) })
	return out
}

// Deposit 存款：金額規則由 Account.Deposit 把關；成功後於同一臨界區追加日誌。
func (b *Bank) Deposit(id string, amt decimal.Decimal) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := a.Deposit(amt); err != nil {
		return nil, err
	}
	b.appendLog(a, time.Now(), amt, DirectionIn, "", "deposit")
	b.lggr.Debugw("deposit", "id", id, "amount", amt, "balance", a.Balance)
	cp := *a
	cp.Logs = nil
	return &cp, nil
}

// Withdraw 提款：金額需 > 0 且不得超過餘額（維持非負）。
func (b *Bank) Withdraw(id string, amt decimal.Decimal) (*Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := a.Withdraw(amt); err != nil {
		return nil, err
	}
	b.appendLog(a, time.Now(), amt, DirectionOut, "", "withdraw")
	b.lggr.Debugw("withdraw", "id", id, "amount", amt, "balance", a.Balance)
	cp := *a
	cp.Logs = nil
	return &cp, nil
}

// Transfer 轉帳為「單一臨界區內」的原子操作：
// 1) 檢核參數與帳戶存在性 → 2) 來源提款（含餘額檢查）→ 3) 目標存款 → 4) 雙邊日誌。
// 任一步驟失敗皆不會改變任何帳戶狀態。
func (b *Bank) Transfer(fromID, toID string, amt decimal.Decimal) error {
	detail := fromID + "->" + toID
	if !amt.IsPositive() {
		return opError("transfer", detail, ErrBadAmount)
	}
	if fromID == toID {
		return opError("transfer", detail, ErrSameAccount)
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	from, err := b.lookup(fromID)
	if err != nil {
		return opError("transfer", detail, err)
	}
	to, err := b.lookup(toID)
	if err != nil {
		return opError("transfer", detail, err)
	}
	if err := from.Withdraw(amt); err != nil {
		return opError("transfer", detail, err)
	}
	// amt 已確認 > 0，存款不會失敗。
	_ = to.Deposit(amt)

	now := time.Now()
	b.appendLog(from, now, amt, DirectionOut, toID, "transfer")
	b.appendLog(to, now, amt, DirectionIn, fromID, "transfer")
	b.lggr.Debugw("transfer", "from", fromID, "to", toID, "amount", amt)
	return nil
}

// Logs 回傳指定帳戶的交易日誌（值拷貝）。
func (b *Bank) Logs(id string) ([]Log, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	out := make([]Log, len(a.Logs))
	copy(out, a.Logs)
	return out, nil
}

// Stats 對帳戶日誌的帶正負號金額（轉入為正、轉出為負）做統計彙總。
// 沒有任何日誌的帳戶，Average 為 NaN。
func (b *Bank) Stats(id string) (stats.Summary, error) {
	logs, err := b.Logs(id)
	if err != nil {
		return stats.Summary{}, err
	}
	amounts := make([]float64, len(logs))
	for i, l := range logs {
		v := l.Amount.InexactFloat64()
		if l.Direction == DirectionOut {
			v = -v
		}
		amounts[i] = v
	}
	return stats.Summarize(amounts), nil
}

// Snapshot 匯出銀行狀態到可持久化的 storage.Snapshot（含 nextID 與所有帳戶日誌）。
func (b *Bank) Snapshot() storage.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := storage.Snapshot{
		Meta:   storage.Meta{Note: "bank state"},
		NextID: atomic.LoadInt64(&b.nextID),
	}
	for _, a := range b.accts {
		pa := storage.PersistAccount{ID: a.ID, Name: a.Name, Balance: a.Balance}
		for _, l := range a.Logs {
			pa.Logs = append(pa.Logs, storage.PersistLog(l))
		}
		s.Accounts = append(s.Accounts, pa)
	}
	slices.SortFunc(s.Accounts, func(x, y storage.PersistAccount) int { return compareIDs(x.ID, y.ID) })
	return s
}

// Restore 由 storage.Snapshot 還原銀行狀態：重建 nextID 與帳戶 map，覆蓋既有內容。
func (b *Bank) Restore(s storage.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	atomic.StoreInt64(&b.nextID, s.NextID)
	b.accts = make(map[string]*Account, len(s.Accounts))
	for _, pa := range s.Accounts {
		a := &Account{ID: pa.ID, Name: pa.Name, Balance: pa.Balance}
		for _, pl := range pa.Logs {
			a.Logs = append(a.Logs, Log(pl))
		}
		b.accts[a.ID] = a
	}
	b.lggr.Infow("state restored", "accounts", len(b.accts), "next_id", s.NextID)
}

// lookup 需在持有 mu 時呼叫。
func (b *Bank) lookup(id string) (*Account, error) {
	a, ok := b.accts[id]
	if !ok {
		return nil, opError("account", id, ErrAccountNotFound)
	}
	return a, nil
}

// appendLog 需在持有 mu 時呼叫；BalanceAfter 取自已更新的餘額。
func (b *Bank) appendLog(a *Account, at time.Time, amt decimal.Decimal, dir, counter, note string) {
	a.Logs = append(a.Logs, Log{
		ID:           uuid.NewString(),
		Time:         at,
		Amount:       amt,
		Direction:    dir,
		CounterID:    counter,
		Note:         note,
		BalanceAfter: a.Balance,
	})
}

// compareIDs 以數值比較 ID；無法解析時退回字串比較。
func compareIDs(x, y string) int {
	xi, errX := strconv.ParseInt(x, 10, 64)
	yi, errY := strconv.ParseInt(y, 10, 64)
	if errX != nil || errY != nil {
		return strings.Compare(x, y)
	}
	return cmp.Compare(xi, yi)
}
