// internal/bank/errors.go
//
// 本檔集中定義「領域錯誤（domain errors）」。
// 每個錯誤帶有明確的種類標籤 (Kind)，呼叫端依 Kind 分流，而非比對訊息文字：
//   - KindValidation        參數不合法（金額 <= 0、同帳戶轉帳）→ HTTP 400
//   - KindInsufficientFunds 餘額不足                            → HTTP 409
//   - KindNotFound          帳戶不存在                          → HTTP 404
//   - KindUnknown           非本套件產生的錯誤，交由呼叫端的後備路徑處理

package bank

import (
	"errors"
	"fmt"
)

// Kind 為領域錯誤的種類標籤。
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindInsufficientFunds
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindInsufficientFunds:
		return "insufficient_funds"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error 是帶有種類標籤的領域錯誤。
// Msg 為空的 Error 是「種類哨兵」：errors.Is 對同種類的任何錯誤皆成立。
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

// Is 讓種類哨兵（Msg 為空）比對同 Kind 的所有錯誤；
// 具名哨兵（如 ErrBadAmount）則需 Kind 與 Msg 皆相同。
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Msg == "" {
		return t.Kind == e.Kind
	}
	return t.Kind == e.Kind && t.Msg == e.Msg
}

// KindOf 取出錯誤鏈中的 Kind；非領域錯誤回傳 KindUnknown。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// 種類哨兵。
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
	ErrNotFound          = &Error{Kind: KindNotFound}
)

var (
	// ErrAccountNotFound 代表帳戶不存在。
	ErrAccountNotFound = &Error{Kind: KindNotFound, Msg: "account not found"}

	// ErrBadAmount 代表金額非法（<=0 或初始餘額為負）。
	ErrBadAmount = &Error{Kind: KindValidation, Msg: "amount must be > 0"}

	// ErrSameAccount 代表轉帳來源與目標帳戶相同。
	ErrSameAccount = &Error{Kind: KindValidation, Msg: "from and to are same"}

	// ErrInsufficient 代表餘額不足，導致提款或轉帳失敗。
	ErrInsufficient = &Error{Kind: KindInsufficientFunds, Msg: "insufficient balance"}
)

// opError 為錯誤加上操作與金額等上下文，保留原本的 Kind。
func opError(op, detail string, err error) error {
	return fmt.Errorf("%s %s: %w", op, detail, err)
}
