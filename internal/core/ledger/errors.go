package ledger

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrAccountNotFound 账户不存在（查询接口使用）
var ErrAccountNotFound = errors.New("账户不存在")

// Result 账本结果码
//
// 取值沿用 XRPL 的 TER 编号；tec 类在 XRPL 中为正数，这里取负，
// 保证所有失败对合约而言都是负数。
type Result int32

const (
	TesSUCCESS Result = 0

	TerNO_ACCOUNT Result = -96

	TecUNFUNDED_PAYMENT Result = -104
	TecNO_DST           Result = -124
	TecPATH_DRY         Result = -128
	TecNO_AUTH          Result = -134
	TecNO_LINE          Result = -135

	TefINTERNAL Result = -192

	TemDST_IS_SRC   Result = -279
	TemBAD_LIMIT    Result = -293
	TemBAD_ISSUER   Result = -294
	TemBAD_CURRENCY Result = -297
	TemBAD_AMOUNT   Result = -298
)

var resultNames = map[Result]string{
	TesSUCCESS:          "tesSUCCESS",
	TerNO_ACCOUNT:       "terNO_ACCOUNT",
	TecUNFUNDED_PAYMENT: "tecUNFUNDED_PAYMENT",
	TecNO_DST:           "tecNO_DST",
	TecPATH_DRY:         "tecPATH_DRY",
	TecNO_AUTH:          "tecNO_AUTH",
	TecNO_LINE:          "tecNO_LINE",
	TefINTERNAL:         "tefINTERNAL",
	TemDST_IS_SRC:       "temDST_IS_SRC",
	TemBAD_LIMIT:        "temBAD_LIMIT",
	TemBAD_ISSUER:       "temBAD_ISSUER",
	TemBAD_CURRENCY:     "temBAD_CURRENCY",
	TemBAD_AMOUNT:       "temBAD_AMOUNT",
}

// String 结果码名称
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Error 账本拒绝或无法完成的操作
type Error struct {
	Result  Result
	Message string
	Err     error
}

func newError(result Result, format string, args ...interface{}) *Error {
	return &Error{Result: result, Message: fmt.Sprintf(format, args...)}
}

// Error 实现error接口
func (e *Error) Error() string {
	msg := e.Result.String()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap 返回底层错误
func (e *Error) Unwrap() error { return e.Err }

// ResultOf 提取错误中的结果码
//
// nil 为 tesSUCCESS，非账本错误一律为 tefINTERNAL。
func ResultOf(err error) Result {
	if err == nil {
		return TesSUCCESS
	}
	var le *Error
	if errors.As(err, &le) {
		return le.Result
	}
	return TefINTERNAL
}

// asLedgerError 把存储层错误包装为 tefINTERNAL
func asLedgerError(err error) *Error {
	var le *Error
	if errors.As(err, &le) {
		return le
	}
	return &Error{Result: TefINTERNAL, Err: err}
}
