package ledger

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
)

// ==================== 键布局 ====================
//
//	acct:<account 20B>                          账户根
//	line:<holder 20B><currency 20B><issuer 20B> 信任线（持有方视角）
//	mpt:<holder 20B><mptid 24B>                  MPT 持仓
//	meta:seq                                     账本序号（8B 大端）

var (
	accountPrefix = []byte("acct:")
	linePrefix    = []byte("line:")
	mptPrefix     = []byte("mpt:")
	sequenceKey   = []byte("meta:seq")
)

func joinKey(prefix []byte, parts ...[]byte) []byte {
	size := len(prefix)
	for _, p := range parts {
		size += len(p)
	}
	key := make([]byte, 0, size)
	key = append(key, prefix...)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func accountKey(id framework.AccountID) []byte {
	return joinKey(accountPrefix, id[:])
}

func lineKey(holder framework.AccountID, currency framework.Currency, issuer framework.AccountID) []byte {
	return joinKey(linePrefix, holder[:], currency[:], issuer[:])
}

func mptKey(holder framework.AccountID, id framework.MPTID) []byte {
	return joinKey(mptPrefix, holder[:], id[:])
}

// ==================== 记录 ====================

type accountRecord struct {
	Drops     int64  `json:"drops"`
	Sequence  uint32 `json:"sequence"`
	CreatedAt int64  `json:"created_at"` // 创建时的账本序号
}

type lineRecord struct {
	Balance decimal.Decimal `json:"balance"`
	Limit   decimal.Decimal `json:"limit"`
}

type mptRecord struct {
	Amount int64 `json:"amount"`
}

// state 单个事务内的账本读写
type state struct {
	tx storage.KVTransaction
}

func (s *state) load(key []byte, out interface{}) (bool, error) {
	data, err := s.tx.Get(key)
	if err != nil {
		return false, fmt.Errorf("读取 %q 失败: %w", key[:4], err)
	}
	if data == nil {
		return false, nil
	}
	if err := decodeRecord(data, out); err != nil {
		return false, err
	}
	return true, nil
}

func decodeRecord(data []byte, out interface{}) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("解析账本记录失败: %w", err)
	}
	return nil
}

func (s *state) store(key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("序列化账本记录失败: %w", err)
	}
	return s.tx.Set(key, data)
}

// account 读取账户根，不存在返回 nil
func (s *state) account(id framework.AccountID) (*accountRecord, error) {
	var rec accountRecord
	ok, err := s.load(accountKey(id), &rec)
	if err != nil || !ok {
		return nil, err
	}
	return &rec, nil
}

func (s *state) putAccount(id framework.AccountID, rec *accountRecord) error {
	return s.store(accountKey(id), rec)
}

// line 读取信任线，不存在返回 nil
func (s *state) line(holder framework.AccountID, currency framework.Currency, issuer framework.AccountID) (*lineRecord, error) {
	var rec lineRecord
	ok, err := s.load(lineKey(holder, currency, issuer), &rec)
	if err != nil || !ok {
		return nil, err
	}
	return &rec, nil
}

func (s *state) putLine(holder framework.AccountID, currency framework.Currency, issuer framework.AccountID, rec *lineRecord) error {
	return s.store(lineKey(holder, currency, issuer), rec)
}

// holding 读取 MPT 持仓，不存在返回 nil
func (s *state) holding(holder framework.AccountID, id framework.MPTID) (*mptRecord, error) {
	var rec mptRecord
	ok, err := s.load(mptKey(holder, id), &rec)
	if err != nil || !ok {
		return nil, err
	}
	return &rec, nil
}

func (s *state) putHolding(holder framework.AccountID, id framework.MPTID, rec *mptRecord) error {
	return s.store(mptKey(holder, id), rec)
}

// sequence 当前账本序号
func (s *state) sequence() (int64, error) {
	data, err := s.tx.Get(sequenceKey)
	if err != nil {
		return 0, fmt.Errorf("读取账本序号失败: %w", err)
	}
	if len(data) != 8 {
		return 0, nil
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

// nextSequence 推进并返回新的账本序号
func (s *state) nextSequence() (int64, error) {
	seq, err := s.sequence()
	if err != nil {
		return 0, err
	}
	seq++
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(seq))
	if err := s.tx.Set(sequenceKey, buf[:]); err != nil {
		return 0, fmt.Errorf("写入账本序号失败: %w", err)
	}
	return seq, nil
}

// ensureAccount 读取账户根，不存在时以零余额创建（未写回）
func (s *state) ensureAccount(id framework.AccountID) (*accountRecord, error) {
	rec, err := s.account(id)
	if err != nil || rec != nil {
		return rec, err
	}
	seq, err := s.sequence()
	if err != nil {
		return nil, err
	}
	return &accountRecord{CreatedAt: seq + 1}, nil
}
