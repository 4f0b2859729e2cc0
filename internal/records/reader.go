// internal/records/reader.go
//
// Package records 負責交易紀錄的文字格式（CSV）：
// 讀取輸入交易、寫出帳戶快照。本層只處理格式，不含任何業務規則；
// 金額是否為負、帳戶是否凍結等判斷全部留給 bank 套件。
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"payments/internal/bank"
)

var (
	// ErrHeader 代表標頭列無法讀取或缺少必要欄位；屬於致命錯誤。
	ErrHeader = errors.New("invalid header")

	// ErrMalformed 代表單筆資料列格式錯誤；呼叫端應略過該列並繼續。
	ErrMalformed = errors.New("malformed record")
)

// RowError 描述某一列為何無法解析。
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

// amountPattern 只接受一般定點數字，科學記號（如 1e10000000）視為格式錯誤。
var amountPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// columns 記錄各欄位在資料列中的索引；amount 可不存在（-1）。
type columns struct {
	kind, client, tx, amount int
}

// Reader 逐筆讀取交易紀錄。
type Reader struct {
	csv  *csv.Reader
	cols *columns
}

// NewReader 建立 Reader。資料列欄位數可變，且所有欄位皆會去除前後空白。
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return &Reader{csv: cr}
}

// readHeader 解析標頭列，欄位名稱不分大小寫。
func (r *Reader) readHeader() error {
	rec, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%w: %v", ErrHeader, err)
		}
		return err
	}

	cols := columns{kind: -1, client: -1, tx: -1, amount: -1}
	for i, name := range rec {
		if i == 0 {
			// 試算表匯出的 CSV 常以 UTF-8 BOM 開頭
			name = strings.TrimPrefix(name, "\ufeff")
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "type":
			cols.kind = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}
	if cols.kind < 0 || cols.client < 0 || cols.tx < 0 {
		return fmt.Errorf("%w: want columns type, client, tx, amount; got %q", ErrHeader, strings.Join(rec, ","))
	}
	r.cols = &cols
	return nil
}

// Read 回傳下一筆交易；輸入結束時回傳 io.EOF。
// 單列格式錯誤回傳 *RowError（可用 errors.Is(err, ErrMalformed) 判斷），
// 其他錯誤（標頭、I/O）應視為致命。
func (r *Reader) Read() (bank.Transaction, error) {
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return bank.Transaction{}, err
		}
	}

	rec, err := r.csv.Read()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return bank.Transaction{}, &RowError{Line: perr.Line, Err: perr.Err}
		}
		return bank.Transaction{}, err
	}
	line, _ := r.csv.FieldPos(0)

	tx, err := r.parse(rec)
	if err != nil {
		return bank.Transaction{}, &RowError{Line: line, Err: err}
	}
	return tx, nil
}

func (r *Reader) parse(rec []string) (bank.Transaction, error) {
	field := func(i int) string {
		if i < 0 || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	kind, err := bank.ParseKind(field(r.cols.kind))
	if err != nil {
		return bank.Transaction{}, err
	}
	client, err := parseID("client", field(r.cols.client))
	if err != nil {
		return bank.Transaction{}, err
	}
	id, err := parseID("tx", field(r.cols.tx))
	if err != nil {
		return bank.Transaction{}, err
	}

	tx := bank.Transaction{Kind: kind, Client: client, TxID: id}
	if kind.HasAmount() {
		if tx.Amount, err = ParseAmount(field(r.cols.amount)); err != nil {
			return bank.Transaction{}, err
		}
	}
	return tx, nil
}

func parseID(name, s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return uint32(v), nil
}

// ParseAmount 解析金額，最多允許 bank.Precision 位小數。
// 負數在此不拒絕，由帳戶的業務規則捨棄。
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, errors.New("missing amount")
	}
	if !amountPattern.MatchString(s) {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q", s)
	}
	if -d.Exponent() > bank.Precision && !d.Equal(d.Truncate(bank.Precision)) {
		return decimal.Decimal{}, fmt.Errorf("amount %q exceeds %d decimal places", s, bank.Precision)
	}
	return d, nil
}
