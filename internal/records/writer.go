// internal/records/writer.go

package records

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"payments/internal/bank"
)

var outputHeader = []string{"client", "available", "held", "total", "locked"}

// Writer 將帳戶快照寫成 CSV：金額固定 bank.Precision 位小數，locked 為 true/false。
type Writer struct {
	csv *csv.Writer
}

// NewWriter 建立 Writer。
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteBalances 寫出標頭與每個帳戶一列，並在結束時 flush。
func (w *Writer) WriteBalances(balances []bank.Balance) error {
	if err := w.csv.Write(outputHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, b := range balances {
		row := []string{
			strconv.FormatUint(uint64(b.Client), 10),
			b.Available.StringFixed(bank.Precision),
			b.Held.StringFixed(bank.Precision),
			b.Total().StringFixed(bank.Precision),
			strconv.FormatBool(b.Locked),
		}
		if err := w.csv.Write(row); err != nil {
			return fmt.Errorf("write client %d: %w", b.Client, err)
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}
