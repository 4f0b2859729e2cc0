// internal/replay/replay.go
//
// Package replay 為應用層 (Application Layer)：負責組裝整次重播流程。
//  1. 解析環境變數與命令列旗標（Config）
//  2. 開啟輸入檔，依序將每筆交易交給 bank.Ledger
//  3. 以 CSV 輸出帳戶快照，必要時另存 JSON 快照
//
// 結構性錯誤（檔案、標頭、輸出）一律回傳給 main；單列格式錯誤只記錄 log 後略過。
package replay

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"payments/internal/bank"
	"payments/internal/config"
	"payments/internal/records"
	"payments/internal/storage"
)

// Config 為重播指令的設定；帶 env 標籤的欄位可由環境變數（加上 config.EnvPrefix）提供預設值。
type Config struct {
	InputPath    string
	SnapshotPath string `env:"SNAPSHOT_PATH"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"error"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"console"`
}

// ErrUsage 代表位置參數數量錯誤（必須恰好一個輸入檔路徑）。
var ErrUsage = errors.New("usage: payments [flags] <transactions.csv>")

// ParseConfig 依序套用：環境變數 → 命令列旗標 → 唯一的位置參數（輸入檔）。
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.SnapshotPath, "snapshot", cfg.SnapshotPath, "also write a JSON snapshot to this path (default: PAYMENTS_SNAPSHOT_PATH)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error (default: PAYMENTS_LOG_LEVEL or error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: console|json (default: PAYMENTS_LOG_FORMAT or console)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 1 {
		return Config{}, ErrUsage
	}
	cfg.InputPath = fs.Arg(0)
	return cfg, nil
}

// Run 重播 cfg.InputPath，並將 CSV 報表寫入 out。
// out 與 logger 可為 nil。
func Run(ctx context.Context, cfg Config, out io.Writer, logger *zap.Logger) error {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	ledger := bank.NewLedger(logger.Named("ledger"))
	if err := Replay(ctx, f, ledger, logger); err != nil {
		return err
	}

	balances := ledger.Snapshot()
	if err := records.NewWriter(out).WriteBalances(balances); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	stats := ledger.Stats()
	if cfg.SnapshotPath != "" {
		snap := storage.NewSnapshot(cfg.InputPath, balances, stats)
		if err := storage.SaveSnapshot(cfg.SnapshotPath, snap); err != nil {
			return err
		}
	}

	logger.Info("replay complete",
		zap.String("input", cfg.InputPath),
		zap.Int("accounts", ledger.Len()),
		zap.Int("applied", stats.Applied),
		zap.Int("rejected", stats.Rejected),
	)
	return nil
}

// Replay 依輸入順序將 r 中的每筆交易套用至 ledger。
// 格式錯誤的資料列記錄後略過；標頭或讀取錯誤則中止重播。
// 每筆交易之間檢查 ctx，收到中斷訊號時停止。
func Replay(ctx context.Context, r io.Reader, ledger *bank.Ledger, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	rd := records.NewReader(r)
	skipped := 0
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("replay interrupted: %w", err)
		}

		tx, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var rowErr *records.RowError
			if errors.As(err, &rowErr) {
				skipped++
				logger.Warn("skipping record", zap.Int("line", rowErr.Line), zap.Error(rowErr.Err))
				continue
			}
			return fmt.Errorf("read input: %w", err)
		}
		apply(ledger, tx, logger)
	}

	if skipped > 0 {
		logger.Info("malformed records skipped", zap.Int("count", skipped))
	}
	return nil
}

// apply 套用單筆交易；退單使帳戶由未凍結轉為凍結時記錄一筆 info log。
func apply(ledger *bank.Ledger, tx bank.Transaction, logger *zap.Logger) {
	if tx.Kind != bank.KindChargeback {
		ledger.Apply(tx)
		return
	}
	before, _ := ledger.Get(tx.Client)
	ledger.Apply(tx)
	if after, ok := ledger.Get(tx.Client); ok && after.Locked && !before.Locked {
		logger.Info("account locked",
			zap.Uint32("client", tx.Client),
			zap.Uint32("tx", tx.TxID),
			zap.String("held", after.Held.StringFixed(bank.Precision)),
		)
	}
}
