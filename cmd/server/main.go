// cmd/server/main.go

// 本服務提供帳戶建立、存提款、轉帳與統計等 RESTful API。
// 此檔案以 cobra 組裝指令：
//   - serve（預設）：載入設定與 JSON 快照、啟動 HTTP 伺服器，收到 SIGINT/SIGTERM 時保存狀態後結束。
//   - stats：離線計算命令列數列的最大、最小與平均值。
package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"bankstats/internal/bank"
	"bankstats/internal/config"
	"bankstats/internal/logger"
	"bankstats/internal/server"
	"bankstats/internal/storage"
)

const shutdownTimeout = 5 * time.Second

type serveFlags struct {
	envFile  string
	addr     string
	dataFile string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f serveFlags
	root := &cobra.Command{
		Use:          "bankstats",
		Short:        "Bank account service with sequence statistics",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, f)
		},
	}
	root.PersistentFlags().StringVar(&f.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	root.PersistentFlags().StringVar(&f.addr, "addr", "", "listen address (overrides BANK_ADDR)")
	root.PersistentFlags().StringVar(&f.dataFile, "data-file", "", "snapshot path (overrides BANK_DATA_FILE)")
	root.PersistentFlags().StringVar(&f.logLevel, "log-level", "", "log level (overrides BANK_LOG_LEVEL)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, f)
		},
	})
	root.AddCommand(newStatsCmd())
	return root
}

// loadConfig 讀取設定後套用命令列旗標覆寫。
func loadConfig(f serveFlags) (*config.Config, error) {
	cfg, err := config.Load(f.envFile)
	if err != nil {
		return nil, err
	}
	if f.addr != "" {
		cfg.Addr = f.addr
	}
	if f.dataFile != "" {
		cfg.DataFile = f.dataFile
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, f serveFlags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	lggr, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = lggr.Sync() }()

	b := bank.NewBank(lggr)

	// 嘗試從上次的 JSON 快照載入資料，若不存在則以空銀行啟動
	snap, err := storage.LoadSnapshot(cfg.DataFile)
	switch {
	case err == nil:
		b.Restore(snap)
	case errors.Is(err, fs.ErrNotExist):
		lggr.Infow("no snapshot, starting empty", "path", cfg.DataFile)
	default:
		return err
	}

	// 處理請求的 goroutine 可能同時觸發 persist，寫檔需序列化。
	var persistMu sync.Mutex
	persist := func() error {
		persistMu.Lock()
		defer persistMu.Unlock()
		return storage.SaveSnapshot(cfg.DataFile, b.Snapshot())
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewServer(b, persist, lggr).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	lggr.Infow("bank server running", "addr", cfg.Addr, "data_file", cfg.DataFile)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lggr.Warnw("shutdown", "err", err)
	}
	if err := persist(); err != nil {
		lggr.Errorw("final persist failed", "err", err)
		return err
	}
	lggr.Infow("state saved, bye", "path", cfg.DataFile)
	return nil
}
