// internal/storage/jsonstore.go
//
// 提供 JSON 快照 (Snapshot) 的讀寫。
// 寫入採「原子寫入」：先寫 .tmp 檔，再以 rename() 取代原檔，中途失敗不會損壞既有快照。
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LoadSnapshot 讀取指定路徑的 JSON 快照。
// 檔案不存在時回傳的錯誤仍滿足 errors.Is(err, fs.ErrNotExist)。
func LoadSnapshot(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, fmt.Errorf("LoadSnapshot: %w", err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return snap, fmt.Errorf("LoadSnapshot: decode %s: %w", path, err)
	}
	return snap, nil
}

// SaveSnapshot 將 Snapshot 以縮排 JSON 原子寫入 path。
// Meta.Storage、Meta.Version 與 Meta.Timestamp 由本函式設定。
func SaveSnapshot(path string, snap Snapshot) error {
	snap.Meta.Storage = StorageJSON
	snap.Meta.Version = SchemaVersion
	snap.Meta.Timestamp = time.Now().UTC()
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("SaveSnapshot: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("SaveSnapshot: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("SaveSnapshot: close: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("SaveSnapshot: rename: %w", err)
	}
	return nil
}
