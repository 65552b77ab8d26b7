package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/edocico/a11y-audit/internal/model"
)

// The cache is best-effort: every IO or decode problem reads as a miss and
// the caller re-extracts. Nothing here may fail a scan.

func dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	d := filepath.Join(home, ".a11y-audit", "cache")
	if err := os.MkdirAll(d, 0o755); err != nil {
		return "", err
	}
	return d, nil
}

// Key hashes the parts length-delimited, so ("ab","c") and ("a","bc") get
// distinct keys.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		fmt.Fprintf(h, "%d:", len(p))
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LoadRegions returns one file's cached extraction result, if present.
func LoadRegions(key string) ([]model.ClassRegion, bool) {
	d, err := dir()
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(filepath.Join(d, key+".json"))
	if err != nil {
		return nil, false
	}
	var regions []model.ClassRegion
	if err := json.Unmarshal(b, &regions); err != nil {
		return nil, false
	}
	return regions, true
}

// StoreRegions persists one file's extraction result under key.
func StoreRegions(key string, regions []model.ClassRegion) error {
	d, err := dir()
	if err != nil {
		return err
	}
	b, err := json.Marshal(regions)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d, key+".json"), b, 0o644)
}
