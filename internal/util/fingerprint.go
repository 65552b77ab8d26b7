package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Fingerprint identifies a finding for baselines and ignore rules. The line
// number participates, so code that moves re-surfaces its findings.
func Fingerprint(checkID, file string, line int, pairKey string) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{checkID, file, strconv.Itoa(line), pairKey}, "|")))
	return hex.EncodeToString(sum[:])
}
