// Package fingerprint derives a stable signature for a parsed fight so the
// same fight uploaded twice (by different squad members, under different
// filenames, raw or zipped) collapses to one report.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"wvw-tracker/internal/evtc"
)

// ForLog fingerprints a parsed log from its fight id, duration and the set
// of ally accounts. Accounts are sorted so upload order and per-recorder
// table order cannot perturb the signature.
func ForLog(log *evtc.ParsedLog) string {
	accounts := make([]string, 0, len(log.Allies))
	for _, p := range log.Allies {
		accounts = append(accounts, p.Account)
	}
	sort.Strings(accounts)

	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|", log.FightID, log.DurationSeconds)
	h.Write([]byte(strings.Join(accounts, "|")))
	return hex.EncodeToString(h.Sum(nil))
}
