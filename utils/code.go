package utils

import (
	"crypto/rand"
	"strings"
)

// alphabet for join codes — no 0/O or 1/I so codes survive being read
// out loud at a venue.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const joinCodeLength = 8

// GenerateJoinCode returns a short human-shareable code for public
// tournaments.
func GenerateJoinCode() string {
	buf := make([]byte, joinCodeLength)
	_, _ = rand.Read(buf)
	var b strings.Builder
	for _, c := range buf {
		b.WriteByte(codeAlphabet[int(c)%len(codeAlphabet)])
	}
	return b.String()
}

// JoinDays flattens a days-of-week list to the comma-separated form
// stored on tournament rules.
func JoinDays(days []string) string {
	upper := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.ToUpper(strings.TrimSpace(d))
		if d != "" {
			upper = append(upper, d)
		}
	}
	return strings.Join(upper, ",")
}

// SplitDays is the inverse of JoinDays.
func SplitDays(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
