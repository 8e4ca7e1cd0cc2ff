package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"github.com/shopspring/decimal"

	"workday/internal/core"
)

// sanitizeInput removes control characters except tab and newlines, and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique id used in error pages so a user can
// quote it back against the logs.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("err_%d", time.Now().UnixNano())
	}
	return "err_" + hex.EncodeToString(bytes)
}

// templateFuncs is sprig's html-safe set plus the workday formatters, which
// take precedence over sprig's names.
func templateFuncs() template.FuncMap {
	funcs := sprig.HtmlFuncMap()
	funcs["money"] = func(d decimal.Decimal) string { return core.FormatAmount(d) }
	funcs["date"] = func(d core.Date) string { return d.String() }
	funcs["negative"] = func(d decimal.Decimal) bool {
		return d.IsNegative()
	}
	funcs["truncRunes"] = truncRunes
	return funcs
}

// truncRunes cuts s to at most n characters. sprig's trunc counts bytes and
// splits multi-byte text.
func truncRunes(n int, s string) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
