// Package i18n holds the message catalogue. Messages are looked up by upper-case keys such as
// "ZONE_ENTERED"; a key missing from the catalogue is returned as-is.
package i18n

import (
	"embed"
	"fmt"
	"sync"

	"github.com/leonelquinteros/gotext"
)

//go:embed locales/*.po
var locales embed.FS

// DefaultLanguage is the catalogue loaded when none is chosen
const DefaultLanguage = "en"

var (
	mu        sync.RWMutex
	catalogue *gotext.Po
)

// Load replaces the active catalogue with locales/<lang>.po
func Load(lang string) error {
	buf, err := locales.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return fmt.Errorf("load catalogue %q: %w", lang, err)
	}
	po := gotext.NewPo()
	po.Parse(buf)

	mu.Lock()
	catalogue = po
	mu.Unlock()
	return nil
}

// T translates key and formats it with args
func T(key string, args ...any) string {
	msg := lookup(key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// lookup returns the catalogue entry for key, loading the default catalogue on first use
func lookup(key string) string {
	mu.RLock()
	po := catalogue
	mu.RUnlock()

	if po == nil {
		if err := Load(DefaultLanguage); err != nil {
			return key
		}
		mu.RLock()
		po = catalogue
		mu.RUnlock()
	}
	return po.Get(key)
}
