// Package share formats the end-of-game result and copies it to the clipboard.
//
// The copy tries the system clipboard first, then an OSC 52 escape sequence
// written to the terminal. If both fail the caller receives ErrCopyFailed and
// is expected to show the player an alert; the game itself is unaffected.
package share

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"github.com/rs/zerolog/log"
)

const (
	// Title heads every shared result.
	Title = "📜 The Civil Word"
	// DefaultSite is the site identifier on the last line.
	DefaultSite = "thecivilword.github.io"
)

// ErrCopyFailed means neither the clipboard nor the fallback accepted the text.
var ErrCopyFailed = errors.New("could not copy result to clipboard")

// Text formats the shareable block for a finished game:
//
//	📜 The Civil Word — 2025-12-18
//	🟠🟠🔵⚫⚫
//	thecivilword.github.io
func Text(indicator string, now time.Time, site string) string {
	if site == "" {
		site = DefaultSite
	}
	return fmt.Sprintf("%s — %s\n%s\n%s", Title, now.Format("2006-01-02"), indicator, site)
}

// CopyFunc places text somewhere the player can paste it from.
type CopyFunc func(text string) error

// Copier copies with a primary mechanism and a fallback.
type Copier struct {
	Primary  CopyFunc
	Fallback CopyFunc
}

// NewCopier uses the system clipboard, falling back to OSC 52 on term.
func NewCopier(term io.Writer) *Copier {
	return &Copier{Primary: clipboard.WriteAll, Fallback: OSC52(term)}
}

// OSC52 returns a CopyFunc that asks the terminal on w to set its clipboard.
func OSC52(w io.Writer) CopyFunc {
	return func(text string) error {
		if w == nil {
			return errors.New("osc52: no terminal")
		}
		_, err := osc52.New(text).WriteTo(w)
		return err
	}
}

// Copy tries Primary then Fallback. Nil functions are skipped.
func (c *Copier) Copy(text string) error {
	var errs []error
	for _, fn := range []CopyFunc{c.Primary, c.Fallback} {
		if fn == nil {
			continue
		}
		err := fn(text)
		if err == nil {
			return nil
		}
		log.Debug().Err(err).Msg("copy attempt failed")
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return ErrCopyFailed
	}
	return fmt.Errorf("%w: %w", ErrCopyFailed, errors.Join(errs...))
}
