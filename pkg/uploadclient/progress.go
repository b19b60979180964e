package uploadclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const (
	barWidth     = 32
	renderPeriod = 120 * time.Millisecond
)

// progressBar рисует ASCII-индикатор отправки. Все методы безопасны для nil.
type progressBar struct {
	mu        sync.Mutex
	out       io.Writer
	prefix    string
	total     int64
	sent      int64
	lastDraw  time.Time
	lastWidth int
	finished  bool
}

func newProgressBar(out io.Writer, prefix string, total int64) *progressBar {
	return &progressBar{out: out, prefix: prefix, total: total}
}

func (p *progressBar) add(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.mu.Lock()
	if !p.finished {
		p.sent += n
	}
	p.mu.Unlock()
	p.render(false, "")
}

func (p *progressBar) render(force bool, suffix string) {
	if p == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished && !force {
		return
	}
	now := time.Now()
	if !force && now.Sub(p.lastDraw) < renderPeriod {
		return
	}
	p.lastDraw = now
	p.drawLocked(suffix, "")
}

// drawLocked перерисовывает строку поверх предыдущей, затирая её хвост пробелами.
func (p *progressBar) drawLocked(suffix, end string) {
	line := p.lineLocked() + suffix
	pad := ""
	if p.lastWidth > len(line) {
		pad = strings.Repeat(" ", p.lastWidth-len(line))
	}
	p.lastWidth = len(line)
	_, _ = fmt.Fprintf(p.out, "\r%s%s%s", line, pad, end)
}

func (p *progressBar) lineLocked() string {
	var b strings.Builder
	b.WriteString(p.prefix)
	b.WriteByte(' ')

	if p.total <= 0 {
		b.WriteString(humanBytes(p.sent))
		b.WriteString(" sent")
		return b.String()
	}

	ratio := float64(p.sent) / float64(p.total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*barWidth + 0.5)
	b.WriteByte('[')
	b.WriteString(strings.Repeat("=", filled))
	b.WriteString(strings.Repeat(" ", barWidth-filled))
	fmt.Fprintf(&b, "] %3d%% %s/%s", int(ratio*100+0.5), humanBytes(p.sent), humanBytes(p.total))
	return b.String()
}

func (p *progressBar) Finish() { p.complete(" ✓") }

func (p *progressBar) Fail(err error) { p.complete(fmt.Sprintf(" ✗ %v", err)) }

func (p *progressBar) complete(suffix string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.finished {
		return
	}
	p.finished = true
	p.drawLocked(suffix, "\n")
}

type progressWriter struct {
	bar *progressBar
}

func (w progressWriter) Write(b []byte) (int, error) {
	w.bar.add(int64(len(b)))
	return len(b), nil
}

func humanBytes(v int64) string {
	const unit = 1024
	if v < unit {
		return fmt.Sprintf("%d B", v)
	}
	value, exp := float64(v), 0
	for value >= unit && exp < 5 {
		value /= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", value, "KMGTP"[exp-1])
}
