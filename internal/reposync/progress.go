package reposync

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
)

// progressLinePattern matches git's sideband progress lines, e.g.
// "Receiving objects:  43% (123/282), 10.00 KiB | 5.00 MiB/s" or
// "Counting objects: 100% (50/50), done.".
var progressLinePattern = regexp.MustCompile(`^(\S[\w ]*?):\s+\d+%\s+\((\d+)/(\d+)\)`)

// progressWriter adapts go-git's raw sideband io.Writer output into the
// manager's (current, total, stage) callback contract, throttling to
// roughly one call per 100 KB (or 100 objects) of additional progress.
type progressWriter struct {
	cb           ProgressFunc
	buf          []byte
	lastReported int64
}

const progressThrottle = 100 * 1024 / 100 // ~1KB of objects; git reports object counts, not bytes, in practice

func newProgressWriter(cb ProgressFunc) *progressWriter {
	return &progressWriter{cb: cb}
}

func (w *progressWriter) Write(p []byte) (int, error) {
	if w.cb == nil {
		return len(p), nil
	}
	w.buf = append(w.buf, p...)

	for {
		idx := bytes.IndexByte(w.buf, '\r')
		nl := bytes.IndexByte(w.buf, '\n')
		if nl >= 0 && (idx < 0 || nl < idx) {
			idx = nl
		}
		if idx < 0 {
			break
		}
		line := w.buf[:idx]
		w.buf = w.buf[idx+1:]
		w.handleLine(string(line))
	}
	return len(p), nil
}

func (w *progressWriter) handleLine(line string) {
	m := progressLinePattern.FindStringSubmatch(line)
	if m == nil {
		return
	}
	stage := m[1]
	current, err1 := strconv.ParseInt(m[2], 10, 64)
	total, err2 := strconv.ParseInt(m[3], 10, 64)
	if err1 != nil || err2 != nil {
		return
	}
	if current-w.lastReported < progressThrottle && current != total {
		return
	}
	w.lastReported = current
	w.cb(current, total, stage)
}

var _ io.Writer = (*progressWriter)(nil)
