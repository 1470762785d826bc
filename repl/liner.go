package repl

import (
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"
	"github.com/pontaoski/monkey/builtin"
	"github.com/pontaoski/monkey/types"
)

// Terminal is a liner-backed LineReader that loads history on open and
// saves it on Close.
type Terminal struct {
	*liner.State
	historyFile string
	closed      bool
}

func OpenTerminal(historyFile string) *Terminal {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(Complete)

	t := &Terminal{State: ln, historyFile: historyFile}
	if historyFile == "" {
		return t
	}

	if f, err := os.Open(historyFile); err == nil {
		n, _ := ln.ReadHistory(f)
		f.Close()
		plog.Debugf("read %d history entries from %s", n, historyFile)
	}
	return t
}

// SaveHistory writes the session history back.
func (t *Terminal) SaveHistory() {
	if t.historyFile == "" {
		return
	}

	f, err := os.Create(t.historyFile)
	if err != nil {
		plog.Warningf("could not save history: %s", err)
		return
	}
	defer f.Close()

	n, err := t.WriteHistory(f)
	if err != nil {
		plog.Warningf("could not save history: %s", err)
		return
	}
	plog.Debugf("wrote %d history entries to %s", n, t.historyFile)
}

// Close saves history and restores the terminal. Later calls do nothing.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true
	t.SaveHistory()
	return t.State.Close()
}

// Complete proposes keywords and built-in names for the word under the
// cursor.
func Complete(line string) []string {
	start := strings.LastIndexFunc(line, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var candidates []string
	for _, name := range append(types.Keywords(), builtin.Names()...) {
		if strings.HasPrefix(name, word) {
			candidates = append(candidates, prefix+name)
		}
	}
	sort.Strings(candidates)
	return candidates
}
