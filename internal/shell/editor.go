package shell

import (
	"strings"
	"unicode/utf8"
)

// InsertText appends text to the input line. It reports false, changing
// nothing, while the prompt is inactive.
func (s *Session) InsertText(text string) bool {
	if !s.PromptActive {
		return false
	}
	s.Input += text
	return true
}

// SetLine replaces the input line, as chip shortcuts do.
func (s *Session) SetLine(text string) bool {
	if !s.PromptActive {
		return false
	}
	s.Input = text
	return true
}

// Backspace removes the last rune of the input line.
func (s *Session) Backspace() bool {
	if !s.PromptActive || s.Input == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(s.Input)
	s.Input = s.Input[:len(s.Input)-size]
	return true
}

// HistoryUp recalls the next older history entry, stopping at the oldest.
func (s *Session) HistoryUp() bool {
	if !s.PromptActive || len(s.History) == 0 {
		return false
	}
	s.HistoryCursor = min(s.HistoryCursor+1, len(s.History)-1)
	s.Input = s.History[s.HistoryCursor]
	return true
}

// HistoryDown recalls the next newer history entry; moving past the newest
// leaves history browsing with an empty line.
func (s *Session) HistoryDown() bool {
	if !s.PromptActive || len(s.History) == 0 {
		return false
	}
	s.HistoryCursor = max(s.HistoryCursor-1, -1)
	if s.HistoryCursor == -1 {
		s.Input = ""
	} else {
		s.Input = s.History[s.HistoryCursor]
	}
	return true
}

// TakeLine commits the input line: it is echoed into the transcript,
// recorded in history when non-blank, and returned trimmed. The prompt is
// left inactive until the next Arm. ok is false if the prompt was inactive.
func (s *Session) TakeLine() (line string, ok bool) {
	if !s.PromptActive {
		return "", false
	}
	line = strings.TrimSpace(s.Input)
	s.Output += s.Input + "\n"
	if line != "" {
		s.History = append([]string{line}, s.History...)
	}
	s.HistoryCursor = -1
	s.Input = ""
	s.PromptActive = false
	return line, true
}
