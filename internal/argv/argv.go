// Package argv splits DOS-style command lines into arguments, keeping the
// rune spans the line editor needs to place completions.
package argv

import (
	"iter"
	"unicode/utf8"
)

// Token is one argument with its bounds in rune indices. Start is the first
// content rune (after an opening quote), End is one past the last source
// rune, including any closing quote.
type Token struct {
	Text   string
	Start  int
	End    int
	Quoted bool
}

// ArgsSeq yields the arguments of s. Rules:
//   - Unquoted spaces, tabs and newlines split arguments.
//   - Double quotes group text, and are dropped. An unterminated quote runs
//     to the end of the line.
//   - Backslash is an ordinary character, as in DOS paths.
func ArgsSeq(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for tok := range TokensSeq(s) {
			if !yield(tok.Text) {
				return
			}
		}
	}
}

// ParseSlice collects ArgsSeq into a slice.
func ParseSlice(s string) []string {
	out := make([]string, 0, 4)
	for a := range ArgsSeq(s) {
		out = append(out, a)
	}
	return out
}

// TokensSeq yields tokens with spans.
func TokensSeq(s string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var (
			buf     []rune
			start   = -1
			quoted  bool
			inQuote bool
			pos     int
		)
		for _, r := range s {
			i := pos
			pos++
			switch {
			case r == '"':
				if start < 0 {
					start = i + 1
				}
				quoted = true
				inQuote = !inQuote
			case !inQuote && isSpace(r):
				if start >= 0 {
					if !yield(Token{Text: string(buf), Start: start, End: i, Quoted: quoted}) {
						return
					}
					buf, start, quoted = buf[:0], -1, false
				}
			default:
				if start < 0 {
					start = i
				}
				buf = append(buf, r)
			}
		}
		if start >= 0 {
			yield(Token{Text: string(buf), Start: start, End: pos, Quoted: quoted})
		}
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// BeforeCursor tokenizes s, the text before the cursor, into the completed
// arguments and the one being typed. When s ends in whitespace the current
// token is empty and positioned at the end.
func BeforeCursor(s string) (completed []string, current Token) {
	end := utf8.RuneCountInString(s)
	found := false
	for t := range TokensSeq(s) {
		if t.End == end {
			current, found = t, true
			break
		}
		completed = append(completed, t.Text)
	}
	if !found {
		current = Token{Start: end, End: end}
	}
	return completed, current
}
