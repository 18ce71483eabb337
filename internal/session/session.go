// Package session names the terminal a pocketdos process runs in, so log
// lines from one window can be told apart from another's.
//
// IDs have the form {namespace}--{payload} and are safe to use in file
// names.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"runtime"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxIDLength bounds the whole ID.
	MaxIDLength = 80

	// Delimiter separates the namespace from the payload.
	Delimiter = "--"

	// shortHash is the number of hex characters kept from a hash.
	shortHash = 16
)

// Namespaces, one per source. Two sources never produce the same ID.
const (
	NamespaceExplicit = "ex"
	NamespaceTmux     = "tmux"
	NamespaceScreen   = "screen"
	NamespaceSSH      = "ssh"
	NamespaceTerminal = "terminal"
	NamespaceUUID     = "uuid"
)

// EnvSessionID overrides detection.
const EnvSessionID = "POCKETDOS_SESSION_ID"

// Getenv reads the environment. Tests supply a map.
type Getenv func(key string) string

// ID detects the session from the process environment. It returns the ID
// and the name of the source that produced it.
func ID(explicit string) (id, source string) {
	return Detect(explicit, os.Getenv)
}

// Detect picks the first source that applies: an explicit value, the
// POCKETDOS_SESSION_ID variable, a tmux pane, a GNU Screen session, an SSH
// connection, a macOS terminal window and finally a random UUID.
func Detect(explicit string, getenv Getenv) (id, source string) {
	if explicit != "" {
		return formatExplicit(explicit), "explicit"
	}
	if v := getenv(EnvSessionID); v != "" {
		return formatExplicit(v), "env"
	}
	if pane := getenv("TMUX_PANE"); pane != "" {
		// the server socket is part of TMUX; panes are only unique per server
		return format(NamespaceTmux, hash("tmux:"+getenv("TMUX")+":"+pane)[:shortHash]), "tmux"
	}
	if sty := getenv("STY"); sty != "" {
		return format(NamespaceScreen, hash("screen:" + sty)[:shortHash]), "screen"
	}
	if conn := getenv("SSH_CONNECTION"); conn != "" {
		return format(NamespaceSSH, hash("ssh:" + strings.Join(strings.Fields(conn), ":"))[:shortHash]), "ssh"
	}
	if runtime.GOOS == "darwin" {
		if v := getenv("TERM_SESSION_ID"); v != "" {
			return format(NamespaceTerminal, hash("terminal:" + v)[:shortHash]), "terminal"
		}
	}
	return format(NamespaceUUID, uuid.NewString()), "uuid"
}

// formatExplicit keeps a namespace the caller already chose.
func formatExplicit(v string) string {
	if ns, payload, ok := strings.Cut(v, Delimiter); ok {
		return format(sanitize(ns), payload)
	}
	return format(NamespaceExplicit, v)
}

// format joins namespace and payload. An over-long payload is cut and
// given a hash suffix so distinct inputs stay distinct.
func format(namespace, payload string) string {
	sum := hash(payload)
	payload = sanitize(payload)
	limit := MaxIDLength - len(namespace) - len(Delimiter)
	if len(payload) > limit {
		if keep := limit - 9; keep >= 8 {
			payload = payload[:keep] + "_" + sum[:8]
		} else {
			payload = sum[:limit]
		}
	}
	return namespace + Delimiter + payload
}

// sanitize replaces anything but letters, digits, dot, hyphen and
// underscore.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '_'
	}, s)
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
