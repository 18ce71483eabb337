// Package vfs implements the read-only in-memory filesystem exposed by the
// shell. A tree is assembled once with NewDirectory/New and is never mutated
// afterwards, so it may be shared freely between consoles.
package vfs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned (wrapped) when a path does not resolve to a node.
var ErrNotFound = errors.New("vfs: not found")

// Kind identifies the variant of a Node.
type Kind int

const (
	KindFile Kind = iota + 1
	KindDirectory
	KindExecutable
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "dir"
	case KindExecutable:
		return "exe"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one of *File, *Directory or *Executable.
type Node interface {
	Kind() Kind
}

// File is an immutable text blob.
type File struct {
	Content string
}

// Kind implements Node.
func (*File) Kind() Kind { return KindFile }

// Executable is a leaf that launches the program registered under ProgramID.
type Executable struct {
	DisplayName string
	ProgramID   string
}

// Kind implements Node.
func (*Executable) Kind() Kind { return KindExecutable }

// Child pairs a name with a node, for use with NewDirectory.
type Child struct {
	Name string
	Node Node
}

// Directory maps unique names to nodes, remembering insertion order.
type Directory struct {
	names    []string
	children map[string]Node
}

// Kind implements Node.
func (*Directory) Kind() Kind { return KindDirectory }

// NewDirectory builds a directory from children, in the given order.
// Names must be non-empty, unique, free of path separators, and not "." or
// "..". Nested directories must already be built.
func NewDirectory(children ...Child) (*Directory, error) {
	d := &Directory{
		names:    make([]string, 0, len(children)),
		children: make(map[string]Node, len(children)),
	}
	for _, c := range children {
		if err := validName(c.Name); err != nil {
			return nil, err
		}
		if c.Node == nil {
			return nil, fmt.Errorf("vfs: nil node for %q", c.Name)
		}
		if _, dup := d.children[c.Name]; dup {
			return nil, fmt.Errorf("vfs: duplicate name %q", c.Name)
		}
		d.names = append(d.names, c.Name)
		d.children[c.Name] = c.Node
	}
	return d, nil
}

func validName(name string) error {
	switch {
	case name == "":
		return errors.New("vfs: empty name")
	case name == "." || name == "..":
		return fmt.Errorf("vfs: reserved name %q", name)
	case strings.ContainsAny(name, `\/`):
		return fmt.Errorf("vfs: name %q contains a path separator", name)
	}
	return nil
}

// Lookup returns the direct child called name.
func (d *Directory) Lookup(name string) (Node, bool) {
	n, ok := d.children[name]
	return n, ok
}

// Len returns the number of children.
func (d *Directory) Len() int { return len(d.names) }

// Entry is a single row of a directory listing.
type Entry struct {
	Name string
	Kind Kind
	Node Node
}

// List returns the children in insertion order.
func (d *Directory) List() []Entry {
	out := make([]Entry, 0, len(d.names))
	for _, name := range d.names {
		n := d.children[name]
		out = append(out, Entry{Name: name, Kind: n.Kind(), Node: n})
	}
	return out
}

// FS is a rooted tree addressed through a drive token such as "C:".
type FS struct {
	drive string
	root  *Directory
}

// New returns a filesystem mounted at drive, which must look like "C:".
func New(drive string, root *Directory) (*FS, error) {
	if len(drive) != 2 || drive[1] != ':' || !isLetter(drive[0]) {
		return nil, fmt.Errorf("vfs: invalid drive %q", drive)
	}
	if root == nil {
		return nil, errors.New("vfs: nil root")
	}
	return &FS{drive: strings.ToUpper(drive), root: root}, nil
}

func isLetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Drive returns the drive token, e.g. "C:".
func (f *FS) Drive() string { return f.drive }

// Root returns the root directory.
func (f *FS) Root() *Directory { return f.root }

// RootPath returns the path segments of the root, e.g. ["C:"].
func (f *FS) RootPath() []string { return []string{f.drive} }

// Resolve resolves path relative to cwd (a root-anchored segment list such
// as ["C:", "NOTES"]). Both `\` and `/` separate segments; a leading drive
// token or separator makes the path absolute; "." is ignored and ".." is
// clamped at the root. Any failure wraps ErrNotFound.
func (f *FS) Resolve(path string, cwd []string) (Node, error) {
	n, _, err := f.resolve(path, cwd)
	return n, err
}

// ResolvePath is Resolve, additionally returning the canonical absolute
// segments of the resolved node.
func (f *FS) ResolvePath(path string, cwd []string) (Node, []string, error) {
	return f.resolve(path, cwd)
}

func (f *FS) resolve(path string, cwd []string) (Node, []string, error) {
	parts := splitPath(path)

	var start []string
	switch {
	case len(parts) > 0 && isDriveToken(parts[0]):
		if !strings.EqualFold(parts[0], f.drive) {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		parts = parts[1:]
	case strings.HasPrefix(path, `\`) || strings.HasPrefix(path, "/"):
	default:
		if len(cwd) == 0 || !strings.EqualFold(cwd[0], f.drive) {
			return nil, nil, fmt.Errorf("%w: working directory %q", ErrNotFound, FormatPath(cwd))
		}
		start = cwd[1:]
	}

	// dirs[i] is the directory reached after i segments; names mirrors it.
	dirs := []*Directory{f.root}
	names := make([]string, 0, len(start)+len(parts))
	for _, name := range start {
		next, ok := dirs[len(dirs)-1].Lookup(name)
		d, isDir := next.(*Directory)
		if !ok || !isDir {
			return nil, nil, fmt.Errorf("%w: working directory %q", ErrNotFound, FormatPath(cwd))
		}
		dirs = append(dirs, d)
		names = append(names, name)
	}

	var leaf Node
	for _, part := range parts {
		if leaf != nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		switch part {
		case ".":
			continue
		case "..":
			if len(dirs) > 1 {
				dirs = dirs[:len(dirs)-1]
				names = names[:len(names)-1]
			}
			continue
		}
		next, ok := dirs[len(dirs)-1].Lookup(part)
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		names = append(names, part)
		if d, isDir := next.(*Directory); isDir {
			dirs = append(dirs, d)
		} else {
			leaf = next
		}
	}

	abs := append([]string{f.drive}, names...)
	if leaf != nil {
		return leaf, abs, nil
	}
	return dirs[len(dirs)-1], abs, nil
}

// Dir returns the directory at the absolute segments p.
func (f *FS) Dir(p []string) (*Directory, error) {
	n, err := f.Resolve("", p)
	if err != nil {
		return nil, err
	}
	d, ok := n.(*Directory)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNotFound, FormatPath(p))
	}
	return d, nil
}

// Walk visits every node depth-first, in listing order, with its absolute
// segments. Returning a non-nil error stops the walk.
func (f *FS) Walk(fn func(p []string, n Node) error) error {
	return walk([]string{f.drive}, f.root, fn)
}

func walk(p []string, d *Directory, fn func([]string, Node) error) error {
	for _, e := range d.List() {
		child := append(append(make([]string, 0, len(p)+1), p...), e.Name)
		if err := fn(child, e.Node); err != nil {
			return err
		}
		if sub, ok := e.Node.(*Directory); ok {
			if err := walk(child, sub, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatPath joins segments with backslashes: ["C:","NOTES"] is `C:\NOTES`
// and the root is plain "C:".
func FormatPath(p []string) string {
	return strings.Join(p, `\`)
}

func splitPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '\\' || r == '/' })
}

func isDriveToken(s string) bool {
	return len(s) == 2 && s[1] == ':' && isLetter(s[0])
}
