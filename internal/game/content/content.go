// Package content resolves targets, weapon sets, encounters and character
// sheets from a file path or a built-in id, decoding text with BOM
// detection.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotFound is returned when neither the path nor the built-in id yields
// content.
var ErrNotFound = errors.New("content: not found")

// Kind is a built-in content family; its value is the embedded directory.
type Kind string

const (
	KindTarget    Kind = "targets"
	KindWeapons   Kind = "weapons"
	KindEncounter Kind = "encounters"
)

//go:embed builtin
var builtinFS embed.FS

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func hasBOM(b []byte) bool {
	return bytes.HasPrefix(b, bomUTF8) || bytes.HasPrefix(b, bomUTF16LE) || bytes.HasPrefix(b, bomUTF16BE)
}

// DecodeText converts raw file bytes to UTF-8. A UTF-8 or UTF-16 byte order
// mark selects the decoding and is stripped; without one the bytes must
// already be valid UTF-8.
func DecodeText(raw []byte) ([]byte, error) {
	if !hasBOM(raw) {
		if !utf8.Valid(raw) {
			return nil, errors.New("content: text is not valid UTF-8 and carries no byte order mark")
		}
		return raw, nil
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		return nil, fmt.Errorf("content: decoding text: %w", err)
	}
	return out, nil
}

// ReadText reads the file at p and decodes it with DecodeText.
func ReadText(p string) ([]byte, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	out, err := DecodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return out, nil
}

// Builtin returns the embedded document for id.
//
// Postcondition: err wraps ErrNotFound iff kind has no document named id.
func Builtin(kind Kind, id string) ([]byte, error) {
	for _, ext := range []string{".json", ".yaml"} {
		data, err := builtinFS.ReadFile(path.Join("builtin", string(kind), id+ext))
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: built-in %s id %q", ErrNotFound, strings.TrimSuffix(string(kind), "s"), id)
}

// BuiltinIDs lists the embedded ids of kind in sorted order.
func BuiltinIDs(kind Kind) []string {
	entries, err := fs.ReadDir(builtinFS, path.Join("builtin", string(kind)))
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		ids = append(ids, strings.TrimSuffix(name, path.Ext(name)))
	}
	sort.Strings(ids)
	return ids
}

// Resolve loads a document from p, falling back to the built-in id.
//
// A readable p wins. When p fails and id is set, the built-in is used.
// When p fails and id is empty, or id names no built-in, or both are
// empty, the error wraps ErrNotFound.
func Resolve(kind Kind, p, id string) ([]byte, error) {
	if p != "" {
		data, err := ReadText(p)
		if err == nil {
			return data, nil
		}
		if id == "" {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrNotFound, p, err)
		}
	}
	if id != "" {
		return Builtin(kind, id)
	}
	return nil, fmt.Errorf("%w: %s path or built-in id required", ErrNotFound, strings.TrimSuffix(string(kind), "s"))
}
