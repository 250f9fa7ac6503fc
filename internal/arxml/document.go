// =============================================================================
// ARXML to XLSX Extractor - Document Loader
// =============================================================================
//
// This module turns an ARXML file into a small, read-only element tree. The
// tree keeps only what the extractor needs:
//   - the namespace-qualified element name
//   - the element's own character data
//   - ordered children
//   - the source line, for error messages
//
// Namespace prefixes are resolved by encoding/xml, so a lookup for
// {http://autosar.org/schema/r4.0}SHORT-NAME matches <SHORT-NAME> under a
// default namespace and <ar:SHORT-NAME> under a prefixed one alike.
//
// =============================================================================

package arxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"golang.org/x/net/html/charset"
)

// =============================================================================
// ERRORS
// =============================================================================

// ErrDocumentLoad is the kind shared by every DocumentLoadError.
var ErrDocumentLoad = errors.New("document load failed")

// DocumentLoadError reports a source document that is missing, unreadable or
// not well-formed. Extraction is never attempted on such a document.
type DocumentLoadError struct {
	// Path is the source path, empty when parsing from a reader.
	Path string

	// Err is the underlying I/O or syntax error.
	Err error
}

func (e *DocumentLoadError) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", ErrDocumentLoad, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrDocumentLoad, e.Path, e.Err)
}

func (e *DocumentLoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDocumentLoad) match any DocumentLoadError.
func (e *DocumentLoadError) Is(target error) bool { return target == ErrDocumentLoad }

// =============================================================================
// TREE
// =============================================================================

// Document is a parsed source document.
type Document struct {
	// Path is the file the document was loaded from, if any.
	Path string

	// Root is the document element.
	Root *Element
}

// Element is one node of the document tree.
type Element struct {
	// Name is the namespace-qualified name. Name.Space holds the namespace
	// URI, not the prefix.
	Name xml.Name

	// Line is the source line where the start tag ends.
	Line int

	Parent   *Element
	Children []*Element

	text strings.Builder
}

// Text returns the element's own character data with surrounding whitespace
// removed. Text of child elements is not included.
func (e *Element) Text() string {
	return strings.TrimSpace(e.text.String())
}

// Is reports whether the element has the given namespace and local name.
func (e *Element) Is(space, local string) bool {
	return e.Name.Space == space && e.Name.Local == local
}

// Path returns a slash separated list of local names from the root to e.
func (e *Element) Path() string {
	var parts []string
	for cur := e; cur != nil; cur = cur.Parent {
		parts = append(parts, cur.Name.Local)
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads and parses the document at path.
//
// RETURNS:
//   - The parsed document.
//   - A *DocumentLoadError if the file is missing, unreadable or malformed.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DocumentLoadError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		var loadErr *DocumentLoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse builds the element tree from XML input.
func Parse(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)
	// Tools still emit ISO-8859-1 or windows-1252 ARXML now and then.
	decoder.CharsetReader = charset.NewReaderLabel

	var stack []*Element
	var root *Element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &DocumentLoadError{Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, &DocumentLoadError{
					Err: fmt.Errorf("unexpected element %s after document end", t.Name.Local),
				}
			}
			line, _ := decoder.InputPos()
			elem := &Element{Name: t.Name, Line: line}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
				elem.Parent = parent
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 && root != nil {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isIgnorableOutsideRoot(string(t)) {
					return nil, &DocumentLoadError{
						Err: errors.New("unexpected character data outside root element"),
					}
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)
		}
	}

	if root == nil {
		return nil, &DocumentLoadError{Err: io.ErrUnexpectedEOF}
	}

	return &Document{Root: root}, nil
}

func isIgnorableOutsideRoot(data string) bool {
	for _, r := range data {
		if r == '\uFEFF' {
			continue
		}
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
