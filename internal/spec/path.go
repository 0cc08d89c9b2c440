package spec

import (
	"strconv"
	"strings"
)

// Path addresses a value inside a document tree, JSONPath style:
// `$`, `$.children[2]`, `$.children[0].body.rows[1].cells[0].content`.
type Path string

// RootPath is the path of the document root.
const RootPath Path = "$"

// Child returns the path of the i-th child.
func (p Path) Child(i int) Path {
	return p.Field(KeyChildren).Index(i)
}

// Field returns the path of a named prop.
func (p Path) Field(name string) Path {
	if p == "" {
		p = RootPath
	}
	return Path(string(p) + "." + name)
}

// Index returns the path of a list element.
func (p Path) Index(i int) Path {
	if p == "" {
		p = RootPath
	}
	return Path(string(p) + "[" + strconv.Itoa(i) + "]")
}

// Depth counts path segments below the root.
func (p Path) Depth() int {
	s := string(p)
	return strings.Count(s, ".") + strings.Count(s, "[")
}

func (p Path) String() string {
	return string(p)
}
