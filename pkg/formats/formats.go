// Package formats provides parsers for Wavefront model text formats.
package formats

import "fmt"

// Note: OBJ (geometry) is fully implemented in obj.go
// Note: MTL (material library) is fully implemented in mtl.go

// Warning is a non-fatal, line-numbered parse diagnostic.
// Parsers never abort on malformed input; they record a Warning and
// continue with the next line.
type Warning struct {
	File    string // file the line came from (OBJ or MTL)
	Line    int    // 1-based line number
	Message string
}

// String formats the warning in "file line[n] message" form.
func (w Warning) String() string {
	return fmt.Sprintf("%s line[%d] %s", w.File, w.Line, w.Message)
}
