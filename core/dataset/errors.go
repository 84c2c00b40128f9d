package dataset

import (
	"fmt"
	"strings"
)

// KeyConflictError reports a duplicate primary key, either within a single
// source or across merged sources.
type KeyConflictError struct {
	Key  string
	Row  int
	File string
}

func (e *KeyConflictError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("duplicate primary key %q at row %d of %s", e.Key, e.Row, e.File)
	}
	return fmt.Sprintf("duplicate primary key %q at row %d", e.Key, e.Row)
}

// SchemaMismatchError reports structural differences between the sources of
// a multi-source export.
type SchemaMismatchError struct {
	Problems []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("incompatible source schemas: %s", strings.Join(e.Problems, "; "))
}
