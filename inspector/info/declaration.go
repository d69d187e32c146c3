package info

import "errors"

// ErrNoDeclaration is returned when a source ends without a complete type declaration
var ErrNoDeclaration = errors.New("no type declaration found")

// Declaration represents the first namespace and type name declared in a source file
type Declaration struct {
	Namespace string
	Name      string
	Separator string
}

// FullName returns the fully-qualified type name
func (d *Declaration) FullName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + d.Separator + d.Name
}
