package queries

import "fmt"

// Args collects positional bind parameters. Templates number their own
// parameters from $1; fragments built afterwards bind theirs through Bind so
// the numbering continues where the template left off.
type Args struct {
	values []interface{}
}

// NewArgs starts a parameter list with the template's fixed parameters
func NewArgs(values ...interface{}) *Args {
	return &Args{values: append([]interface{}(nil), values...)}
}

// Bind appends a value and returns its placeholder
func (a *Args) Bind(value interface{}) string {
	a.values = append(a.values, value)
	return fmt.Sprintf("$%d", len(a.values))
}

// Values returns the parameters in placeholder order
func (a *Args) Values() []interface{} {
	return a.values
}

// Len returns the number of bound parameters
func (a *Args) Len() int {
	return len(a.values)
}
