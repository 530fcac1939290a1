// Package opt matches single-character command-line flags against a table of
// registered options and invokes a callback per match. It only handles flags
// of the form -c; long options and attached values are out of scope.
package opt

import (
	"fmt"
	"sort"
)

// Option pairs a flag character with the callback to run when the flag is
// seen. Handle returns true to keep scanning and false to stop after this
// flag (both are success).
type Option struct {
	Name   byte
	Handle func() bool
}

// List holds registered options, kept sorted by flag character so lookup is
// logarithmic. The zero value is ready to use. A List is not safe for
// concurrent use; callers sharing one must serialise access themselves.
type List struct {
	options []Option
	sorted  bool
}

// Add registers a flag. Registering the same character twice is a caller bug
// and is not detected here.
func (l *List) Add(name byte, handle func() bool) {
	l.options = append(l.options, Option{Name: name, Handle: handle})
	l.sorted = false
}

// Len returns the number of registered options.
func (l *List) Len() int {
	return len(l.options)
}

// Sort orders the options by ascending flag character. It is a no-op when
// nothing has been added since the last call.
func (l *List) Sort() {
	if l.sorted {
		return
	}
	sort.Slice(l.options, func(i, j int) bool {
		return l.options[i].Name < l.options[j].Name
	})
	l.sorted = true
}

// Find returns the option registered for name, or nil if there is none. The
// list must have been sorted first.
func (l *List) Find(name byte) *Option {
	i := sort.Search(len(l.options), func(i int) bool {
		return l.options[i].Name >= name
	})
	if i < len(l.options) && l.options[i].Name == name {
		return &l.options[i]
	}
	return nil
}

// Error reports a flag argument with no registered option.
type Error struct {
	Name byte
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid option '-%s'", printable(e.Name))
}

// printable renders c literally when it is printable ASCII, otherwise as a
// two-digit lowercase hex escape.
func printable(c byte) string {
	if c >= 0x20 && c <= 0x7e {
		return string(c)
	}
	return fmt.Sprintf(`\x%02x`, c)
}

// Parse scans args in order, invoking the handler of each -c flag, and
// returns the index of the first unconsumed argument: the first argument
// without a '-' prefix, the argument after a flag whose handler returned
// false, or len(args) when every argument was a consumed flag.
//
// An unregistered flag aborts the scan with an *Error; arguments from the
// returned index onward were not examined. Parse sorts options if needed and
// has no side effects of its own beyond invoking handlers.
func Parse(args []string, options *List) (int, error) {
	options.Sort()
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if len(arg) == 0 || arg[0] != '-' {
			break
		}
		// Only the character after the dash names the flag; anything
		// after that is ignored. A bare "-" looks up flag zero.
		var name byte
		if len(arg) > 1 {
			name = arg[1]
		}
		o := options.Find(name)
		if o == nil {
			return i, &Error{Name: name}
		}
		if !o.Handle() {
			return i + 1, nil
		}
	}
	return i, nil
}
