// Package table reads and writes flag tables: descriptions of the
// single-character flags a script accepts, kept either in a JSON file
// alongside the script or given inline as a compact spec string.
package table

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/guardian/shortopt/opt"
)

var DefaultPath = ".shortopt"

// Flag describes one single-character flag. Stop marks a flag whose match
// ends scanning, leaving the remaining arguments to the caller.
type Flag struct {
	Name string `json:"name"`
	Stop bool   `json:"stop,omitempty"`
	Help string `json:"help,omitempty"`
}

type Table struct {
	Flags []Flag `json:"flags"`
}

func (t *Table) Unmarshal(data []byte) error {
	return json.Unmarshal(data, t)
}

// Merge combines tables. A later table's entry replaces an earlier entry for
// the same flag; new flags are appended in encounter order.
func Merge(tables ...Table) Table {
	var out Table
	index := map[string]int{}

	for _, t := range tables {
		for _, f := range t.Flags {
			if i, ok := index[f.Name]; ok {
				out.Flags[i] = f
				continue
			}
			index[f.Name] = len(out.Flags)
			out.Flags = append(out.Flags, f)
		}
	}

	return out
}

// ParseSpec expands a compact spec like "vq!o" into a table: one flag per
// character, with '!' marking the preceding flag as a stop flag.
func ParseSpec(spec string) Table {
	var t Table

	for i := 0; i < len(spec); i++ {
		if spec[i] == '!' {
			if n := len(t.Flags); n > 0 {
				t.Flags[n-1].Stop = true
			}
			continue
		}
		t.Flags = append(t.Flags, Flag{Name: string(spec[i])})
	}

	return t
}

func DefaultFiles() []io.ReadCloser {
	files := []io.ReadCloser{}

	file, err := os.Open(DefaultPath)
	if err == nil {
		files = append(files, file)
	}

	return files
}

// Reads any file table and merges it with the flags given on the command
// line. When both define a flag, the command-line entry is preferred. Only
// the first file that contains table data is used.
func Read(argTable Table, files ...io.ReadCloser) (Table, error) {
	fileTable := Table{}

	for _, f := range files {
		defer f.Close()
		data, err := io.ReadAll(f)
		if err == nil {
			err = fileTable.Unmarshal(data)
			if err != nil {
				return fileTable, err
			}

			break
		}
	}

	for _, t := range []Table{fileTable, argTable} {
		if err := validate(t); err != nil {
			return Table{}, err
		}
	}

	merged := Merge(fileTable, argTable)

	if len(merged.Flags) == 0 {
		return merged, fmt.Errorf("no flags defined (pass --options or create a %s file)", DefaultPath)
	}

	return merged, nil
}

// Duplicate flags are undefined behaviour in the opt package, so they are
// rejected here before a list is ever built.
func validate(t Table) error {
	seen := map[string]bool{}

	for _, f := range t.Flags {
		if len(f.Name) != 1 {
			return fmt.Errorf("flag name must be a single character (got '%s')", f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate flag '%s'", f.Name)
		}
		seen[f.Name] = true
	}

	return nil
}

func Write(t Table) error {
	out, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("unable to marshal JSON: %w", err)
	}

	err = os.WriteFile(DefaultPath, out, 0644)
	if err != nil {
		return fmt.Errorf("unable to write table file: %w", err)
	}

	return nil
}

// Options builds the option list Parse consumes. record is called once per
// table entry and returns the handler to register for it, typically a
// closure noting the match and returning !f.Stop.
func (t Table) Options(record func(f Flag) func() bool) *opt.List {
	list := &opt.List{}
	for _, f := range t.Flags {
		list.Add(f.Name[0], record(f))
	}
	return list
}
