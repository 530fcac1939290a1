package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/guardian/shortopt/log"
	"github.com/guardian/shortopt/table"
)

func TestScan(t *testing.T) {
	tab := table.Table{Flags: []table.Flag{
		{Name: "v"},
		{Name: "q", Stop: true},
	}}

	matched, rest, err := scan(log.New(false), tab, []string{"-v", "-q", "file.txt", "other"})
	if err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}

	if strings.Join(matched, "") != "vq" {
		t.Fatalf("matched flags '%s', expected 'vq'", strings.Join(matched, ""))
	}

	want := []string{"file.txt", "other"}
	if !reflect.DeepEqual(rest, want) {
		t.Fatalf("got rest %v; want %v", rest, want)
	}
}

func TestScanUnknownFlag(t *testing.T) {
	tab := table.Table{Flags: []table.Flag{{Name: "v"}}}

	_, _, err := scan(log.New(false), tab, []string{"-x"})
	if err == nil {
		t.Fatal("expected an error for unregistered flag -x")
	}
	if err.Error() != "invalid option '-x'" {
		t.Fatalf("got error '%s', expected \"invalid option '-x'\"", err.Error())
	}
}

func TestReadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	err := os.WriteFile(path, []byte(`{"flags":[{"name":"v","help":"verbose"}]}`), 0644)
	if err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	got, err := readTable(log.New(false), "q!", path)
	if err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	want := table.Table{Flags: []table.Flag{
		{Name: "v", Help: "verbose"},
		{Name: "q", Stop: true},
	}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got: %v; want %v", got, want)
	}
}
