package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/ekgbeat"
	"github.com/carbocation/ekgbeat/beat"
)

var header = "ZAMAN          VOLTAJ\n" + strings.Repeat("-", 30) + "\n"

func TestWrite(t *testing.T) {
	peaks := []beat.ClassifiedPeak{
		{Peak: beat.Peak{Time: 2, Voltage: 0.08}, Label: beat.Normal},
		{Peak: beat.Peak{Time: 505.5, Voltage: 0.09}, Label: beat.Normal},
	}

	var buf bytes.Buffer
	if err := Write(&buf, peaks); err != nil {
		t.Fatal(err)
	}

	expected := header +
		"2.0000         0.0800\n" +
		"505.5000       0.0900\n"

	if buf.String() != expected {
		t.Errorf("Got:\n%s\nExpected:\n%s", buf.String(), expected)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatal(err)
	}

	if buf.String() != header {
		t.Errorf("Got %q, expected just the header", buf.String())
	}
}

func TestWriteFileOutputUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "person1-normal.txt")

	if err := WriteFile(path, nil); !errors.Is(err, ekgbeat.ErrOutputUnavailable) {
		t.Errorf("Expected ErrOutputUnavailable, got %v", err)
	}
}

func TestFileNames(t *testing.T) {
	got := Paths("out", "person1")
	expected := []string{
		filepath.Join("out", "person1-normal.txt"),
		filepath.Join("out", "person1-bradikardi.txt"),
		filepath.Join("out", "person1-tasikardi.txt"),
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Got %v, expected %v", got, expected)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName("person1", beat.Tachycardia))

	peaks := []beat.ClassifiedPeak{{Peak: beat.Peak{Time: 0.5, Voltage: 0.1}, Label: beat.Tachycardia}}
	if err := WriteFile(path, peaks); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if expected := header + "0.5000         0.1000\n"; string(got) != expected {
		t.Errorf("Got %q, expected %q", got, expected)
	}
}
