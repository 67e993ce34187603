package compileinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	info := &debug.BuildInfo{
		GoVersion: "go1.18",
		Path:      "github.com/carbocation/ekgbeat/cmd/ekgbeat",
		Main:      debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2022-04-12T02:06:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	c := fromBuildInfo(info)
	if c.Commit != "abc123" || c.CommitTime != "2022-04-12T02:06:05Z" || !c.Modified {
		t.Fatalf("Unexpected %+v", c)
	}

	s := c.String()
	for _, want := range []string{"cmd/ekgbeat built with go1.18", "commit abc123 (2022-04-12T02:06:05Z)", "uncommitted"} {
		if !strings.Contains(s, want) {
			t.Errorf("%q does not contain %q", s, want)
		}
	}
	if strings.Contains(s, "(devel)") {
		t.Errorf("%q should not mention a devel version", s)
	}
}

func TestStringWithoutBuildInfo(t *testing.T) {
	if s := (CompileInfo{}).String(); !strings.Contains(s, "not available") {
		t.Errorf("Got %q", s)
	}

	c := CompileInfo{Package: "ekgbeat", GoVersion: "go1.18", Version: "v1.2.0"}
	if s := c.String(); s != "ekgbeat v1.2.0 built with go1.18 from an unknown commit." {
		t.Errorf("Got %q", s)
	}
}
