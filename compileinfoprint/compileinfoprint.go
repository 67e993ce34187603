// Package compileinfoprint is imported by commands for the side effect of
// printing build provenance to stderr at startup.
package compileinfoprint

import "github.com/carbocation/ekgbeat/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
