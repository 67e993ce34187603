// ekgbeat finds the R peaks in each subject's EKG recording, labels every beat
// as normal, bradycardic or tachycardic from its RR interval, and writes one
// report per subject per label plus one merged report per label.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	_ "github.com/carbocation/ekgbeat/compileinfoprint"
	"github.com/carbocation/ekgbeat/plot"
)

var defaultSubjects = []string{"person1", "person2", "person3"}

type flagSlice []string

func (i *flagSlice) String() string {
	return strings.Join(*i, ",")
}

func (i *flagSlice) Set(value string) error {
	*i = append(*i, value)
	return nil
}

type config struct {
	Subjects    []string
	InputDir    string
	Extension   string
	OutputDir   string
	Merge       bool
	Lead        string
	Concurrency int

	SummaryPath string
	Histogram   bool
	PNG         bool
	PNGWidth    int
	PNGHeight   int
	SQLitePath  string

	BQProject   string
	BQDataset   string
	BQTable     string
	Credentials string
}

func main() {
	var subjects flagSlice
	cfg := config{}

	flag.Var(&subjects, "subject", fmt.Sprintf("Subject to process. Pass once per subject (e.g., -subject person1 -subject person2). May also be a path or gs:// URI to the subject's file. Defaults to %s.", strings.Join(defaultSubjects, ", ")))
	flag.StringVar(&cfg.InputDir, "dir", ".", "Folder holding the subject files, each named <subject><ext>.")
	flag.StringVar(&cfg.Extension, "ext", ".txt", "Extension of the subject files. Files ending in .xml are read as CardiologyXML; .gz, .bz2, .xz and .zip are decompressed.")
	flag.StringVar(&cfg.OutputDir, "out", ".", "Folder where the reports are written.")
	flag.BoolVar(&cfg.Merge, "merge", true, "Also write one merged report per label across all subjects?")
	flag.StringVar(&cfg.Lead, "lead", "I", "For CardiologyXML input, which lead to analyze.")
	flag.IntVar(&cfg.Concurrency, "concurrency", runtime.NumCPU(), "Number of subjects to process at once.")
	flag.StringVar(&cfg.SummaryPath, "summary", "", "(Optional) Path for a tab-delimited per-subject summary. Use - for stdout.")
	flag.BoolVar(&cfg.Histogram, "histogram", false, "(Optional) Print a histogram of each subject's RR intervals to stdout?")
	flag.BoolVar(&cfg.PNG, "png", false, "(Optional) Plot each subject's signal and peaks to <out>/<subject>.png?")
	flag.IntVar(&cfg.PNGWidth, "width", plot.DefaultWidth, "(Optional) If creating PNGs, what pixel width?")
	flag.IntVar(&cfg.PNGHeight, "height", plot.DefaultHeight, "(Optional) If creating PNGs, what pixel height?")
	flag.StringVar(&cfg.SQLitePath, "sqlite", "", "(Optional) Path to a SQLite database that will receive the classified peaks and summaries.")
	flag.StringVar(&cfg.BQProject, "bq_project", "", "(Optional) Google Cloud project whose BigQuery dataset will receive the classified peaks.")
	flag.StringVar(&cfg.BQDataset, "bq_dataset", "", "(Optional) BigQuery dataset. Required with -bq_project.")
	flag.StringVar(&cfg.BQTable, "bq_table", "classified_peak", "(Optional) BigQuery table for peaks. Summaries go to the same name with a _summary suffix.")
	flag.StringVar(&cfg.Credentials, "credentials", "", "(Optional) Service account JSON file for Google Cloud. Application default credentials are used otherwise.")
	flag.Parse()

	cfg.Subjects = subjects
	if len(cfg.Subjects) == 0 {
		cfg.Subjects = defaultSubjects
	}

	if cfg.Concurrency < 1 {
		log.Println("-concurrency must be at least 1")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if cfg.BQProject != "" && cfg.BQDataset == "" {
		log.Println("-bq_dataset is required with -bq_project")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Fatalln(err)
	}
}
