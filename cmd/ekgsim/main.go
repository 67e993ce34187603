// ekgsim writes a synthetic EKG recording in the format ekgbeat reads: a
// header line, then one time and voltage pair per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/carbocation/ekgbeat"
	"github.com/carbocation/ekgbeat/beat"
	_ "github.com/carbocation/ekgbeat/compileinfoprint"
	"github.com/carbocation/ekgbeat/simulate"
)

func main() {
	var output, subject string
	var sampleRate, bpm, seconds, noise float64

	flag.StringVar(&output, "out", "", "Path to the file to write. Use - for stdout. Defaults to <subject>.txt")
	flag.StringVar(&subject, "subject", "person1", "Subject identifier, used to name the output if -out is not set.")
	flag.Float64Var(&sampleRate, "fs", 1000, "Sampling rate in Hz. One beat must span more than 501 and at most 1000 samples for every beat to be detected.")
	flag.Float64Var(&bpm, "bpm", 72, "Heart rate in beats per minute.")
	flag.Float64Var(&seconds, "seconds", 10, "Duration of the recording in seconds.")
	flag.Float64Var(&noise, "noise", 0, "Amplitude, in mV, of deterministic noise added to the signal.")
	flag.Parse()

	if sampleRate <= 0 || bpm <= 0 || seconds <= 0 {
		log.Println("-fs, -bpm and -seconds must all be positive")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if output == "" {
		output = subject + ".txt"
	}

	if spb := sampleRate * 60 / bpm; spb <= beat.Lookahead+1 || spb > 2*beat.Lookahead {
		log.Printf("Each beat spans %.0f samples; some beats will be missed or spurious peaks found\n", spb)
	}

	if err := run(output, simulate.New(sampleRate, bpm, noise).Series(subject, seconds)); err != nil {
		log.Fatalln(err)
	}
}

func run(output string, s beat.Series) error {
	var w io.Writer = os.Stdout

	if output != "-" {
		path, err := ekgbeat.ExpandHome(output)
		if err != nil {
			return err
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("%w: %v", ekgbeat.ErrOutputUnavailable, err)
		}
		defer f.Close()
		w = f
	}

	bw := bufio.NewWriter(w)
	if err := writeSeries(bw, s); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	if output != "-" {
		log.Printf("Wrote %d samples for %s to %s\n", s.Len(), s.Identifier, output)
	}

	return nil
}

func writeSeries(w io.Writer, s beat.Series) error {
	if _, err := fmt.Fprintln(w, "time voltage"); err != nil {
		return err
	}

	for _, sample := range s.Samples {
		if _, err := fmt.Fprintf(w, "%s %s\n",
			strconv.FormatFloat(sample.Time, 'f', -1, 64),
			strconv.FormatFloat(sample.Voltage, 'f', -1, 64)); err != nil {
			return err
		}
	}

	return nil
}
