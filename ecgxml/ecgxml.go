// Package ecgxml reads resting EKG strips from CardioSoft-style CardiologyXML
// exports and turns one lead into a beat.Series.
package ecgxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/ekgbeat/beat"
	"github.com/carbocation/pfx"
	"golang.org/x/net/html/charset"
)

// DefaultSampleRate is used, in samples per second, when the document does not
// state its own.
const DefaultSampleRate = 500.0

// CardiologyXML holds the parts of the export needed to rebuild a lead's
// signal. Everything else in the document is ignored.
type CardiologyXML struct {
	XMLName   xml.Name `xml:"CardiologyXML"`
	StripData struct {
		NumberOfLeads string `xml:"NumberOfLeads"` // 12
		SampleRate    struct {
			Text  string `xml:",chardata"` // 500
			Units string `xml:"units,attr"`
		} `xml:"SampleRate"`
		ChannelSampleCountTotal string `xml:"ChannelSampleCountTotal"` // 5000
		Resolution              struct {
			Text  string `xml:",chardata"` // 5
			Units string `xml:"units,attr"`
		} `xml:"Resolution"`
		WaveformData []struct {
			Text string `xml:",chardata"` // 0,0,-2,-3,0,7,9,5,6,10,11...
			Lead string `xml:"lead,attr"`
		} `xml:"WaveformData"`
	} `xml:"StripData"`
}

// Decode parses a document. The exports are usually ISO-8859-1 rather than
// UTF-8, so the decoder is given a charset reader.
func Decode(r io.Reader) (CardiologyXML, error) {
	var doc CardiologyXML

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&doc); err != nil {
		return doc, pfx.Err(err)
	}

	return doc, nil
}

// EstimateVoltageCorrection returns the factor that converts raw values to
// millivolts. Only uVperLsb resolutions are understood; anything else is left
// uncorrected.
func EstimateVoltageCorrection(value, units string) float64 {
	voltageCorrection := 1.0

	if units == "uVperLsb" {
		vc, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err == nil {
			voltageCorrection = 0.001 * vc
		}
	}

	return voltageCorrection
}

// SampleRate is the strip's sampling frequency in Hz.
func (doc CardiologyXML) SampleRate() float64 {
	rate, err := strconv.ParseFloat(strings.TrimSpace(doc.StripData.SampleRate.Text), 64)
	if err != nil || rate <= 0 {
		return DefaultSampleRate
	}

	return rate
}

// Leads lists the leads present in the strip, in document order.
func (doc CardiologyXML) Leads() []string {
	out := make([]string, 0, len(doc.StripData.WaveformData))
	for _, v := range doc.StripData.WaveformData {
		out = append(out, v.Lead)
	}

	return out
}

// ToSeries converts one lead into a series. Sample i is placed at i/SampleRate
// seconds, and its voltage is corrected to millivolts.
func ToSeries(doc CardiologyXML, lead, identifier string) (beat.Series, error) {
	s := beat.Series{Identifier: identifier}

	for _, v := range doc.StripData.WaveformData {
		if v.Lead != lead {
			continue
		}

		// The raw data contains whitespace, newlines, and tabs
		txt := strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\n', '\r', '\t':
				return -1
			}
			return r
		}, v.Text)
		if txt == "" {
			return s, nil
		}

		rate := doc.SampleRate()
		correction := EstimateVoltageCorrection(doc.StripData.Resolution.Text, doc.StripData.Resolution.Units)

		vals := strings.Split(txt, ",")
		s.Samples = make([]beat.Sample, 0, len(vals))
		for j, measurement := range vals {
			raw, err := strconv.Atoi(measurement)
			if err != nil {
				return s, fmt.Errorf("Lead %s measurement %d is not numeric and is instead [%s]", lead, j, measurement)
			}

			s.Samples = append(s.Samples, beat.Sample{
				Time:    float64(j) / rate,
				Voltage: float64(raw) * correction,
			})
		}

		return s, nil
	}

	return s, fmt.Errorf("Lead %s not found; leads present: %v", lead, doc.Leads())
}

// ReadSeries decodes a document from r and extracts lead.
func ReadSeries(r io.Reader, lead, identifier string) (beat.Series, error) {
	doc, err := Decode(r)
	if err != nil {
		return beat.Series{Identifier: identifier}, err
	}

	return ToSeries(doc, lead, identifier)
}
