package ecgxml

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

const strip = `<?xml version="1.0" encoding="ISO-8859-1"?>
<CardiologyXML>
	<ObservationType>RestECG</ObservationType>
	<StripData>
		<NumberOfLeads>2</NumberOfLeads>
		<SampleRate units="Hz">250</SampleRate>
		<ChannelSampleCountTotal>4</ChannelSampleCountTotal>
		<Resolution units="uVperLsb">5</Resolution>
		<WaveformData lead="I">	0,12,
			-4,20</WaveformData>
		<WaveformData lead="II">1,1,1,1</WaveformData>
	</StripData>
</CardiologyXML>`

func TestReadSeries(t *testing.T) {
	s, err := ReadSeries(strings.NewReader(strip), "I", "person1")
	if err != nil {
		t.Fatal(err)
	}

	if s.Identifier != "person1" {
		t.Errorf("Got identifier %q", s.Identifier)
	}

	expectedTimes := []float64{0, 0.004, 0.008, 0.012}
	expectedVolts := []float64{0, 0.06, -0.02, 0.1}
	if s.Len() != len(expectedTimes) {
		t.Fatalf("Got %d samples, expected %d", s.Len(), len(expectedTimes))
	}
	for i, sample := range s.Samples {
		if math.Abs(sample.Time-expectedTimes[i]) > 1e-12 {
			t.Errorf("Sample %d: time %v, expected %v", i, sample.Time, expectedTimes[i])
		}
		if math.Abs(sample.Voltage-expectedVolts[i]) > 1e-12 {
			t.Errorf("Sample %d: voltage %v, expected %v", i, sample.Voltage, expectedVolts[i])
		}
	}
}

func TestMissingLead(t *testing.T) {
	if _, err := ReadSeries(strings.NewReader(strip), "V6", "person1"); err == nil {
		t.Error("Expected an error for an absent lead")
	}
}

func TestNonNumeric(t *testing.T) {
	doc := strings.Replace(strip, "1,1,1,1", "1,x,1,1", 1)
	if _, err := ReadSeries(strings.NewReader(doc), "II", "person1"); err == nil {
		t.Error("Expected an error for a non-numeric measurement")
	}
}

func TestLeads(t *testing.T) {
	doc, err := Decode(strings.NewReader(strip))
	if err != nil {
		t.Fatal(err)
	}

	if got := doc.Leads(); !reflect.DeepEqual(got, []string{"I", "II"}) {
		t.Errorf("Got leads %v", got)
	}
	if rate := doc.SampleRate(); rate != 250 {
		t.Errorf("Got sample rate %v", rate)
	}
}

func TestEstimateVoltageCorrection(t *testing.T) {
	for _, v := range []struct {
		Value, Units string
		Expected     float64
	}{
		{"5", "uVperLsb", 0.005},
		{" 4.88 ", "uVperLsb", 0.00488},
		{"5", "mV", 1},
		{"junk", "uVperLsb", 1},
	} {
		if got := EstimateVoltageCorrection(v.Value, v.Units); math.Abs(got-v.Expected) > 1e-12 {
			t.Errorf("%q %q: got %v, expected %v", v.Value, v.Units, got, v.Expected)
		}
	}
}

func TestDefaultSampleRate(t *testing.T) {
	var doc CardiologyXML
	if rate := doc.SampleRate(); rate != DefaultSampleRate {
		t.Errorf("Got %v, expected %v", rate, DefaultSampleRate)
	}
}
