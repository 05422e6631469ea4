package web

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/crimson-sun/airq/internal/collector"
	"github.com/crimson-sun/airq/internal/feature"
	"github.com/crimson-sun/airq/internal/i18n"
	"github.com/crimson-sun/airq/internal/model"
	"github.com/crimson-sun/airq/internal/presentation"
)

type pageText struct {
	Title          string
	Intro          string
	HowTo          string
	Sidebar        string
	Button         string
	Recommendation string
	Improvement    string
	Authors        string
	Footer         []string
}

type fieldData struct {
	Name  string
	Value string
	Min   string
	Max   string
	Step  string
	Error string
}

type pageData struct {
	Lang   string
	Slider bool
	Text   pageText
	Fields []fieldData
	Result *presentation.View
	Error  string
}

// page builds the form. raw holds submitted values to echo back; nil shows
// the defaults.
func (s *Server) page(tag language.Tag, raw map[string]string) *pageData {
	p := i18n.NewPrinter(tag.String())
	slider, isSlider := s.collector.(*collector.Slider)

	howTo := "Enter the value of each variable, then press the prediction button to get the result."
	if isSlider {
		howTo = "Adjust the value of each variable, then press the prediction button to get the result."
	}

	data := &pageData{
		Lang:   tag.String(),
		Slider: isSlider,
		Text: pageText{
			Title:          p.Sprintf("Air Quality Predictive Model"),
			Intro:          p.Sprintf("This application predicts air quality from a set of environmental measurements."),
			HowTo:          p.Sprintf(howTo),
			Sidebar:        p.Sprintf("Select the values of the variables"),
			Button:         p.Sprintf("Predict Air Quality"),
			Recommendation: p.Sprintf("Recommendation"),
			Improvement:    p.Sprintf("How to improve"),
			Footer:         s.footer,
		},
	}
	if s.authors != "" {
		data.Text.Authors = p.Sprintf("Authors: %s", s.authors)
	}

	values := s.collector.Initial()
	for name, v := range raw {
		values[name] = v
	}
	for _, f := range s.collector.Registry().Features() {
		fd := fieldData{Name: f.Name, Value: values[f.Name]}
		if isSlider {
			b := slider.Bounds(f)
			fd.Min = feature.FormatValue(b.Min)
			fd.Max = feature.FormatValue(b.Max)
			fd.Step = feature.FormatValue(b.Step)
		}
		data.Fields = append(data.Fields, fd)
	}
	return data
}

// applyResult attaches a prediction. Slider fields show the clamped values
// actually used; text fields keep what the user typed, with inline errors.
func (d *pageData) applyResult(res model.Result, p *message.Printer) {
	view := res.View
	d.Result = &view

	errs := make(map[string]string, len(res.FieldErrors))
	for _, fe := range res.FieldErrors {
		errs[fe.Feature] = presentation.FieldErrorText(p, fe)
	}
	for i := range d.Fields {
		f := &d.Fields[i]
		f.Error = errs[f.Name]
		if d.Slider && i < len(res.Values) {
			f.Value = feature.FormatValue(res.Values[i].Value)
		}
	}
}
