package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltmpl "html/template"
	texttmpl "text/template"
)

//go:embed *.tmpl
var files embed.FS

// EmailData is the union of fields the templates may reference.
type EmailData struct {
	Name          string
	AppName       string
	LoginIP       string
	LoginLocation string
	LoginTime     string
	WeeklyFocus   string
	DailyTips     []string
	StepCount     int
}

type Option func(*EmailData)

func WithLogin(ip, location, at string) Option {
	return func(d *EmailData) {
		d.LoginIP = ip
		d.LoginLocation = location
		d.LoginTime = at
	}
}

func WithPlan(focus string, tips []string, steps int) Option {
	return func(d *EmailData) {
		d.WeeklyFocus = focus
		d.DailyTips = tips
		d.StepCount = steps
	}
}

// Render renders the subject, text and HTML parts for the named email from
// the embedded <name>.subject.tmpl / <name>.text.tmpl / <name>.html.tmpl set.
func Render(name string, data EmailData, opts ...Option) (subject, text, html string, err error) {
	if data.AppName == "" {
		data.AppName = "EcoSkin"
	}
	for _, opt := range opts {
		opt(&data)
	}

	subject, err = renderText(name+".subject.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	text, err = renderText(name+".text.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	html, err = renderHTML(name+".html.tmpl", data)
	if err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}

func renderText(file string, data EmailData) (string, error) {
	raw, err := files.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", file, err)
	}
	t, err := texttmpl.New(file).Parse(string(raw))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(file string, data EmailData) (string, error) {
	raw, err := files.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read template %s: %w", file, err)
	}
	t, err := htmltmpl.New(file).Parse(string(raw))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
