// Copyright ConvoGenius and each contributor.
// SPDX-License-Identifier: MIT

// Package email renders and sends post-meeting notification emails.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

// RenderedEmail holds both HTML and text versions of a rendered email
type RenderedEmail struct {
	HTML string
	Text string
}

// TemplateSet holds HTML and text versions of a template
type TemplateSet struct {
	HTML *template.Template
	Text *template.Template
}

// Templates holds all loaded email templates
type Templates struct {
	SummaryNotification TemplateSet
}

// templateConfig defines a template to be loaded
type templateConfig struct {
	name string
	path string
}

// loadTemplates parses all embedded templates with the shared function map.
func loadTemplates() (Templates, error) {
	templateConfigs := map[string]templateConfig{
		"summaryNotificationHTML": {"meeting_summary_notification.html", "templates/meeting_summary_notification.html"},
		"summaryNotificationText": {"meeting_summary_notification.txt", "templates/meeting_summary_notification.txt"},
	}

	loaded := make(map[string]*template.Template)
	for key, cfg := range templateConfigs {
		tmpl, err := loadTemplate(cfg)
		if err != nil {
			return Templates{}, err
		}
		loaded[key] = tmpl
	}

	return Templates{
		SummaryNotification: TemplateSet{
			HTML: loaded["summaryNotificationHTML"],
			Text: loaded["summaryNotificationText"],
		},
	}, nil
}

// loadTemplate loads a single template with the shared function map
func loadTemplate(config templateConfig) (*template.Template, error) {
	tmpl, err := template.New(config.name).Funcs(template.FuncMap{
		"formatDate":         formatDate,
		"newLineToBreakLine": newLineToBreakLine,
	}).ParseFS(templateFS, config.path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s template: %w", config.name, err)
	}
	return tmpl, nil
}

// renderTemplate renders any template with the provided data
func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatDate formats a meeting date for display in emails
func formatDate(t time.Time) string {
	// Format: Wednesday, September 15, 2026
	return t.Format("Monday, January 2, 2006")
}

// newLineToBreakLine converts newlines to HTML break tags for proper email formatting
func newLineToBreakLine(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	replaced := strings.ReplaceAll(escaped, "\n", "<br>")
	// Return as template.HTML to prevent double escaping
	return template.HTML(replaced)
}
