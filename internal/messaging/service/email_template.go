package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const emailFooter = "You are receiving this because you enquired about a property with us."

type baseEmailData struct {
	Title   string
	Heading string
	Footer  string
}

type messageEmailData struct {
	baseEmailData
	LeadName   string
	Paragraphs []string
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderMessageEmail(subject, leadName, text string) (string, error) {
	return renderEmailTemplate("message.html", messageEmailData{
		baseEmailData: baseEmailData{Title: subject, Heading: subject, Footer: emailFooter},
		LeadName:      orDefault(leadName, "Valued Client"),
		Paragraphs:    paragraphs(text),
	})
}

func paragraphs(text string) []string {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
