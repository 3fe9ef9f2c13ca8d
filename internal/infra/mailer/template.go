package mailer

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Template holds the subject and body templates of one mail kind.
// Both use text/template syntax.
type Template struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

// Templates is the set of mail templates the dispatcher renders.
type Templates struct {
	ArticlePublished Template `yaml:"article_published"`
	PasswordReset    Template `yaml:"password_reset"`
}

// DefaultTemplates returns the built-in templates used when no template file
// is configured.
func DefaultTemplates() Templates {
	return Templates{
		ArticlePublished: Template{
			Subject: "New article: {{.Title}}",
			Body: "Hello {{.Reader}},\n\n" +
				"{{.Author}} just published \"{{.Title}}\"{{if .Publisher}} at {{.Publisher}}{{end}}.\n\n" +
				"{{.Summary}}\n",
		},
		PasswordReset: Template{
			Subject: "Password reset request",
			Body: "Hello {{.Reader}},\n\n" +
				"Use this token to reset your password within 24 hours: {{.Token}}\n\n" +
				"If you did not request a reset, ignore this message.\n",
		},
	}
}

// LoadTemplates reads templates from the YAML file at path, falling back to
// the defaults for any template the file leaves empty. An empty path returns
// the defaults.
func LoadTemplates(path string) (Templates, error) {
	templates := DefaultTemplates()
	if path == "" {
		return templates, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return templates, fmt.Errorf("read template file: %w", err)
	}
	var loaded Templates
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return templates, fmt.Errorf("parse template file: %w", err)
	}

	if loaded.ArticlePublished.Subject != "" {
		templates.ArticlePublished.Subject = loaded.ArticlePublished.Subject
	}
	if loaded.ArticlePublished.Body != "" {
		templates.ArticlePublished.Body = loaded.ArticlePublished.Body
	}
	if loaded.PasswordReset.Subject != "" {
		templates.PasswordReset.Subject = loaded.PasswordReset.Subject
	}
	if loaded.PasswordReset.Body != "" {
		templates.PasswordReset.Body = loaded.PasswordReset.Body
	}
	return templates, nil
}

// Render executes the template against data and returns the subject and body.
func (t Template) Render(data any) (subject, body string, err error) {
	subject, err = renderOne("subject", t.Subject, data)
	if err != nil {
		return "", "", err
	}
	body, err = renderOne("body", t.Body, data)
	if err != nil {
		return "", "", err
	}
	return subject, body, nil
}

func renderOne(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse %s template: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", name, err)
	}
	return buf.String(), nil
}
