// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mailer

import (
	"bytes"
	htmltemplate "html/template"
	texttemplate "text/template"
)

// Notification is one of ContactNotification, OrderNotification or
// SubscribeNotification.
type Notification interface {
	kind() string
	replyTo() string
	render() (subject, html, text string, err error)
}

// ContactNotification is a general contact form submission.
type ContactNotification struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// OrderNotification is a service order request.
type OrderNotification struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
	Service string
	Price   string
}

// SubscribeNotification is a newsletter sign-up.
type SubscribeNotification struct {
	Email string
}

// typedTemplate pairs an HTML body with a plain-text alternative.
type typedTemplate[T any] struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func mustTemplate[T any](name, html, text string) *typedTemplate[T] {
	return &typedTemplate[T]{
		html: htmltemplate.Must(htmltemplate.New(name + "_html").Parse(html)),
		text: texttemplate.Must(texttemplate.New(name + "_text").Parse(text)),
	}
}

func (t *typedTemplate[T]) render(data T) (string, string, error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := t.html.Execute(&htmlBuf, data); err != nil {
		return "", "", err
	}
	if err := t.text.Execute(&textBuf, data); err != nil {
		return "", "", err
	}
	return htmlBuf.String(), textBuf.String(), nil
}

const layoutStart = `<!DOCTYPE html><html><body style="font-family:Arial,sans-serif;color:#222">`
const layoutEnd = `</body></html>`

var contactTemplate = mustTemplate[ContactNotification]("contact",
	layoutStart+`<h2>New Contact Form Submission</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p style="white-space:pre-wrap">{{.Message}}</p>`+layoutEnd,
	`New Contact Form Submission

Name: {{.Name}}
Email: {{.Email}}
{{if .Phone}}Phone: {{.Phone}}
{{end}}Subject: {{.Subject}}

{{.Message}}
`)

var orderTemplate = mustTemplate[OrderNotification]("order",
	layoutStart+`<h2>New Order</h2>
<p><strong>Service:</strong> {{.Service}}</p>
{{if .Price}}<p><strong>Price:</strong> {{.Price}}</p>{{end}}
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
{{if .Phone}}<p><strong>Phone:</strong> {{.Phone}}</p>{{end}}
{{if .Subject}}<p><strong>Subject:</strong> {{.Subject}}</p>{{end}}
<p><strong>Details:</strong></p>
<p style="white-space:pre-wrap">{{.Message}}</p>`+layoutEnd,
	`New Order

Service: {{.Service}}
{{if .Price}}Price: {{.Price}}
{{end}}Name: {{.Name}}
Email: {{.Email}}
{{if .Phone}}Phone: {{.Phone}}
{{end}}
{{.Message}}
`)

var subscribeTemplate = mustTemplate[SubscribeNotification]("subscribe",
	layoutStart+`<h2>New Subscriber</h2>
<p><strong>Email:</strong> {{.Email}}</p>`+layoutEnd,
	`New Subscriber

Email: {{.Email}}
`)

func (ContactNotification) kind() string   { return "contact" }
func (OrderNotification) kind() string     { return "order" }
func (SubscribeNotification) kind() string { return "subscribe" }

func (n ContactNotification) replyTo() string { return n.Email }
func (n OrderNotification) replyTo() string   { return n.Email }
func (SubscribeNotification) replyTo() string { return "" }

func (n ContactNotification) render() (string, string, string, error) {
	html, text, err := contactTemplate.render(n)
	return "New Contact Form Submission: " + n.Subject, html, text, err
}

func (n OrderNotification) render() (string, string, string, error) {
	html, text, err := orderTemplate.render(n)
	return "New Order: " + n.Service, html, text, err
}

func (n SubscribeNotification) render() (string, string, string, error) {
	html, text, err := subscribeTemplate.render(n)
	return "New Subscriber", html, text, err
}
