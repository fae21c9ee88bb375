package email

import (
	"bytes"
	"html/template"
)

// Moderation outcome templates. Kept inline: two small templates do not
// justify a template directory and loader.

var reviewApprovedTmpl = template.Must(template.New("review_approved").Parse(`
<h2>Your review has been published</h2>
<p>Hi {{.Name}},</p>
<p>Your review of <strong>{{.CompanyName}}</strong> passed moderation and is now visible to other users.</p>
<p>Thank you for contributing.</p>
`))

var reviewRejectedTmpl = template.Must(template.New("review_rejected").Parse(`
<h2>Your review was not published</h2>
<p>Hi {{.Name}},</p>
<p>Your review of <strong>{{.CompanyName}}</strong> did not pass moderation.</p>
{{if .Notes}}<p>Moderator notes: {{.Notes}}</p>{{end}}
<p>You can edit your review and it will be re-queued for moderation.</p>
`))

type ModerationMailData struct {
	Name        string
	CompanyName string
	Notes       string
}

func RenderReviewApproved(data ModerationMailData) (string, error) {
	return render(reviewApprovedTmpl, data)
}

func RenderReviewRejected(data ModerationMailData) (string, error) {
	return render(reviewRejectedTmpl, data)
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
