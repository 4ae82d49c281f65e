package mailer

import (
	"fmt"
	"html"
	"net/url"
)

// PasswordReset builds the reset email. path is the frontend route the link
// points at, e.g. "/reset-password".
func PasswordReset(frontendURL, path, name, email, token string) Message {
	link := fmt.Sprintf("%s%s?token=%s&email=%s", frontendURL, path, url.QueryEscape(token), url.QueryEscape(email))

	body := fmt.Sprintf(`<p>Hello %s,</p>
<p>You asked to reset your password. Click the link below to set a new password. This link will expire in 1 hour.</p>
<p><a href="%s">Reset your password</a></p>
<p>If you didn't request this, ignore this email.</p>`, html.EscapeString(name), html.EscapeString(link))

	return Message{
		To:      email,
		Subject: "Reset your password",
		HTML:    body,
		Text:    "Reset your password: " + link,
	}
}
