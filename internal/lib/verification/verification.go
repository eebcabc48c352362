package verification

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"staff_portal/internal/models"
)

const (
	VerificationSubject = "Please verify your account"
	ResetSubject        = "Password Reset"
)

func VerificationLink(baseURL, token, email string) string {
	return link(baseURL, "/api/verify", token, email)
}

func ResetLink(baseURL, token, email string) string {
	return link(baseURL, "/api/reset-password.html", token, email)
}

func VerificationMail(baseURL, email, token string) models.Mail {
	verifyLink := VerificationLink(baseURL, token, email)

	return models.Mail{
		To:      email,
		Subject: VerificationSubject,
		Body: fmt.Sprintf(`
      <h2>Account Verification</h2>
      <p>Click the link below to verify your account:</p>
      <a href="%s">Verify my account</a>
    `, html.EscapeString(verifyLink)),
	}
}

func ResetMail(baseURL, email, token string) models.Mail {
	resetLink := ResetLink(baseURL, token, email)

	return models.Mail{
		To:      email,
		Subject: ResetSubject,
		Body: fmt.Sprintf(`
      <h2>Password Reset</h2>
      <p>Click the link below to reset your password:</p>
      <a href="%s">Reset Password</a>
    `, html.EscapeString(resetLink)),
	}
}

func link(baseURL, path, token, email string) string {
	return fmt.Sprintf("%s%s?token=%s&email=%s",
		strings.TrimRight(baseURL, "/"),
		path,
		url.QueryEscape(token),
		url.QueryEscape(email),
	)
}
