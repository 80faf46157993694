package services

import (
	"fmt"
	"html/template"
	"strings"
)

// ResetMailTheme brands the reset email per principal type. The layout
// is shared; only subject, title and accent color differ.
type ResetMailTheme struct {
	Subject     string
	Title       string
	AccentColor string
}

var (
	StudentResetTheme = ResetMailTheme{
		Subject:     "Reset your Dojo password",
		Title:       "Dojo Student Portal",
		AccentColor: "#c0392b",
	}
	CoachResetTheme = ResetMailTheme{
		Subject:     "Reset your Dojo coach account password",
		Title:       "Dojo Coach Portal",
		AccentColor: "#2c3e50",
	}
	SuperAdminResetTheme = ResetMailTheme{
		Subject:     "Reset your Dojo admin password",
		Title:       "Dojo Admin Console",
		AccentColor: "#7b1fa2",
	}
)

var resetMailTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background:#f4f4f4;font-family:Arial,Helvetica,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0">
    <tr><td align="center" style="padding:24px;">
      <table width="560" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:8px;overflow:hidden;">
        <tr><td style="background:{{.AccentColor}};padding:20px 32px;">
          <h1 style="color:#ffffff;margin:0;font-size:20px;">{{.Title}}</h1>
        </td></tr>
        <tr><td style="padding:32px;">
          <p style="font-size:15px;color:#333333;">Hi {{.Name}},</p>
          <p style="font-size:15px;color:#333333;">We received a request to reset your password. Click the button below to choose a new one.</p>
          <p style="text-align:center;margin:32px 0;">
            <a href="{{.Link}}" style="background:{{.AccentColor}};color:#ffffff;padding:12px 28px;border-radius:4px;text-decoration:none;font-size:15px;">Reset Password</a>
          </p>
          <p style="font-size:13px;color:#666666;">This link expires in 15 minutes. If you did not request a reset, you can safely ignore this email.</p>
          <p style="font-size:13px;color:#666666;">If the button does not work, copy this link into your browser:<br>{{.Link}}</p>
        </td></tr>
        <tr><td style="padding:16px 32px;background:#fafafa;">
          <p style="font-size:12px;color:#999999;margin:0;">This is an automated message, please do not reply.</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`))

// RenderResetMail produces the text and HTML bodies for a reset email.
// The link points at the shared frontend route; branding comes from the
// theme.
func RenderResetMail(theme ResetMailTheme, name string, resetLink string) (textBody string, htmlBody string, err error) {
	if name == "" {
		name = "there"
	}

	textBody = fmt.Sprintf(
		"Hi %s,\n\n"+
			"We received a request to reset your password. Open the link below to choose a new one:\n\n"+
			"%s\n\n"+
			"This link expires in 15 minutes. If you did not request a reset, you can safely ignore this email.\n",
		name, resetLink)

	var sb strings.Builder
	data := struct {
		Title       string
		AccentColor string
		Name        string
		Link        string
	}{theme.Title, theme.AccentColor, name, resetLink}
	if err := resetMailTmpl.Execute(&sb, data); err != nil {
		return "", "", err
	}
	return textBody, sb.String(), nil
}

// ResetLink builds {frontendURL}/reset-password?token={token}. The route
// is the same for every principal type.
func ResetLink(frontendURL string, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/reset-password?token=" + token
}
