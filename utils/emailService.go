package utils

import (
	"fmt"
	"goldloan/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid. A missing API key is
// logged and skipped so that admin creation still succeeds in development.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SendGrid key not configured, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail("Gold Loan Appraisal", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.1);">
					<h2 style="color: #b8860b;">%s</h2>
					%s
					<p style="color: #888; font-size: 12px; margin-top: 30px;">This is an automated message from the Gold Loan Appraisal System.</p>
				</div>
			</body>
		</html>`, title, bodyContent)
}

// SendBranchAdminWelcomeEmail mails login credentials to a newly created
// branch admin
func SendBranchAdminWelcomeEmail(email, name, bankName, branchName, password string) {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>A branch administrator account has been created for you at <b>%s</b>, branch <b>%s</b>.</p>
		<p>Login email: <b>%s</b><br/>Temporary password: <b>%s</b></p>
		<p>Please change your password after your first login.</p>`,
		name, bankName, branchName, email, password)

	if err := SendEmail(email, name, "Your Branch Admin Account", getEmailTemplate("Welcome to Gold Loan Appraisal", body)); err != nil {
		log.Printf("Failed to send branch admin welcome email to %s: %v", email, err)
	}
}

// SendPasswordResetEmail mails a single-use reset link to an admin
func SendPasswordResetEmail(email, resetLink, adminType string) {
	body := fmt.Sprintf(`
		<p>Hello,</p>
		<p>You have requested to reset your %s password for the Gold Loan Appraisal System.</p>
		<p><a href="%s">Reset your password</a></p>
		<p>This link will expire in 10 minutes. If you did not request this reset, ignore this email.</p>`,
		adminType, resetLink)

	if err := SendEmail(email, "", "Password Reset Request", getEmailTemplate("Password Reset Request", body)); err != nil {
		log.Printf("Failed to send password reset email to %s: %v", email, err)
	}
}

// SendBankAdminWelcomeEmail mails login credentials to a newly created bank
// admin
func SendBankAdminWelcomeEmail(email, name, bankName, password string) {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>A bank administrator account has been created for you at <b>%s</b>.</p>
		<p>Login email: <b>%s</b><br/>Temporary password: <b>%s</b></p>
		<p>Please change your password after your first login.</p>`,
		name, bankName, email, password)

	if err := SendEmail(email, name, "Your Bank Admin Account", getEmailTemplate("Welcome to Gold Loan Appraisal", body)); err != nil {
		log.Printf("Failed to send bank admin welcome email to %s: %v", email, err)
	}
}
