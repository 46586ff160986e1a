package utils

import (
	"cyberacademy/config"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email. Sendgrid is used when an API key is
// configured; otherwise it falls back to plain SMTP.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey != "" {
		return sendViaSendgrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendgrid(to []string, subject string, htmlBody string) error {
	from := mail.NewEmail("Escudo Academy", config.AppConfig.EmailSender)
	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)

	for _, addr := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", addr), "", htmlBody)
		if _, err := client.Send(message); err != nil {
			fmt.Println("Error sending email:", err)
			return err
		}
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.SMTPPassword

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Escudo Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all triggers
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #0B1120; padding: 30px; text-align: center; }
			.header h1 { color: #22D3EE; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #0B1120; line-height: 1.6; }
			.content h2 { color: #0B1120; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #22D3EE; color: #0B1120; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #22D3EE; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ESCUDO ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Escudo Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Escudo Academy"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Escudo Academy</strong>! Your account has been created.</p>
		<p>Browse the catalog and start your first cybersecurity course today. Escudos you earn or buy can be spent on any course in the catalog.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Enrollment confirmation
func SendEnrollmentEmail(email, name, courseTitle string) {
	subject := "Enrolled: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next steps:</strong> open the course and work through its lessons. Your progress is saved automatically.
		</div>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Confirmed", body))
}

// 3. Purchase receipt (escudos path)
func SendPurchaseReceiptEmail(email, name, courseTitle string, escudos uint, balance uint) {
	subject := "Purchase Confirmed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your purchase of <strong>%s</strong> for <strong>%d escudos</strong> is confirmed.</p>
		<p>Remaining balance: <strong>%d escudos</strong>.</p>
	`, name, courseTitle, escudos, balance)

	go SendEmail([]string{email}, subject, getEmailTemplate("Purchase Confirmed", body))
}

// 4. Course approved (to instructor)
func SendCourseApprovedEmail(email, name, courseTitle string) {
	subject := "Course Approved: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Great news! Your course <strong>%s</strong> has been APPROVED.</p>
		<p>Publish it from your dashboard to make it visible in the catalog.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Approved", body))
}

// 5. Course rejected (to instructor)
func SendCourseRejectedEmail(email, name, courseTitle, reason string) {
	subject := "Course Rejected: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately, your course <strong>%s</strong> was rejected.</p>
		<div style="color: #dc3545; font-weight: bold;">Reason: %s</div>
		<p>Please make the necessary changes and submit it again.</p>
	`, name, courseTitle, reason)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Rejected", body))
}

// 6. Course submitted for review (to instructor)
func SendCourseSubmittedEmail(email, name, courseTitle string) {
	subject := "Course Submitted: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your course <strong>%s</strong> has been submitted for review.</p>
		<p>Status: <strong style="color: #FFC107;">PENDING APPROVAL</strong></p>
		<p>You will receive an email once it is approved or rejected.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Submitted", body))
}

// 7. Plan activated
func SendPlanActivatedEmail(email, name, planName string, escudos uint) {
	subject := "Plan Activated: " + planName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> plan is now active and <strong>%d escudos</strong> have been credited to your balance.</p>
	`, name, planName, escudos)

	go SendEmail([]string{email}, subject, getEmailTemplate("Plan Activated", body))
}

// 8. Subscription expiry reminder
func SendSubscriptionExpiryReminder(email, name, planName, expiryStr string) {
	subject := "Your Escudo Academy Plan is Expiring Soon"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> plan expires on <strong>%s</strong>.</p>
		<p>Renew before it lapses to keep receiving your monthly escudos.</p>
		<a href="https://app.escudoacademy.com/plans" class="btn">Renew Now</a>
	`, name, planName, expiryStr)

	go SendEmail([]string{email}, subject, getEmailTemplate("Plan Expiring Soon", body))
}

// 9. Subscription expired
func SendSubscriptionExpiredEmail(email, name, planName string) {
	subject := "Your Escudo Academy Plan Has Expired"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> plan has expired. Escudos already in your balance stay yours.</p>
		<a href="https://app.escudoacademy.com/plans" class="btn">Renew Plan</a>
	`, name, planName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Plan Expired", body))
}

// 10. Escudos adjusted by admin
func SendEscudosAdjustedEmail(email, name string, amount uint, credited bool, newBalance uint) {
	verb := "credited to"
	if !credited {
		verb = "deducted from"
	}
	subject := "Escudos Balance Updated"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p><strong>%d escudos</strong> were %s your account by an administrator.</p>
		<p>New balance: <strong>%d escudos</strong>.</p>
	`, name, amount, verb, newBalance)

	go SendEmail([]string{email}, subject, getEmailTemplate("Balance Updated", body))
}
