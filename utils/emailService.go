package utils

import (
	"elearn/config"
	"fmt"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learnhub <%s>\r\n", from)
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

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A2238; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2238; line-height: 1.6; }
			.content h2 { color: #1A2238; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #FF6A3D; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Learnhub. All rights reserved.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendOTPEmail sends the verification code mail
func SendOTPEmail(otp, email string) error {
	body := fmt.Sprintf(`
		<p>Your One Time Password (OTP) is:</p>
		<div class="info-box"><h1 style="margin:0;">%s</h1></div>
		<p>Do not share this OTP with anyone. It expires in 10 minutes.</p>
	`, otp)

	return SendEmail([]string{email}, "OTP Verification Code - Learnhub", getEmailTemplate("Verify your account", body))
}

// SendPurchaseEmail sends a receipt after a completed checkout
func SendPurchaseEmail(email, userName string, courseTitles []string, totalPaid float64, discountCode string) error {
	saved := ""
	if discountCode != "" {
		saved = fmt.Sprintf(`<p>Discount code <strong>%s</strong> was applied to this order.</p>`, discountCode)
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for your purchase! You now have access to:</p>
		<div class="info-box">%s</div>
		%s
		<p>Total paid: <strong>%.2f</strong></p>
		<p>Happy learning!</p>
	`, userName, strings.Join(courseTitles, "<br>"), saved, totalPaid)

	return SendEmail([]string{email}, "Purchase Confirmation - Learnhub", getEmailTemplate("Purchase Successful", body))
}

// SendEnrollmentEmail notifies a user that course access is active
func SendEnrollmentEmail(email, userName, courseName string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have been enrolled in:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>You can now access all the course content and start learning.</p>
	`, userName, courseName)

	return SendEmail([]string{email}, "Course Enrollment Confirmation - Learnhub", getEmailTemplate("Enrollment Successful", body))
}
