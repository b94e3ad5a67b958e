package mailer

import "fmt"

func VerifyEmailBody(baseURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", baseURL, token)
	return "Verify your email address",
		"Welcome! Confirm your email address by opening the link below:\n\n" + link +
			"\n\nThe link expires in 24 hours. If you did not sign up, ignore this message.\n"
}

func PasswordResetBody(baseURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/reset-password?token=%s", baseURL, token)
	return "Reset your password",
		"A password reset was requested for your account. Open the link below to choose a new password:\n\n" + link +
			"\n\nThe link expires in 1 hour. If you did not request this, ignore this message.\n"
}

func StaffInviteBody(baseURL, token string) (subject, body string) {
	link := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s", baseURL, token)
	return "You have been added to a sales team",
		"An account was created for you. Confirm your email address to activate it:\n\n" + link + "\n"
}
