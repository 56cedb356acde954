package services

import (
	"fmt"
	"time"
)

// Transactional email bodies. Kept as small HTML fragments; layout lives in
// the mail client, not here.

func WelcomeEmail(name, otp string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>Welcome to BuildEstate, %s!</h2>
		<p>Your account has been created. Use the code below to verify your email address:</p>
		<h1 style="letter-spacing: 4px;">%s</h1>
		<p>The code expires in 10 minutes.</p>
	</div>`, name, otp)
}

func PasswordResetEmail(resetURL string) string {
	return fmt.Sprintf(`
	<p>It looks like you forgot your password.
	If you did, please click the link below to reset it.
	If you did not, disregard this email. Please update your password
	within 10 minutes, otherwise you will have to repeat this
	process. <a href="%s">Click to Reset Password</a>
	</p><br />`, resetURL)
}

func SchedulingEmail(propertyTitle string, date time.Time, timeSlot, notes string) string {
	extra := ""
	if notes != "" {
		extra = "<li>Notes: " + notes + "</li>"
	}
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>Viewing Scheduled</h2>
		<p>Your viewing request has been received:</p>
		<ul>
			<li>Property: %s</li>
			<li>Date: %s</li>
			<li>Time: %s</li>
			%s
		</ul>
		<p>We will confirm your appointment shortly.</p>
	</div>`, propertyTitle, date.Format("02 Jan 2006"), timeSlot, extra)
}

func AdminViewingRequestEmail(propertyTitle, clientName, clientEmail string, date time.Time, timeSlot, notes string) string {
	extra := ""
	if notes != "" {
		extra = "<li>Notes: " + notes + "</li>"
	}
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>New Viewing Request</h2>
		<p>A new viewing request has been submitted:</p>
		<ul>
			<li>Property: %s</li>
			<li>Client: %s (%s)</li>
			<li>Date: %s</li>
			<li>Time: %s</li>
			%s
		</ul>
		<p>Please log in to the admin panel to confirm or reject this request.</p>
	</div>`, propertyTitle, clientName, clientEmail, date.Format("02 Jan 2006"), timeSlot, extra)
}

func StatusEmail(propertyTitle, status string, date time.Time, timeSlot string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>Appointment %s</h2>
		<p>Your viewing appointment for <strong>%s</strong> is now <strong>%s</strong>.</p>
		<p><strong>Date:</strong> %s</p>
		<p><strong>Time:</strong> %s</p>
	</div>`, status, propertyTitle, status, date.Format("02 Jan 2006"), timeSlot)
}

func ConfirmedNextStepsEmail(propertyTitle string, date time.Time, timeSlot string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>Your Viewing Appointment is Confirmed!</h2>
		<p>Here's what you need to know:</p>
		<ul>
			<li>Property: %s</li>
			<li>Date: %s</li>
			<li>Time: %s</li>
		</ul>
		<h3>Preparation Tips:</h3>
		<ul>
			<li>Arrive 5-10 minutes early</li>
			<li>Bring a valid ID</li>
			<li>Prepare any questions you have about the property</li>
		</ul>
		<p>We look forward to meeting you!</p>
	</div>`, propertyTitle, date.Format("02 Jan 2006"), timeSlot)
}

func CancellationEmail(propertyTitle string, date time.Time, timeSlot, reason string) string {
	extra := ""
	if reason != "" {
		extra = "<p><strong>Reason:</strong> " + reason + "</p>"
	}
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>Appointment Cancelled</h2>
		<p>Your viewing appointment for <strong>%s</strong> has been cancelled.</p>
		<p><strong>Date:</strong> %s</p>
		<p><strong>Time:</strong> %s</p>
		%s
		<p>You can schedule another viewing at any time.</p>
	</div>`, propertyTitle, date.Format("02 Jan 2006"), timeSlot, extra)
}

func MeetingLinkEmail(propertyTitle string, date time.Time, timeSlot, meetingLink string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>Meeting Link Updated</h2>
		<p>Your viewing appointment for <strong>%s</strong> has been updated with a meeting link.</p>
		<p><strong>Date:</strong> %s</p>
		<p><strong>Time:</strong> %s</p>
		<p><a href="%s">Join Meeting</a></p>
	</div>`, propertyTitle, date.Format("02 Jan 2006"), timeSlot, meetingLink)
}

func PaymentConfirmedEmail(propertyTitle string, amount int64, paymentID string) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>Payment Successful!</h2>
		<p><strong>Property:</strong> %s</p>
		<p><strong>Amount Paid:</strong> ₹%.2f</p>
		<p><strong>Payment ID:</strong> %s</p>
		<p>Our team will contact you soon with next steps.</p>
	</div>`, propertyTitle, float64(amount)/100, paymentID)
}

func AdminPaymentEmail(propertyTitle, clientName string, amount int64) string {
	return fmt.Sprintf(`
	<div style="font-family: Arial, sans-serif; padding: 20px;">
		<h2>New Token Payment Received</h2>
		<p><strong>Property:</strong> %s</p>
		<p><strong>Client:</strong> %s</p>
		<p><strong>Amount:</strong> ₹%.2f</p>
		<p>Please verify the payment and contact the client to proceed with next steps.</p>
	</div>`, propertyTitle, clientName, float64(amount)/100)
}
