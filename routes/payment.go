package routes

import (
	"fmt"
	"net/http"
	"time"

	"buildestate-server/models"
	"buildestate-server/services"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
)

// CreateDepositOrder opens a gateway order for the token deposit on a visited
// appointment. The deposit is a percentage of the listing price, capped.
func CreateDepositOrder(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateDepositOrderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var appointment models.Appointment
	query := storage.DB.Preload("Property").Where("id = ?", input.AppointmentID).Limit(1).Find(&appointment)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Appointment not found"})
		return
	}

	if appointment.UserID != userID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only pay for your own appointments.", ctx)
		return
	}

	if !appointment.Visited {
		utils.CreateError(iris.StatusBadRequest, "Invalid State",
			"Complete the property visit before paying the token amount.", ctx)
		return
	}

	if appointment.Payment.Status == models.PaymentCompleted {
		utils.CreateError(iris.StatusBadRequest, "Invalid State", "Payment already completed.", ctx)
		return
	}

	amount := services.TokenAmount(appointment.Property.Price)
	receipt := fmt.Sprintf("appt_%d", appointment.ID)

	orderID, orderErr := payments.CreateOrder(amount, receipt)
	if orderErr != nil {
		ctx.StatusCode(http.StatusBadGateway)
		ctx.JSON(iris.Map{"success": false, "message": "Failed to create payment order"})
		return
	}

	updates := map[string]interface{}{
		"payment_order_id": orderID,
		"payment_amount":   amount,
		"payment_status":   models.PaymentPending,
	}
	if err := storage.DB.Model(&appointment).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"order": iris.Map{
			"id":       orderID,
			"amount":   amount,
			"currency": "INR",
			"keyId":    cfg.RazorpayKeyID,
		},
	})
}

// VerifyDepositPayment checks the gateway signature for a deposit payment.
// On a mismatch nothing is written; the stored order stays pending.
func VerifyDepositPayment(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input VerifyDepositPaymentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var appointment models.Appointment
	query := storage.DB.Preload("Property").Preload("User").
		Where("id = ?", input.AppointmentID).Limit(1).Find(&appointment)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Appointment not found"})
		return
	}

	if appointment.UserID != userID {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only verify your own payments.", ctx)
		return
	}

	if appointment.Payment.OrderID == "" || appointment.Payment.OrderID != input.OrderID {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Order does not match this appointment.", ctx)
		return
	}

	if appointment.Payment.Status == models.PaymentCompleted {
		ctx.JSON(iris.Map{"success": true, "message": "Payment already verified"})
		return
	}

	if !payments.VerifySignature(input.OrderID, input.PaymentID, input.Signature) {
		utils.CreateError(iris.StatusBadRequest, "Payment Error", "Payment signature verification failed.", ctx)
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"payment_payment_id": input.PaymentID,
		"payment_signature":  input.Signature,
		"payment_status":     models.PaymentCompleted,
		"payment_paid_at":    now,
	}
	if err := storage.DB.Model(&appointment).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	appointment.Payment.PaymentID = input.PaymentID
	appointment.Payment.Status = models.PaymentCompleted
	appointment.Payment.PaidAt = &now

	services.QueueEmail(appointment.User.Email,
		"Payment Confirmation - BuildEstate",
		services.PaymentConfirmedEmail(appointment.Property.Title, appointment.Payment.Amount, input.PaymentID))
	services.QueueEmail(cfg.AdminEmail,
		"Token Payment Received - BuildEstate",
		services.AdminPaymentEmail(appointment.Property.Title, appointment.User.Name, appointment.Payment.Amount))

	utils.Audit(ctx, models.AuditPaymentVerify, "appointment", appointment.ID, nil, appointment.Payment)

	ctx.JSON(iris.Map{"success": true, "message": "Payment verified successfully", "payment": appointment.Payment})
}

type CreateDepositOrderInput struct {
	AppointmentID uint `json:"appointmentId" validate:"required"`
}

type VerifyDepositPaymentInput struct {
	AppointmentID uint   `json:"appointmentId" validate:"required"`
	OrderID       string `json:"razorpay_order_id" validate:"required"`
	PaymentID     string `json:"razorpay_payment_id" validate:"required"`
	Signature     string `json:"razorpay_signature" validate:"required"`
}
