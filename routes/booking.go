package routes

import (
	"net/http"
	"time"

	"buildestate-server/models"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// BlockProperty takes a listing off the market (admin). Blocking ends all
// viewings: every appointment on the property is force-completed in the same
// transaction. The cascade is deliberate and not reversible.
func BlockProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&property)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Property not found"})
		return
	}

	before := property

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"is_blocked":   true,
			"is_booked":    true,
			"availability": "Booked",
		}
		if err := tx.Model(&property).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Model(&models.Appointment{}).
			Where("property_id = ?", property.ID).
			Update("status", models.AppointmentCompleted).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	property.IsBlocked = true
	property.IsBooked = true
	property.Availability = "Booked"

	utils.Audit(ctx, models.AuditPropertyBlock, "property", property.ID, before, property)

	ctx.JSON(iris.Map{"success": true, "message": "Property blocked successfully", "property": property})
}

// UnblockProperty returns a listing to the market (admin). Idempotent; the
// appointments completed by a previous block are not restored.
func UnblockProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&property)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Property not found"})
		return
	}

	if !property.IsBlocked {
		ctx.JSON(iris.Map{"success": true, "message": "Property is not blocked", "property": property})
		return
	}

	before := property

	updates := map[string]interface{}{
		"is_blocked":   false,
		"is_booked":    false,
		"availability": "Available",
		"booked_by_id": nil,
		"booking_date": nil,
	}
	if err := storage.DB.Model(&property).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	property.IsBlocked = false
	property.IsBooked = false
	property.Availability = "Available"
	property.BookedByID = nil
	property.BookingDate = nil

	utils.Audit(ctx, models.AuditPropertyUnblock, "property", property.ID, before, property)

	ctx.JSON(iris.Map{"success": true, "message": "Property unblocked successfully", "property": property})
}

// VerifyPropertyPayment confirms the token deposit at property level (admin).
// The property flag and the backing appointment's payment record are updated
// in one transaction so a crash cannot leave them disagreeing.
func VerifyPropertyPayment(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&property)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Property not found"})
		return
	}

	var appointment models.Appointment
	appointmentQuery := storage.DB.
		Where("property_id = ? AND status = ? AND visited = ?",
			property.ID, models.AppointmentConfirmed, true).
		Order("updated_at DESC").Limit(1).Find(&appointment)
	if appointmentQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if appointmentQuery.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "No confirmed and visited appointment found for this property"})
		return
	}

	now := time.Now()
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&property).Update("payment_status", "verified").Error; err != nil {
			return err
		}
		return tx.Model(&appointment).Updates(map[string]interface{}{
			"payment_status":  models.PaymentCompleted,
			"payment_paid_at": now,
		}).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	property.PaymentStatus = "verified"

	utils.Audit(ctx, models.AuditPropertyVerifyPayment, "property", property.ID, nil, iris.Map{
		"paymentStatus": "verified",
		"appointmentId": appointment.ID,
	})

	ctx.JSON(iris.Map{"success": true, "message": "Payment verified successfully", "property": property})
}

// BookProperty records which client a blocked listing is held for (admin).
func BookProperty(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input BookPropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&property)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Property not found"})
		return
	}

	if property.IsBooked && property.BookedByID != nil && *property.BookedByID != input.UserID {
		ctx.StatusCode(http.StatusConflict)
		ctx.JSON(iris.Map{"success": false, "message": "Property is already booked by another user"})
		return
	}

	var user models.User
	userQuery := storage.DB.Where("id = ?", input.UserID).Limit(1).Find(&user)
	if userQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if userQuery.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "User not found"})
		return
	}

	now := time.Now()
	tokenAmount := input.TokenAmount
	if tokenAmount == 0 {
		tokenAmount = property.TokenAmount
	}

	updates := map[string]interface{}{
		"is_booked":    true,
		"booked_by_id": user.ID,
		"booking_date": now,
		"token_amount": tokenAmount,
		"availability": "Booked",
	}
	if err := storage.DB.Model(&property).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	property.IsBooked = true
	property.BookedByID = &user.ID
	property.BookingDate = &now
	property.TokenAmount = tokenAmount
	property.Availability = "Booked"

	utils.Audit(ctx, models.AuditPropertyBook, "property", property.ID, nil, property)

	ctx.JSON(iris.Map{"success": true, "message": "Property booked successfully", "property": property})
}

// CancelBooking releases a held listing (admin). Idempotent.
func CancelBooking(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var property models.Property
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&property)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Property not found"})
		return
	}

	if !property.IsBooked {
		ctx.JSON(iris.Map{"success": true, "message": "Property is not booked", "property": property})
		return
	}

	updates := map[string]interface{}{
		"is_booked":      false,
		"booked_by_id":   nil,
		"booking_date":   nil,
		"token_amount":   0,
		"payment_status": "pending",
		"availability":   "Available",
	}
	if err := storage.DB.Model(&property).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	property.IsBooked = false
	property.BookedByID = nil
	property.BookingDate = nil
	property.TokenAmount = 0
	property.PaymentStatus = "pending"
	property.Availability = "Available"

	utils.Audit(ctx, models.AuditPropertyCancelBooking, "property", property.ID, nil, property)

	ctx.JSON(iris.Map{"success": true, "message": "Booking cancelled successfully", "property": property})
}

// GetBookedProperties lists held listings with the client preloaded (admin).
func GetBookedProperties(ctx iris.Context) {
	var properties []models.Property
	err := storage.DB.Preload("BookedBy").
		Where("is_booked = ?", true).
		Order("booking_date DESC").
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "properties": properties})
}

type BookPropertyInput struct {
	UserID      uint  `json:"userId" validate:"required"`
	TokenAmount int64 `json:"tokenAmount" validate:"gte=0"`
}
