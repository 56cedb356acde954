package routes

import (
	"net/http"
	"strings"
	"time"

	"buildestate-server/models"
	"buildestate-server/services"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

// appointmentTransitions is the only source of truth for status changes.
// pending can be confirmed or cancelled, confirmed can complete or cancel,
// cancelled and completed are terminal.
var appointmentTransitions = map[string][]string{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
	models.AppointmentCancelled: {},
	models.AppointmentCompleted: {},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to string) bool {
	next, ok := appointmentTransitions[from]
	if !ok {
		return false
	}
	return slices.Contains(next, to)
}

var meetingPlatforms = []string{"zoom", "google-meet", "teams", "other"}

// ScheduleViewing creates a pending appointment for the authenticated user and
// notifies both the client and the back office.
func ScheduleViewing(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input ScheduleViewingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	date, dateErr := time.Parse("2006-01-02", input.Date)
	if dateErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid date, expected YYYY-MM-DD.", ctx)
		return
	}
	if date.Before(time.Now().Truncate(24 * time.Hour)) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Viewing date must be in the future.", ctx)
		return
	}

	var property models.Property
	propertyQuery := storage.DB.Where("id = ?", input.PropertyID).Limit(1).Find(&property)
	if propertyQuery.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if propertyQuery.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Property not found"})
		return
	}
	if property.IsBlocked {
		utils.CreateError(iris.StatusBadRequest, "Unavailable", "This property is not available for viewings.", ctx)
		return
	}

	// Slot conflict: any non-cancelled appointment on the same property, date
	// and time blocks the slot.
	var conflicts int64
	countErr := storage.DB.Model(&models.Appointment{}).
		Where("property_id = ? AND date = ? AND time = ? AND status <> ?",
			property.ID, date, input.Time, models.AppointmentCancelled).
		Count(&conflicts).Error
	if countErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if conflicts > 0 {
		ctx.StatusCode(http.StatusConflict)
		ctx.JSON(iris.Map{"success": false, "message": "This time slot is already booked"})
		return
	}

	var user models.User
	storage.DB.Where("id = ?", userID).Limit(1).Find(&user)

	appointment := models.Appointment{
		PropertyID: property.ID,
		UserID:     userID,
		Date:       date,
		Time:       input.Time,
		Status:     models.AppointmentPending,
		Notes:      input.Notes,
	}
	if err := storage.DB.Create(&appointment).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	services.QueueEmail(user.Email,
		"Viewing Request Received - BuildEstate",
		services.SchedulingEmail(property.Title, date, input.Time, input.Notes))
	services.QueueEmail(cfg.AdminEmail,
		"New Viewing Request - BuildEstate",
		services.AdminViewingRequestEmail(property.Title, user.Name, user.Email, date, input.Time, input.Notes))

	utils.Audit(ctx, models.AuditAppointmentSchedule, "appointment", appointment.ID, nil, appointment)

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Viewing scheduled successfully", "appointment": appointment})
}

// upcomingFilter selects appointments the user still has to act on: pending
// or confirmed viewings that have not happened yet, plus visited-but-unpaid
// confirmed viewings regardless of date. The second branch keeps a "pay now"
// item on the list until the deposit clears.
func upcomingFilter(today time.Time) (string, []interface{}) {
	return "(status IN ? AND date >= ?) OR (status = ? AND visited = ? AND payment_status <> ?)",
		[]interface{}{
			[]string{models.AppointmentPending, models.AppointmentConfirmed}, today,
			models.AppointmentConfirmed, true, models.PaymentCompleted,
		}
}

// pastFilter selects appointments that are over: terminal states, or paid
// viewings whose date has passed. A past-dated but unpaid appointment is NOT
// past; it still surfaces in upcoming.
func pastFilter(today time.Time) (string, []interface{}) {
	return "status IN ? OR (date < ? AND payment_status = ?)",
		[]interface{}{
			[]string{models.AppointmentCompleted, models.AppointmentCancelled},
			today, models.PaymentCompleted,
		}
}

// GetAppointmentsByUser lists the caller's appointments. The optional filter
// query param accepts upcoming or past.
func GetAppointmentsByUser(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	filter := ctx.URLParamDefault("filter", "")

	query := storage.DB.Preload("Property").Where("user_id = ?", userID)

	today := time.Now().Truncate(24 * time.Hour)
	switch filter {
	case "upcoming":
		cond, args := upcomingFilter(today)
		query = query.Where(cond, args...).Order("date ASC, time ASC")
	case "past":
		cond, args := pastFilter(today)
		query = query.Where(cond, args...).Order("date DESC, time DESC")
	default:
		query = query.Order("date DESC, time DESC")
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "appointments": appointments})
}

// CancelAppointment lets the owner cancel their own appointment. Cancelling an
// already cancelled appointment is a no-op success.
func CancelAppointment(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var input CancelAppointmentInput
	ctx.ReadJSON(&input) // body optional, reason only

	var appointment models.Appointment
	query := storage.DB.Preload("Property").Preload("User").Where("id = ?", id).Limit(1).Find(&appointment)
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
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only cancel your own appointments.", ctx)
		return
	}

	if appointment.Status == models.AppointmentCancelled {
		ctx.JSON(iris.Map{"success": true, "message": "Appointment already cancelled", "appointment": appointment})
		return
	}

	if !CanTransition(appointment.Status, models.AppointmentCancelled) {
		utils.CreateError(iris.StatusBadRequest, "Invalid Transition",
			"Cannot cancel a "+appointment.Status+" appointment.", ctx)
		return
	}

	before := appointment

	updates := map[string]interface{}{
		"status":        models.AppointmentCancelled,
		"cancel_reason": input.Reason,
	}
	if err := storage.DB.Model(&appointment).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	appointment.Status = models.AppointmentCancelled
	appointment.CancelReason = input.Reason

	services.QueueEmail(appointment.User.Email,
		"Appointment Cancelled - BuildEstate",
		services.CancellationEmail(appointment.Property.Title, appointment.Date, appointment.Time, input.Reason))

	utils.Audit(ctx, models.AuditAppointmentCancel, "appointment", appointment.ID, before, appointment)

	ctx.JSON(iris.Map{"success": true, "message": "Appointment cancelled successfully", "appointment": appointment})
}

// MarkAppointmentAsVisited flags a confirmed appointment as visited, which
// unlocks the deposit payment. Owner only.
func MarkAppointmentAsVisited(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var appointment models.Appointment
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&appointment)
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
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only update your own appointments.", ctx)
		return
	}

	if appointment.Status != models.AppointmentConfirmed {
		utils.CreateError(iris.StatusBadRequest, "Invalid State",
			"Only confirmed appointments can be marked as visited.", ctx)
		return
	}

	if err := storage.DB.Model(&appointment).Update("visited", true).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	appointment.Visited = true

	ctx.JSON(iris.Map{"success": true, "message": "Appointment marked as visited", "appointment": appointment})
}

// SubmitAppointmentFeedback records the visitor's rating and comment and
// moves a confirmed appointment to completed.
func SubmitAppointmentFeedback(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id := ctx.Params().Get("id")

	var input AppointmentFeedbackInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var appointment models.Appointment
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&appointment)
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
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only review your own appointments.", ctx)
		return
	}

	if !CanTransition(appointment.Status, models.AppointmentCompleted) {
		utils.CreateError(iris.StatusBadRequest, "Invalid State",
			"Feedback can only be left on confirmed appointments.", ctx)
		return
	}

	updates := map[string]interface{}{
		"status":           models.AppointmentCompleted,
		"feedback_rating":  input.Rating,
		"feedback_comment": input.Comment,
	}
	if err := storage.DB.Model(&appointment).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Feedback submitted successfully"})
}

// UpdateAppointmentStatus moves an appointment through the lifecycle (admin).
// Illegal transitions are rejected before any write happens.
func UpdateAppointmentStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateAppointmentStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}
	status := strings.ToLower(input.Status)

	var appointment models.Appointment
	query := storage.DB.Preload("Property").Preload("User").Where("id = ?", id).Limit(1).Find(&appointment)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Appointment not found"})
		return
	}

	if status == appointment.Status {
		ctx.JSON(iris.Map{"success": true, "message": "Appointment already " + status, "appointment": appointment})
		return
	}

	if !CanTransition(appointment.Status, status) {
		utils.CreateError(iris.StatusBadRequest, "Invalid Transition",
			"Cannot move appointment from "+appointment.Status+" to "+status+".", ctx)
		return
	}

	before := appointment

	updates := map[string]interface{}{"status": status}
	if status == models.AppointmentCancelled {
		updates["cancel_reason"] = input.Reason
	}
	if err := storage.DB.Model(&appointment).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	appointment.Status = status

	switch status {
	case models.AppointmentConfirmed:
		services.QueueEmail(appointment.User.Email,
			"Appointment Confirmed - BuildEstate",
			services.StatusEmail(appointment.Property.Title, "confirmed", appointment.Date, appointment.Time))
		services.QueueEmail(appointment.User.Email,
			"Your Viewing: What to Expect - BuildEstate",
			services.ConfirmedNextStepsEmail(appointment.Property.Title, appointment.Date, appointment.Time))
	case models.AppointmentCancelled:
		services.QueueEmail(appointment.User.Email,
			"Appointment Cancelled - BuildEstate",
			services.CancellationEmail(appointment.Property.Title, appointment.Date, appointment.Time, input.Reason))
	default:
		services.QueueEmail(appointment.User.Email,
			"Appointment Update - BuildEstate",
			services.StatusEmail(appointment.Property.Title, status, appointment.Date, appointment.Time))
	}

	utils.Audit(ctx, models.AuditAppointmentStatus, "appointment", appointment.ID, before, appointment)

	ctx.JSON(iris.Map{"success": true, "message": "Appointment status updated", "appointment": appointment})
}

// UpdateMeetingLink attaches a virtual meeting link to an appointment (admin)
// and notifies the client.
func UpdateMeetingLink(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateMeetingLinkInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	platform := strings.ToLower(input.MeetingPlatform)
	if platform == "" {
		platform = "other"
	}
	if !slices.Contains(meetingPlatforms, platform) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Unknown meeting platform.", ctx)
		return
	}

	var appointment models.Appointment
	query := storage.DB.Preload("Property").Preload("User").Where("id = ?", id).Limit(1).Find(&appointment)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Appointment not found"})
		return
	}

	updates := map[string]interface{}{
		"meeting_link":     input.MeetingLink,
		"meeting_platform": platform,
	}
	if err := storage.DB.Model(&appointment).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	appointment.MeetingLink = input.MeetingLink
	appointment.MeetingPlatform = platform

	services.QueueEmail(appointment.User.Email,
		"Meeting Link for Your Viewing - BuildEstate",
		services.MeetingLinkEmail(appointment.Property.Title, appointment.Date, appointment.Time, input.MeetingLink))

	ctx.JSON(iris.Map{"success": true, "message": "Meeting details updated", "appointment": appointment})
}

// GetAllAppointments lists every appointment with filters and paging (admin).
func GetAllAppointments(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("perPage", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	status := ctx.URLParamDefault("status", "")

	query := storage.DB.Model(&models.Appointment{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var appointments []models.Appointment
	err := query.Preload("Property").Preload("User").
		Order("date DESC, time DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&appointments).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, appointments, page, perPage, total)
}

// GetAppointmentStats aggregates the viewing pipeline for the admin dashboard.
func GetAppointmentStats(ctx iris.Context) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var counts []statusCount
	err := storage.DB.Model(&models.Appointment{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	stats := iris.Map{
		models.AppointmentPending:   int64(0),
		models.AppointmentConfirmed: int64(0),
		models.AppointmentCancelled: int64(0),
		models.AppointmentCompleted: int64(0),
	}
	var total int64
	for _, c := range counts {
		stats[c.Status] = c.Count
		total += c.Count
	}

	var visited int64
	storage.DB.Model(&models.Appointment{}).Where("visited = ?", true).Count(&visited)

	var revenue int64
	storage.DB.Model(&models.Appointment{}).
		Where("payment_status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&revenue)

	ctx.JSON(iris.Map{
		"success": true,
		"stats": iris.Map{
			"total":    total,
			"byStatus": stats,
			"visited":  visited,
			"revenue":  revenue,
		},
	})
}

type ScheduleViewingInput struct {
	PropertyID uint   `json:"propertyId" validate:"required"`
	Date       string `json:"date" validate:"required"`
	Time       string `json:"time" validate:"required"`
	Notes      string `json:"notes" validate:"max=1000"`
}

type CancelAppointmentInput struct {
	Reason string `json:"reason" validate:"max=500"`
}

type AppointmentFeedbackInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

type UpdateAppointmentStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	Reason string `json:"reason" validate:"max=500"`
}

type UpdateMeetingLinkInput struct {
	MeetingLink     string `json:"meetingLink" validate:"required,url"`
	MeetingPlatform string `json:"meetingPlatform"`
}
