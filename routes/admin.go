package routes

import (
	"net/http"
	"strings"
	"time"

	"buildestate-server/models"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
)

// GET /api/admin/stats
func AdminStats(ctx iris.Context) {
	var totalProperties, activeProperties, blockedProperties int64
	storage.DB.Model(&models.Property{}).Count(&totalProperties)
	storage.DB.Model(&models.Property{}).Where("is_blocked = ?", false).Count(&activeProperties)
	storage.DB.Model(&models.Property{}).Where("is_blocked = ?", true).Count(&blockedProperties)

	var totalUsers int64
	storage.DB.Model(&models.User{}).Where("is_admin = ?", false).Count(&totalUsers)

	var pendingAppointments, totalAppointments int64
	storage.DB.Model(&models.Appointment{}).Where("status = ?", models.AppointmentPending).Count(&pendingAppointments)
	storage.DB.Model(&models.Appointment{}).Count(&totalAppointments)

	var pendingTestimonials int64
	storage.DB.Model(&models.Testimonial{}).Where("is_approved IS NULL").Count(&pendingTestimonials)

	var revenue int64
	storage.DB.Model(&models.Appointment{}).
		Where("payment_status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&revenue)

	since7 := time.Now().AddDate(0, 0, -7)
	since30 := time.Now().AddDate(0, 0, -30)
	var newAppointments7, newAppointments30 int64
	storage.DB.Model(&models.Appointment{}).Where("created_at >= ?", since7).Count(&newAppointments7)
	storage.DB.Model(&models.Appointment{}).Where("created_at >= ?", since30).Count(&newAppointments30)

	var recentAppointments []models.Appointment
	storage.DB.Preload("Property").Preload("User").
		Order("created_at DESC").Limit(10).Find(&recentAppointments)

	ctx.JSON(iris.Map{
		"success": true,
		"stats": iris.Map{
			"properties": iris.Map{
				"total":   totalProperties,
				"active":  activeProperties,
				"blocked": blockedProperties,
			},
			"users": totalUsers,
			"appointments": iris.Map{
				"total":   totalAppointments,
				"pending": pendingAppointments,
				"new7d":   newAppointments7,
				"new30d":  newAppointments30,
			},
			"pendingTestimonials": pendingTestimonials,
			"revenue":             revenue,
		},
		"recentAppointments": recentAppointments,
	})
}

// GET /api/admin/activity
func AdminActivity(ctx iris.Context) {
	var logs []models.AuditLog
	storage.DB.Order("created_at DESC").Limit(100).Find(&logs)
	ctx.JSON(iris.Map{"success": true, "activity": logs})
}

// GET /api/admin/users?q=&page=&perPage=
func AdminListUsers(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("perPage", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := storage.DB.Model(&models.User{})
	if q := strings.TrimSpace(ctx.URLParamDefault("q", "")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(email) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var users []models.User
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, users, page, perPage, total)
}

// GET /api/admin/users/:id — profile plus appointment history
func AdminGetUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	var appointments []models.Appointment
	storage.DB.Preload("Property").
		Where("user_id = ?", id).
		Order("date DESC").Limit(50).
		Find(&appointments)

	ctx.JSON(iris.Map{
		"success":      true,
		"user":         user,
		"appointments": appointments,
	})
}

// DELETE /api/admin/users/:id
func AdminDeleteUser(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "user not found")
		return
	}

	if user.IsAdmin {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Admin accounts cannot be deleted here.", ctx)
		return
	}

	if err := storage.DB.Delete(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, models.AuditUserDelete, "user", user.ID, user, nil)

	ctx.JSON(iris.Map{"success": true, "message": "User deleted successfully"})
}
