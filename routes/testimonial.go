package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"buildestate-server/models"
	"buildestate-server/services"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
)

// SubmitTestimonial accepts a public testimonial. The gatekeeper decides
// whether it publishes immediately or waits for manual moderation.
func SubmitTestimonial(ctx iris.Context) {
	var input SubmitTestimonialInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Phone != "" && !utils.ValidatePhoneNumber(input.Phone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid phone number.", ctx)
		return
	}

	decision := services.ShouldAutoApprove(services.TestimonialInput{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
		Rating:  input.Rating,
	})

	failedChecks, _ := json.Marshal(decision.FailedChecks)
	if decision.FailedChecks == nil {
		failedChecks = []byte("[]")
	}

	testimonial := models.Testimonial{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   utils.NormalizePhoneNumber(input.Phone),
		Message: input.Message,
		Rating:  input.Rating,
		ValidationMetadata: models.ValidationMetadata{
			AutoApproved:   decision.AutoApprove,
			QualityScore:   decision.Score,
			FailedChecks:   failedChecks,
			ApprovalReason: decision.Reason,
			ValidatedAt:    time.Now(),
		},
	}
	if decision.AutoApprove {
		approved := true
		testimonial.IsApproved = &approved
	}

	if err := storage.DB.Create(&testimonial).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	message := "Thank you! Your testimonial is awaiting review."
	if decision.AutoApprove {
		message = "Thank you! Your testimonial has been published."
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{
		"success":      true,
		"message":      message,
		"autoApproved": decision.AutoApprove,
		"testimonial":  testimonial,
	})
}

// GetApprovedTestimonials returns the latest published testimonials for the
// public site.
func GetApprovedTestimonials(ctx iris.Context) {
	var testimonials []models.Testimonial
	err := storage.DB.Where("is_approved = ?", true).
		Order("created_at DESC").
		Limit(10).
		Find(&testimonials).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "testimonials": testimonials})
}

// GetAllTestimonials lists every testimonial with paging (admin). The status
// filter accepts approved, rejected or pending.
func GetAllTestimonials(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("perPage", 20)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Testimonial{})
	switch ctx.URLParamDefault("status", "") {
	case "approved":
		query = query.Where("is_approved = ?", true)
	case "rejected":
		query = query.Where("is_approved = ?", false)
	case "pending":
		query = query.Where("is_approved IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var testimonials []models.Testimonial
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&testimonials).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, testimonials, page, perPage, total)
}

// UpdateTestimonialStatus approves or rejects a testimonial (admin). The
// validation metadata recorded at submission stays as it was.
func UpdateTestimonialStatus(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var input UpdateTestimonialStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var testimonial models.Testimonial
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&testimonial)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Testimonial not found"})
		return
	}

	if err := storage.DB.Model(&testimonial).Update("is_approved", *input.IsApproved).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	testimonial.IsApproved = input.IsApproved

	utils.Audit(ctx, models.AuditTestimonialStatus, "testimonial", testimonial.ID, nil, iris.Map{"isApproved": *input.IsApproved})

	ctx.JSON(iris.Map{"success": true, "message": "Testimonial status updated", "testimonial": testimonial})
}

// DeleteTestimonial removes a testimonial (admin).
func DeleteTestimonial(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var testimonial models.Testimonial
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&testimonial)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Testimonial not found"})
		return
	}

	if err := storage.DB.Delete(&testimonial).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, models.AuditTestimonialDelete, "testimonial", testimonial.ID, testimonial, nil)

	ctx.JSON(iris.Map{"success": true, "message": "Testimonial deleted successfully"})
}

// GetTestimonialStats summarizes the moderation queue (admin).
func GetTestimonialStats(ctx iris.Context) {
	var total, approved, rejected, pending, autoApproved int64

	if err := storage.DB.Model(&models.Testimonial{}).Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	storage.DB.Model(&models.Testimonial{}).Where("is_approved = ?", true).Count(&approved)
	storage.DB.Model(&models.Testimonial{}).Where("is_approved = ?", false).Count(&rejected)
	storage.DB.Model(&models.Testimonial{}).Where("is_approved IS NULL").Count(&pending)
	storage.DB.Model(&models.Testimonial{}).Where("validation_auto_approved = ?", true).Count(&autoApproved)

	var avgRating float64
	storage.DB.Model(&models.Testimonial{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating)

	ctx.JSON(iris.Map{
		"success": true,
		"stats": iris.Map{
			"total":         total,
			"approved":      approved,
			"rejected":      rejected,
			"pending":       pending,
			"autoApproved":  autoApproved,
			"averageRating": avgRating,
		},
	})
}

// GetAutoApprovalConfig dumps the gatekeeper criteria for the admin panel.
func GetAutoApprovalConfig(ctx iris.Context) {
	ctx.JSON(iris.Map{"success": true, "config": services.AutoApprovalConfig()})
}

type SubmitTestimonialInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required,max=2000"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

type UpdateTestimonialStatusInput struct {
	IsApproved *bool `json:"isApproved" validate:"required"`
}
