package routes

import (
	"net/http"

	"buildestate-server/models"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
)

// SubmitForm stores a contact-form message from the public site.
func SubmitForm(ctx iris.Context) {
	var input SubmitFormInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Phone != "" && !utils.ValidatePhoneNumber(input.Phone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid phone number.", ctx)
		return
	}

	form := models.Form{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   utils.NormalizePhoneNumber(input.Phone),
		Message: input.Message,
	}
	if err := storage.DB.Create(&form).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Form submitted successfully"})
}

// GetAllForms lists contact messages newest first (admin).
func GetAllForms(ctx iris.Context) {
	var forms []models.Form
	if err := storage.DB.Order("created_at DESC").Find(&forms).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "forms": forms})
}

// DeleteForm removes a contact message (admin).
func DeleteForm(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var form models.Form
	query := storage.DB.Where("id = ?", id).Limit(1).Find(&form)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"success": false, "message": "Message not found"})
		return
	}

	if err := storage.DB.Delete(&form).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, models.AuditFormDelete, "form", form.ID, form, nil)

	ctx.JSON(iris.Map{"success": true, "message": "Message deleted"})
}

type SubmitFormInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required,max=2000"`
}
