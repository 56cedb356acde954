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

// GET /api/admin/properties — full catalogue including blocked listings.
func AdminListProperties(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := ctx.URLParamIntDefault("perPage", 25)
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	search := strings.TrimSpace(ctx.URLParamDefault("search", ""))
	location := strings.TrimSpace(ctx.URLParamDefault("location", ""))
	blocked := ctx.URLParamDefault("blocked", "")
	booked := ctx.URLParamDefault("booked", "")
	createdFrom := ctx.URLParamDefault("created_from", "")
	createdTo := ctx.URLParamDefault("created_to", "")

	q := storage.DB.Model(&models.Property{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("lower(title) LIKE ? OR lower(description) LIKE ?", like, like)
	}
	if location != "" {
		q = q.Where("lower(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	if blocked == "true" || blocked == "false" {
		q = q.Where("is_blocked = ?", blocked == "true")
	}
	if booked == "true" || booked == "false" {
		q = q.Where("is_booked = ?", booked == "true")
	}
	if createdFrom != "" {
		if t, err := time.Parse(time.RFC3339, createdFrom); err == nil {
			q = q.Where("created_at >= ?", t)
		}
	}
	if createdTo != "" {
		if t, err := time.Parse(time.RFC3339, createdTo); err == nil {
			q = q.Where("created_at <= ?", t)
		}
	}

	var total int64
	q.Count(&total)

	var props []models.Property
	if err := q.Offset((page - 1) * perPage).Limit(perPage).Order("created_at DESC").Find(&props).Error; err != nil {
		utils.JSONError(ctx, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	utils.JSONPage(ctx, props, page, perPage, total)
}

// GET /api/admin/properties/:id?include=appointments,bookedBy
func AdminGetProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "invalid_id", "invalid id")
		return
	}
	include := strings.Split(strings.TrimSpace(ctx.URLParamDefault("include", "")), ",")

	var prop models.Property
	q := storage.DB.Model(&models.Property{})
	for _, inc := range include {
		if strings.TrimSpace(inc) == "bookedBy" {
			q = q.Preload("BookedBy")
		}
	}
	if err := q.First(&prop, id).Error; err != nil {
		utils.JSONError(ctx, http.StatusNotFound, "not_found", "property not found")
		return
	}

	response := iris.Map{"property": prop}
	for _, inc := range include {
		if strings.TrimSpace(inc) == "appointments" {
			var appointments []models.Appointment
			storage.DB.Preload("User").
				Where("property_id = ?", prop.ID).
				Order("date DESC").
				Find(&appointments)
			response["appointments"] = appointments
		}
	}

	ctx.JSON(iris.Map{"success": true, "data": response})
}
