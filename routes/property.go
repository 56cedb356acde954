package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"buildestate-server/models"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// ListProperties returns every listing that is not administratively blocked.
func ListProperties(ctx iris.Context) {
	var properties []models.Property
	if err := storage.DB.Where("is_blocked = ?", false).Order("created_at DESC").Find(&properties).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "message": "Failed to fetch properties"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "properties": properties})
}

// SearchProperties filters the public catalogue. Blocked listings never
// appear in results.
func SearchProperties(ctx iris.Context) {
	location := ctx.URLParamDefault("location", "")
	maxPrice := ctx.URLParamInt64Default("maxPrice", 0)
	minBeds := ctx.URLParamIntDefault("minBeds", 0)
	propertyType := ctx.URLParamDefault("type", "")

	query := storage.DB.Where("is_blocked = ?", false)
	if location != "" {
		query = query.Where("lower(location) LIKE lower(?)", "%"+location+"%")
	}
	if maxPrice > 0 {
		query = query.Where("price <= ?", maxPrice)
	}
	if minBeds > 0 {
		query = query.Where("beds >= ?", minBeds)
	}
	if propertyType != "" {
		query = query.Where("property_type = ?", propertyType)
	}

	var properties []models.Property
	if err := query.Order("created_at DESC").Find(&properties).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "message": "Failed to search properties"})
		return
	}

	ctx.JSON(iris.Map{"success": true, "properties": properties})
}

// GetProperty returns a single listing and records the view.
func GetProperty(ctx iris.Context) {
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

	// View counter: increment and append the timestamp. Best-effort; a failed
	// counter write must not hide the listing.
	var viewDates []time.Time
	if property.ViewDates != nil {
		json.Unmarshal(property.ViewDates, &viewDates)
	}
	viewDates = append(viewDates, time.Now())
	if marshalled, err := json.Marshal(viewDates); err == nil {
		storage.DB.Model(&property).Updates(map[string]interface{}{
			"views":      gorm.Expr("views + 1"),
			"view_dates": marshalled,
		})
		property.Views++
		property.ViewDates = marshalled
	}

	ctx.JSON(iris.Map{"success": true, "property": property})
}

// CreateProperty adds a listing (admin).
func CreateProperty(ctx iris.Context) {
	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Phone != "" && !utils.ValidatePhoneNumber(input.Phone) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid contact phone number.", ctx)
		return
	}

	// Ensure arrays are never null
	images := input.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, _ := json.Marshal(images)

	amenities := input.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	amenitiesJSON, _ := json.Marshal(amenities)

	property := models.Property{
		Title:         input.Title,
		Location:      input.Location,
		Price:         input.Price,
		Images:        imagesJSON,
		Beds:          input.Beds,
		Baths:         input.Baths,
		Sqft:          input.Sqft,
		PropertyType:  input.PropertyType,
		Availability:  input.Availability,
		Description:   input.Description,
		Amenities:     amenitiesJSON,
		Phone:         utils.NormalizePhoneNumber(input.Phone),
		PaymentStatus: "pending",
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "message": "Failed to create property"})
		return
	}

	utils.Audit(ctx, models.AuditPropertyCreate, "property", property.ID, nil, property)

	ctx.StatusCode(http.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "message": "Property added successfully", "property": property})
}

// UpdateProperty edits listing fields (admin). Booking/blocking state is
// managed by the booking handlers, not here.
func UpdateProperty(ctx iris.Context) {
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

	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := property

	property.Title = input.Title
	property.Location = input.Location
	property.Price = input.Price
	property.Beds = input.Beds
	property.Baths = input.Baths
	property.Sqft = input.Sqft
	property.PropertyType = input.PropertyType
	property.Availability = input.Availability
	property.Description = input.Description
	if input.Phone != "" {
		property.Phone = utils.NormalizePhoneNumber(input.Phone)
	}
	if input.Images != nil {
		if imagesJSON, err := json.Marshal(input.Images); err == nil {
			property.Images = imagesJSON
		}
	}
	if input.Amenities != nil {
		if amenitiesJSON, err := json.Marshal(input.Amenities); err == nil {
			property.Amenities = amenitiesJSON
		}
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "message": "Failed to update property"})
		return
	}

	utils.Audit(ctx, models.AuditPropertyUpdate, "property", property.ID, before, property)

	ctx.JSON(iris.Map{"success": true, "message": "Property updated successfully", "property": property})
}

// DeleteProperty removes a listing and its appointments in one transaction
// (admin).
func DeleteProperty(ctx iris.Context) {
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

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
	if txErr != nil {
		ctx.StatusCode(http.StatusInternalServerError)
		ctx.JSON(iris.Map{"success": false, "message": "Failed to delete property"})
		return
	}

	utils.Audit(ctx, models.AuditPropertyDelete, "property", property.ID, property, nil)

	ctx.JSON(iris.Map{"success": true, "message": "Property deleted successfully"})
}

type PropertyInput struct {
	Title        string   `json:"title" validate:"required,max=256"`
	Location     string   `json:"location" validate:"required,max=256"`
	Price        int64    `json:"price" validate:"required,gt=0"`
	Images       []string `json:"image"`
	Beds         int      `json:"beds" validate:"gte=0"`
	Baths        int      `json:"baths" validate:"gte=0"`
	Sqft         int      `json:"sqft" validate:"gte=0"`
	PropertyType string   `json:"type" validate:"required"`
	Availability string   `json:"availability" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Amenities    []string `json:"amenities"`
	Phone        string   `json:"phone"`
}
