package routes

import (
	"time"

	"buildestate-server/models"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/kataras/iris/v12"
)

// TrackVisit upserts a visitor keyed by (IP, user agent). A returning visitor
// bumps the counter; a new pair creates a unique-visitor row.
func TrackVisit(ctx iris.Context) {
	ip := ctx.RemoteAddr()
	userAgent := ctx.GetHeader("User-Agent")
	now := time.Now()

	var visitor models.Visitor
	query := storage.DB.Where("ip_address = ? AND user_agent = ?", ip, userAgent).Limit(1).Find(&visitor)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if query.RowsAffected == 0 {
		visitor = models.Visitor{
			IPAddress:  ip,
			UserAgent:  userAgent,
			FirstVisit: now,
			LastVisit:  now,
			VisitCount: 1,
			IsUnique:   true,
		}
		if err := storage.DB.Create(&visitor).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}

		ctx.JSON(iris.Map{"success": true, "isNewVisitor": true})
		return
	}

	updates := map[string]interface{}{
		"last_visit":  now,
		"visit_count": visitor.VisitCount + 1,
	}
	if err := storage.DB.Model(&visitor).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "isNewVisitor": false})
}

// GetVisitorStats summarizes site traffic (admin).
func GetVisitorStats(ctx iris.Context) {
	var uniqueVisitors int64
	if err := storage.DB.Model(&models.Visitor{}).Count(&uniqueVisitors).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var totalVisits int64
	storage.DB.Model(&models.Visitor{}).
		Select("COALESCE(SUM(visit_count), 0)").
		Scan(&totalVisits)

	dayAgo := time.Now().Add(-24 * time.Hour)
	var activeToday int64
	storage.DB.Model(&models.Visitor{}).Where("last_visit >= ?", dayAgo).Count(&activeToday)

	weekAgo := time.Now().AddDate(0, 0, -7)
	var newThisWeek int64
	storage.DB.Model(&models.Visitor{}).Where("first_visit >= ?", weekAgo).Count(&newThisWeek)

	ctx.JSON(iris.Map{
		"success": true,
		"stats": iris.Map{
			"uniqueVisitors": uniqueVisitors,
			"totalVisits":    totalVisits,
			"activeToday":    activeToday,
			"newThisWeek":    newThisWeek,
		},
	})
}
