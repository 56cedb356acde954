package routes

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"sync"
	"time"

	"buildestate-server/models"
	"buildestate-server/storage"

	"github.com/kataras/iris/v12"
	"golang.org/x/exp/slices"
)

type exportJob struct {
	ID        string `json:"id"`
	Resource  string `json:"resource"`
	Status    string `json:"status"` // pending, processing, done, failed
	CreatedAt int64  `json:"created_at"`
	csv       []byte
}

var (
	exportJobs   = map[string]*exportJob{}
	exportJobsMu sync.Mutex
)

var exportResources = []string{"appointments", "testimonials", "properties"}

// POST /api/admin/export { resource: string }
func AdminCreateExport(ctx iris.Context) {
	var body struct {
		Resource string `json:"resource"`
	}
	if err := ctx.ReadJSON(&body); err != nil || !slices.Contains(exportResources, body.Resource) {
		ctx.StatusCode(http.StatusUnprocessableEntity)
		ctx.JSON(iris.Map{"error": "invalid_payload", "message": "resource must be one of appointments, testimonials, properties"})
		return
	}

	id := time.Now().Format("20060102150405.000000")
	job := &exportJob{ID: id, Resource: body.Resource, Status: "pending", CreatedAt: time.Now().Unix()}
	exportJobsMu.Lock()
	exportJobs[id] = job
	exportJobsMu.Unlock()

	go runExport(job)

	ctx.JSON(iris.Map{"data": iris.Map{"id": id, "status": job.Status}})
}

// GET /api/admin/export/:id
func AdminGetExport(ctx iris.Context) {
	id := ctx.Params().GetString("id")
	exportJobsMu.Lock()
	job, ok := exportJobs[id]
	exportJobsMu.Unlock()
	if !ok {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"error": "not_found", "message": "job not found"})
		return
	}
	ctx.JSON(iris.Map{"data": job})
}

// GET /api/admin/export/:id/download
func AdminDownloadExport(ctx iris.Context) {
	id := ctx.Params().GetString("id")
	exportJobsMu.Lock()
	job, ok := exportJobs[id]
	exportJobsMu.Unlock()
	if !ok || job.Status != "done" {
		ctx.StatusCode(http.StatusNotFound)
		ctx.JSON(iris.Map{"error": "not_found", "message": "export not ready"})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%s.csv", job.Resource, job.ID))
	ctx.ContentType("text/csv")
	ctx.Write(job.csv)
}

func runExport(job *exportJob) {
	exportJobsMu.Lock()
	job.Status = "processing"
	exportJobsMu.Unlock()

	data, err := buildExportCSV(job.Resource)

	exportJobsMu.Lock()
	defer exportJobsMu.Unlock()
	if err != nil {
		job.Status = "failed"
		return
	}
	job.csv = data
	job.Status = "done"
}

func buildExportCSV(resource string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch resource {
	case "appointments":
		var appointments []models.Appointment
		if err := storage.DB.Preload("Property").Preload("User").Order("date DESC").Find(&appointments).Error; err != nil {
			return nil, err
		}
		w.Write([]string{"id", "property", "client", "email", "date", "time", "status", "visited", "paymentStatus", "paymentAmount"})
		for _, a := range appointments {
			w.Write([]string{
				fmt.Sprint(a.ID), a.Property.Title, a.User.Name, a.User.Email,
				a.Date.Format("2006-01-02"), a.Time, a.Status,
				fmt.Sprint(a.Visited), a.Payment.Status, fmt.Sprint(a.Payment.Amount),
			})
		}
	case "testimonials":
		var testimonials []models.Testimonial
		if err := storage.DB.Order("created_at DESC").Find(&testimonials).Error; err != nil {
			return nil, err
		}
		w.Write([]string{"id", "name", "email", "rating", "approved", "autoApproved", "message"})
		for _, t := range testimonials {
			approved := "pending"
			if t.IsApproved != nil {
				approved = fmt.Sprint(*t.IsApproved)
			}
			w.Write([]string{
				fmt.Sprint(t.ID), t.Name, t.Email, fmt.Sprint(t.Rating),
				approved, fmt.Sprint(t.ValidationMetadata.AutoApproved), t.Message,
			})
		}
	case "properties":
		var properties []models.Property
		if err := storage.DB.Order("created_at DESC").Find(&properties).Error; err != nil {
			return nil, err
		}
		w.Write([]string{"id", "title", "location", "price", "type", "availability", "blocked", "booked", "views"})
		for _, p := range properties {
			w.Write([]string{
				fmt.Sprint(p.ID), p.Title, p.Location, fmt.Sprint(p.Price),
				p.PropertyType, p.Availability, fmt.Sprint(p.IsBlocked),
				fmt.Sprint(p.IsBooked), fmt.Sprint(p.Views),
			})
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
