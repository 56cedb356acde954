package main

import (
	"context"
	"fmt"
	"log"

	"buildestate-server/config"
	"buildestate-server/routes"
	"buildestate-server/services"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	cfg := config.Load()

	// Initialize services
	storage.InitializeDB(cfg)
	storage.InitializeRedis(cfg)
	utils.InitTokens(cfg)

	mailer := services.NewMailer(cfg)
	dispatcher := services.NewOutboxDispatcher(mailer)
	go dispatcher.Run(context.Background())

	paymentService := services.NewPaymentService(cfg)
	routes.Init(cfg, paymentService)

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	// Minimal middleware - compression only
	app.Use(iris.Compression)

	// JWT Verifiers
	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.AccessTokenSecret))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(cfg.RefreshTokenSecret))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	// Health check endpoint
	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	// Routes
	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/verify-email", routes.VerifyEmail)
		user.Post("/login", routes.Login)
		user.Post("/admin-login", routes.AdminLogin)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword/{token}", routes.ResetPassword)
		user.Get("/me", accessTokenVerifierMiddleware, routes.GetMe)
	}

	properties := app.Party("/api/properties")
	{
		properties.Get("/", routes.ListProperties)
		properties.Get("/search", routes.SearchProperties)
		properties.Get("/{id:uint}", routes.GetProperty)
		properties.Post("/", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CreateProperty)
		properties.Put("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateProperty)
		properties.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteProperty)
		properties.Put("/{id:uint}/block", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.BlockProperty)
		properties.Put("/{id:uint}/unblock", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UnblockProperty)
		properties.Put("/{id:uint}/verify-payment", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.VerifyPropertyPayment)
		properties.Put("/{id:uint}/book", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.BookProperty)
		properties.Put("/{id:uint}/cancel-booking", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.CancelBooking)
		properties.Get("/booked", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetBookedProperties)
	}

	appointments := app.Party("/api/appointments")
	{
		appointments.Post("/schedule", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.ScheduleViewing)
		appointments.Get("/user", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetAppointmentsByUser)
		appointments.Put("/cancel/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CancelAppointment)
		appointments.Put("/mark-visited/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.MarkAppointmentAsVisited)
		appointments.Post("/feedback/{id:uint}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SubmitAppointmentFeedback)
		appointments.Put("/status/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateAppointmentStatus)
		appointments.Put("/update-meeting/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateMeetingLink)
		appointments.Get("/all", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetAllAppointments)
		appointments.Get("/stats", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetAppointmentStats)
	}

	payments := app.Party("/api/payments")
	{
		payments.Post("/create-order", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateDepositOrder)
		payments.Post("/verify-payment", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.VerifyDepositPayment)
	}

	testimonials := app.Party("/api/testimonials")
	{
		testimonials.Post("/submit", routes.SubmitTestimonial)
		testimonials.Get("/approved", routes.GetApprovedTestimonials)
		testimonials.Get("/all", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetAllTestimonials)
		testimonials.Put("/{id:uint}/status", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.UpdateTestimonialStatus)
		testimonials.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteTestimonial)
		testimonials.Get("/stats", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetTestimonialStats)
		testimonials.Get("/config", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetAutoApprovalConfig)
	}

	forms := app.Party("/api/forms")
	{
		forms.Post("/submit", routes.SubmitForm)
		forms.Get("/all", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetAllForms)
		forms.Delete("/{id:uint}", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.DeleteForm)
	}

	visitors := app.Party("/api/visitors")
	{
		visitors.Post("/track", routes.TrackVisit)
		visitors.Get("/stats", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware, routes.GetVisitorStats)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
		admin.Get("/properties", routes.AdminListProperties)
		admin.Get("/properties/{id:uint}", routes.AdminGetProperty)
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Delete("/users/{id:uint}", routes.AdminDeleteUser)
		admin.Post("/export", routes.AdminCreateExport)
		admin.Get("/export/{id:string}", routes.AdminGetExport)
		admin.Get("/export/{id:string}/download", routes.AdminDownloadExport)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	addr := "0.0.0.0:" + cfg.Port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
