package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"buildestate-server/models"
	"buildestate-server/services"
	"buildestate-server/storage"
	"buildestate-server/utils"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
)

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	otp := utils.GenerateOTP()
	otpExpire := time.Now().Add(10 * time.Minute)

	newUser = models.User{
		Name:      userInput.Name,
		Email:     strings.ToLower(userInput.Email),
		Password:  hashedPassword,
		OTP:       otp,
		OTPExpire: &otpExpire,
	}

	if err := storage.DB.Create(&newUser).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	services.QueueEmail(newUser.Email,
		"Welcome to BuildEstate - Verify Your Email",
		services.WelcomeEmail(newUser.Name, otp))

	returnUser(newUser, ctx)
}

func VerifyEmail(ctx iris.Context) {
	var input VerifyEmailInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, input.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !userExists {
		utils.CreateNotFound(ctx)
		return
	}

	if user.IsVerified {
		ctx.JSON(iris.Map{"success": true, "message": "Email already verified"})
		return
	}

	if user.OTP == "" || user.OTP != input.OTP {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid verification code.", ctx)
		return
	}

	if user.OTPExpire == nil || time.Now().After(*user.OTPExpire) {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Verification code has expired.", ctx)
		return
	}

	updates := map[string]interface{}{"is_verified": true, "otp": "", "otp_expire": nil}
	if err := storage.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Email verified successfully"})
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if existingUser.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// AdminLogin issues a token only for accounts carrying the admin flag.
func AdminLogin(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	errorMsg := "Invalid admin credentials."
	userExists, userExistsErr := getAndHandleUserExists(&user, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if !user.IsAdmin {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Access denied. Not an admin account.", ctx)
		return
	}

	returnUser(user, ctx)
}

func GoogleLoginOrSignUp(ctx iris.Context) {
	var userInput SocialUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	endpoint := "https://www.googleapis.com/userinfo/v2/me"

	client := &http.Client{}
	req, _ := http.NewRequest("GET", endpoint, nil)
	req.Header.Set("Authorization", "Bearer "+userInput.AccessToken)
	res, googleErr := client.Do(req)
	if googleErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	defer res.Body.Close()
	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var googleBody GoogleUserRes
	json.Unmarshal(body, &googleBody)

	if googleBody.Email == "" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid user token.", ctx)
		return
	}

	socialLoginOrSignUp(googleBody.Email, googleBody.Name, "Google", ctx)
}

func AppleLoginOrSignUp(ctx iris.Context) {
	var userInput AppleUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	res, httpErr := http.Get("https://appleid.apple.com/auth/keys")
	if httpErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	if jwksErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	token, tokenErr := jwt.Parse(userInput.IdentityToken, jwks.Keyfunc)
	if tokenErr != nil || !token.Valid {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid user token.", ctx)
		return
	}

	email := fmt.Sprint(token.Claims.(jwt.MapClaims)["email"])
	if email == "" || email == "<nil>" {
		utils.CreateError(iris.StatusUnauthorized, "Unauthorized", "Invalid user token.", ctx)
		return
	}

	socialLoginOrSignUp(email, "", "Apple", ctx)
}

func socialLoginOrSignUp(email, name, provider string, ctx iris.Context) {
	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		user = models.User{
			Name:           name,
			Email:          strings.ToLower(email),
			SocialLogin:    true,
			SocialProvider: provider,
			IsVerified:     true, // provider already verified the address
		}
		storage.DB.Create(&user)

		returnUser(user, ctx)
		return
	}

	if user.SocialLogin && user.SocialProvider == provider {
		returnUser(user, ctx)
		return
	}

	utils.CreateEmailAlreadyRegistered(ctx)
}

func ForgotPassword(ctx iris.Context) {
	var emailInput EmailRegisteredInput
	err := ctx.ReadJSON(&emailInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, emailInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateNotFound(ctx)
		return
	}

	if user.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
		return
	}

	// Single-use token, 10 minute expiry.
	resetToken := utils.GenerateShortToken(20)
	expire := time.Now().Add(10 * time.Minute)

	updates := map[string]interface{}{"reset_token": resetToken, "reset_token_expire": expire}
	if err := storage.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	resetURL := cfg.WebsiteURL + "/reset/" + resetToken
	services.QueueEmail(user.Email,
		"Password Reset - BuildEstate Security",
		services.PasswordResetEmail(resetURL))

	ctx.JSON(iris.Map{"success": true, "emailSent": true})
}

func ResetPassword(ctx iris.Context) {
	token := ctx.Params().Get("token")

	var input ResetPasswordInput
	err := ctx.ReadJSON(&input)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	query := storage.DB.Where("reset_token = ? AND reset_token_expire > ?", token, time.Now()).Limit(1).Find(&user)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid or expired token.", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	updates := map[string]interface{}{"password": hashedPassword, "reset_token": "", "reset_token_expire": nil}
	if err := storage.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "passwordReset": true})
}

// GetMe returns the authenticated user's profile.
func GetMe(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var user models.User
	query := storage.DB.Where("id = ?", claims.ID).Limit(1).Find(&user)
	if query.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if query.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "user": user})
}

func getAndHandleUserExists(user *models.User, email string) (exists bool, err error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)

	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}

	return userExistsQuery.RowsAffected > 0, nil
}

func hashAndSaltPassword(password string) (hashedPassword string, err error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID, user.IsAdmin)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":      true,
		"ID":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"isAdmin":      user.IsAdmin,
		"isVerified":   user.IsVerified,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

type RegisterUserInput struct {
	Name     string `json:"name" validate:"required,max=256"`
	Email    string `json:"email" validate:"required,max=256,email"`
	Password string `json:"password" validate:"required,min=8,max=256"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyEmailInput struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type EmailRegisteredInput struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordInput struct {
	Password string `json:"password" validate:"required,min=8,max=256"`
}

type SocialUserInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type AppleUserInput struct {
	IdentityToken string `json:"identityToken" validate:"required"`
}

type GoogleUserRes struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
