package utils

import (
	"context"
	"crypto/rand"
	"strconv"
	"time"

	"buildestate-server/config"
	"buildestate-server/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

var bgContext = context.Background()

// Signers are built once from the config at startup; nothing below reads the
// environment.
var (
	accessTokenSigner  *jwt.Signer
	refreshTokenSigner *jwt.Signer
)

func InitTokens(cfg *config.Config) {
	accessTokenSigner = jwt.NewSigner(jwt.HS256, cfg.AccessTokenSecret, 24*time.Hour)
	refreshTokenSigner = jwt.NewSigner(jwt.HS256, cfg.RefreshTokenSecret, 365*24*time.Hour)
}

func CreateTokenPair(id uint, isAdmin bool) (*jwt.TokenPair, error) {
	userID := strconv.FormatUint(uint64(id), 10)

	refreshClaims := jwt.Claims{Subject: userID}

	accessTokenClaims := AccessToken{
		ID:      id,
		IsAdmin: isAdmin,
	}

	accessToken, err := accessTokenSigner.Sign(accessTokenClaims)
	if err != nil {
		return nil, err
	}

	refreshToken, err := refreshTokenSigner.Sign(refreshClaims)
	if err != nil {
		return nil, err
	}

	var tokenPair jwt.TokenPair
	tokenPair.AccessToken = accessToken
	tokenPair.RefreshToken = refreshToken

	storage.Redis.Set(bgContext, string(refreshToken), "true", 365*24*time.Hour+5*time.Minute)

	return &tokenPair, nil
}

func RefreshToken(ctx iris.Context) {
	token := jwt.GetVerifiedToken(ctx)
	tokenStr := string(token.Token)
	validToken, tokenErr := storage.Redis.Get(bgContext, tokenStr).Result()

	if tokenErr != nil {
		CreateNotFound(ctx)
		return
	}

	if validToken != "true" {
		ctx.StatusCode(iris.StatusForbidden)
		return
	}

	storage.Redis.Del(bgContext, tokenStr)
	userID, parseErr := strconv.ParseUint(token.StandardClaims.Subject, 10, 32)
	if parseErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	var isAdmin bool
	storage.DB.Raw("SELECT is_admin FROM users WHERE id = ?", uint(userID)).Scan(&isAdmin)

	tokenPair, tokenPairErr := CreateTokenPair(uint(userID), isAdmin)
	if tokenPairErr != nil {
		CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

// GenerateShortToken returns a URL-safe random string of the given length (bytes*2 hex).
func GenerateShortToken(n int) string {
	b := make([]byte, n)
	_, err := rand.Read(b)
	if err != nil {
		return ""
	}
	const hex = "0123456789abcdef"
	out := make([]byte, n*2)
	for i, v := range b {
		out[i*2] = hex[v>>4]
		out[i*2+1] = hex[v&0x0f]
	}
	return string(out)
}

// GenerateOTP returns a 6-digit one-time code for email verification.
func GenerateOTP() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	out := make([]byte, 6)
	for i, v := range b {
		out[i] = '0' + v%10
	}
	return string(out)
}

type AccessToken struct {
	ID      uint `json:"id"`
	IsAdmin bool `json:"isAdmin"`
}

type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}
