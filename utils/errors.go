package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

func CreateError(statusCode int, title string, detail string, ctx iris.Context) {
	ctx.StopWithJSON(statusCode, iris.Map{
		"success": false,
		"title":   title,
		"message": detail,
	})
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(
		iris.StatusInternalServerError,
		"Internal Server Error",
		"An unexpected error occurred, please try again later.",
		ctx)
}

func CreateNotFound(ctx iris.Context) {
	CreateError(iris.StatusNotFound, "Not Found", "Resource not found.", ctx)
}

func CreateEmailAlreadyRegistered(ctx iris.Context) {
	CreateError(iris.StatusConflict, "Conflict", "Email already registered.", ctx)
}

// HandleValidationErrors converts go-playground validator failures (and plain
// JSON decode errors) into the standard error payload.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		validationErrors := make([]iris.Map, 0, len(errs))
		for _, validationErr := range errs {
			validationErrors = append(validationErrors, iris.Map{
				"field": validationErr.Field(),
				"tag":   validationErr.Tag(),
				"value": validationErr.Param(),
			})
		}

		ctx.StopWithJSON(iris.StatusUnprocessableEntity, iris.Map{
			"success": false,
			"title":   "Validation Error",
			"message": "One or more fields failed validation.",
			"errors":  validationErrors,
		})
		return
	}

	msg := "Invalid request payload."
	if err != nil && strings.Contains(err.Error(), "EOF") {
		msg = "Request body is empty."
	}
	CreateError(iris.StatusBadRequest, "Bad Request", msg, ctx)
}
