// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var walletRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("wallet", validateWallet)
		_ = v.RegisterValidation("plan", validatePlan)
		_ = v.RegisterValidation("chat_role", validateChatRole)
		_ = v.RegisterValidation("bot_platform", validateBotPlatform)
		_ = v.RegisterValidation("bot_status", validateBotStatus)
		_ = v.RegisterValidation("file_status", validateFileStatus)
	}
}

func validateWallet(fl validator.FieldLevel) bool {
	return walletRegex.MatchString(fl.Field().String())
}

func validatePlan(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "starter", "pro", "enterprise":
		return true
	}
	return false
}

func validateChatRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "user", "bot":
		return true
	}
	return false
}

func validateBotPlatform(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "web", "telegram", "discord", "slack":
		return true
	}
	return false
}

func validateBotStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "inactive", "processing":
		return true
	}
	return false
}

func validateFileStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "completed", "failed":
		return true
	}
	return false
}
