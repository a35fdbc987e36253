package validator

import (
	"ctchen222/connect-n/internal/game"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// mark accepts a player mark, "X" or "O".
	if err := validate.RegisterValidation("mark", validMark); err != nil {
		slog.Error("Failed to register mark validation", "error", err)
	}
	// loglevel accepts the level names understood by the logger.
	if err := validate.RegisterValidation("loglevel", validLogLevel); err != nil {
		slog.Error("Failed to register loglevel validation", "error", err)
	}
}

func GetValidator() *validator.Validate {
	return validate
}

func validMark(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	return game.PlayerMark(fl.Field().String()).Valid()
}

func validLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
