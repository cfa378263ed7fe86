package model

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("hn", validateHN)
	}
}

// validateHN accepts one to seven digits. Zero-padding to the stored
// seven-digit form happens after binding, not here.
func validateHN(fl validator.FieldLevel) bool {
	hn := strings.TrimSpace(fl.Field().String())
	if hn == "" || len(hn) > hnLength {
		return false
	}
	for _, r := range hn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
