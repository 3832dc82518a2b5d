package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("tz", validateTimezone)
	return v
}

// validateTimezone accepts IANA names plus "Local". The validator's own
// timezone tag rejects "Local".
func validateTimezone(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "Local" {
		return true
	}
	_, err := time.LoadLocation(name)
	return name != "" && err == nil
}

func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := logrus.ParseLevel(fl.Field().String())
	return err == nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// fieldMessage names the field by its config key, e.g. storage.path.
func fieldMessage(fe validator.FieldError) string {
	key := configKey(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_unless":
		return key + " is required unless storage.type is memory"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", key, fe.Param())
	case "loglevel":
		return fmt.Sprintf("%s %q is not a log level", key, fe.Value())
	case "tz":
		return fmt.Sprintf("%s %q is not a known timezone", key, fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
}

var keyNames = map[string]string{
	"Storage":        "storage",
	"Type":           "type",
	"Path":           "path",
	"Ledger":         "ledger",
	"DefaultCapital": "default_capital",
	"Timezone":       "timezone",
	"Log":            "log",
	"Level":          "level",
	"Format":         "format",
}

func configKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 0 && parts[0] == "Config" {
		parts = parts[1:]
	}
	for i, p := range parts {
		if k, ok := keyNames[p]; ok {
			parts[i] = k
		}
	}
	return strings.Join(parts, ".")
}
