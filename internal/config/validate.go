package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/ariel-frischer/taskmanager/internal/assistant"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError points at the config file and, when known, the line or
// koanf key that is wrong.
type ValidationError struct {
	FilePath string
	Line     int
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.FilePath, e.Line, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s %s", e.FilePath, e.Field, e.Message)
	default:
		return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
	}
}

// yamlLinePrefix matches the "yaml: line N: " prefix of yaml.v3 syntax errors.
var yamlLinePrefix = regexp.MustCompile(`^yaml: line (\d+): `)

// ValidateYAMLSyntax reports a syntax error in the YAML file at filePath.
// A missing or blank file is valid; defaults apply.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var node yaml.Node
	err = yaml.Unmarshal(data, &node)
	if err == nil {
		return nil
	}

	verr := &ValidationError{FilePath: filePath, Message: strings.TrimPrefix(err.Error(), "yaml: ")}
	if m := yamlLinePrefix.FindStringSubmatch(err.Error()); m != nil {
		verr.Line, _ = strconv.Atoi(m[1])
		verr.Message = err.Error()[len(m[0]):]
	}
	return verr
}

// validate reports field names by their koanf key, so messages name the
// setting as it is written in config.yml.
var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		return name
	})
	return v
}()

// ValidateConfigValues checks the merged configuration. source names where
// the values came from in the returned error.
func ValidateConfigValues(cfg *Configuration, source string) error {
	if err := validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{FilePath: source, Field: fe.Field(), Message: ruleMessage(fe)}
		}
		return &ValidationError{FilePath: source, Message: err.Error()}
	}

	for _, id := range cfg.Assistants {
		if err := assistant.Validate(id); err != nil {
			return &ValidationError{FilePath: source, Field: "assistants", Message: err.Error()}
		}
	}
	return nil
}

// ruleMessage phrases the tags used on Configuration.
func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "needs at least " + fe.Param() + " entry"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "fails " + fe.Tag()
	}
}
