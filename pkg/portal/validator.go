package portal

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	driver *validator.Validate
	errors map[string]string
}

func GetDefaultValidator() *Validator {
	driver := validator.New(validator.WithRequiredStructEnabled())

	registerCustomValidations(driver)

	return &Validator{
		driver: driver,
		errors: map[string]string{},
	}
}

func (v *Validator) Passes(abstract any) (bool, error) {
	err := v.driver.Struct(abstract)
	if err == nil {
		v.errors = map[string]string{}

		return true, nil
	}

	fails, ok := err.(validator.ValidationErrors)
	if !ok {
		return false, fmt.Errorf("validation failed: %w", err)
	}

	issues := map[string]string{}
	for _, fail := range fails {
		field := MakeStringable(fail.Field()).ToSnakeCase()
		issues[field] = fmt.Sprintf("failed on the [%s] rule", fail.Tag())
	}

	v.errors = issues

	return false, fmt.Errorf("invalid struct: %s", strings.Join(v.failedFields(), ", "))
}

func (v *Validator) Rejects(abstract any) (bool, error) {
	passes, err := v.Passes(abstract)

	return !passes, err
}

func (v *Validator) GetErrors() map[string]string {
	return v.errors
}

func (v *Validator) GetErrorsAsJson() string {
	seed, err := json.Marshal(v.errors)
	if err != nil {
		return "{}"
	}

	return string(seed)
}

func (v *Validator) failedFields() []string {
	fields := make([]string, 0, len(v.errors))

	for field := range v.errors {
		fields = append(fields, field)
	}

	return fields
}
