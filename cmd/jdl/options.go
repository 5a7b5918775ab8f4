package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/dhamidi/jdl/jdl/parser"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("flag")
	})
	if err := v.RegisterValidation("startrule", func(fl validator.FieldLevel) bool {
		return parser.IsStartRule(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// validateOptions checks flag values gathered into a struct and reports the
// first bad one by its flag name.
func validateOptions(opts any) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return err
	}
	fe := fieldErrors[0]
	switch fe.Tag() {
	case "oneof":
		return fmt.Errorf("invalid --%s %q: must be one of %s", fe.Field(), fe.Value(), fe.Param())
	case "startrule":
		return fmt.Errorf("invalid --%s %q: %w", fe.Field(), fe.Value(), parser.ErrUnknownStartRule)
	}
	return fmt.Errorf("invalid --%s %q", fe.Field(), fe.Value())
}

func parserOptions(startRule string) []parser.Option {
	if startRule == "" {
		return nil
	}
	return []parser.Option{parser.WithStartRule(startRule)}
}

// readInput returns the content of the file named by args, or standard
// input when there is no argument or it is "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
