package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/phrazzld/category-api/internal/config"
	"github.com/phrazzld/category-api/internal/domain"
)

// Violation is a single failed field constraint.
type Violation struct {
	Message string `json:"message"`
	Field   string `json:"field"`
}

// Violations lists every field that failed validation, in struct field order.
type Violations []Violation

// Fields returns the field paths of all violations.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, violation := range v {
		fields = append(fields, violation.Field)
	}
	return fields
}

// Error joins the violation messages so Violations can travel as an error.
func (v Violations) Error() string {
	messages := make([]string, 0, len(v))
	for _, violation := range v {
		messages = append(messages, violation.Message)
	}
	return strings.Join(messages, "; ")
}

// Rules holds the configurable bounds for category names, counted in runes.
type Rules struct {
	NameMinLength int
	NameMaxLength int
}

// DefaultRules returns the rules used when no configuration is supplied.
func DefaultRules() Rules {
	return Rules{
		NameMinLength: config.DefaultNameMinLength,
		NameMaxLength: config.DefaultNameMaxLength,
	}
}

// RulesFromConfig builds Rules from the validation section of the configuration.
func RulesFromConfig(cfg config.ValidationConfig) Rules {
	return Rules{
		NameMinLength: cfg.NameMinLength,
		NameMaxLength: cfg.NameMaxLength,
	}
}

// Validator validates category requests. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
	rules    Rules
}

// New creates a Validator enforcing rules.
func New(rules Rules) (*Validator, error) {
	if rules.NameMinLength < 1 || rules.NameMaxLength < rules.NameMinLength {
		return nil, fmt.Errorf("invalid name length bounds [%d, %d]", rules.NameMinLength, rules.NameMaxLength)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names rather than Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	trans, _ := ut.New(english, english).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	v := &Validator{
		validate: validate,
		trans:    trans,
		rules:    rules,
	}

	if err := v.register("notblank", notBlank, "{0} must not be blank", nil); err != nil {
		return nil, err
	}
	if err := v.register("namelen", v.nameLength, "{0} must be between {1} and {2} characters long",
		[]string{strconv.Itoa(rules.NameMinLength), strconv.Itoa(rules.NameMaxLength)}); err != nil {
		return nil, err
	}

	return v, nil
}

// Rules returns the bounds this validator enforces.
func (v *Validator) Rules() Rules {
	return v.rules
}

// Validate checks req and returns every violation. A nil result means req is valid.
func (v *Validator) Validate(req domain.CategoryRequest) Violations {
	return v.Struct(req)
}

// Struct validates any tagged struct with the same rules and translations.
func (v *Validator) Struct(s interface{}) Violations {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return Violations{{Message: err.Error()}}
	}

	violations := make(Violations, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		violations = append(violations, Violation{
			Message: fe.Translate(v.trans),
			Field:   fieldPath(fe),
		})
	}
	return violations
}

func (v *Validator) register(tag string, fn validator.Func, message string, params []string) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("failed to register %s validation: %w", tag, err)
	}

	err := v.validate.RegisterTranslation(tag, v.trans,
		func(trans ut.Translator) error {
			return trans.Add(tag, message, true)
		},
		func(trans ut.Translator, fe validator.FieldError) string {
			text, err := trans.T(tag, append([]string{fe.Field()}, params...)...)
			if err != nil {
				return fe.Error()
			}
			return text
		},
	)
	if err != nil {
		return fmt.Errorf("failed to register %s translation: %w", tag, err)
	}
	return nil
}

func (v *Validator) nameLength(fl validator.FieldLevel) bool {
	n := utf8.RuneCountInString(fl.Field().String())
	return n >= v.rules.NameMinLength && n <= v.rules.NameMaxLength
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// fieldPath drops the top-level struct name from the namespace,
// e.g. "CategoryRequest.name" becomes "name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
