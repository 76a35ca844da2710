// Package validate wraps go-playground/validator with english messages
// and maps failures onto project errors
package validate

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	perr "orderexport/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Svc holds the validator and its translator
type Svc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	once sync.Once
	svc  *Svc

	// lower-case letters, digits, dots, dashes and underscores; must start and end alnum
	bucketRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{1,61}[a-z0-9]$`)
)

// Get returns the process-wide validator, building it on first use
func Get() *Svc {
	once.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// messages use the env-style name from the `env` tag when present
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if tag := fld.Tag.Get("env"); tag != "" && tag != "-" {
				return tag
			}
			return fld.Name
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		register(v, trans, "bucket", "{0} must be a valid bucket name", bucketName)
		register(v, trans, "folder", "{0} must not contain empty path segments", folderPath)
		shortMessage(v, trans, "min", "{0} must be at least {1}")
		shortMessage(v, trans, "max", "{0} must be at most {1}")

		svc = &Svc{Validator: v, Translator: trans}
	})
	return svc
}

func bucketName(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return bucketRe.MatchString(s) && !strings.Contains(s, "..")
}

// folderPath accepts "" or a slash separated path without empty segments once trimmed
func folderPath(fl validator.FieldLevel) bool {
	s := strings.Trim(strings.TrimSpace(fl.Field().String()), "/")
	if s == "" {
		return true
	}
	for seg := range strings.SplitSeq(s, "/") {
		if strings.TrimSpace(seg) == "" || seg == "." || seg == ".." {
			return false
		}
	}
	return true
}

func register(v *validator.Validate, trans ut.Translator, tag, msg string, fn validator.Func) {
	_ = v.RegisterValidation(tag, fn)
	shortMessage(v, trans, tag, msg)
}

func shortMessage(v *validator.Validate, trans ut.Translator, tag, msg string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error { return ut.Add(tag, msg, true) },
		func(ut ut.Translator, fe validator.FieldError) string {
			out, _ := ut.T(tag, fe.Field(), fe.Param())
			return out
		},
	)
}

// Struct validates s and returns a Config error carrying the first failing field
func Struct(s any) error {
	err := Get().Validator.Struct(s)
	if err == nil {
		return nil
	}
	field, msg := FieldAndMessage(err)
	return perr.WithField(perr.Wrap(err, perr.ErrorCodeConfig, msg), field)
}

// FieldAndMessage returns the first field and its translated message
func FieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		return "", inv.Error()
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fe.Field(), fe.Translate(Get().Translator)
	}
	return "", err.Error()
}
