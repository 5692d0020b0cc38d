package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/volatiletech/null/v8"
)

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredIfTag   = "required_if"
	requiredText    = "this field is required"

	oneOfTag  = "oneof"
	oneOfText = "{0} must be one of [{1}]"

	datetimeTag  = "datetime"
	datetimeText = "{0} does not match the {1} format"
)

// ValidatorInit registers the validations & translations of one domain package.
type ValidatorInit func(validate *validator.Validate, translator ut.Translator)

var validatorInits []ValidatorInit

// RegisterValidatorInit adds fn to the inits run by InitValidators.
// It is meant to be called from a package's init function.
func RegisterValidatorInit(fn ValidatorInit) {
	validatorInits = append(validatorInits, fn)
}

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// NewValidator returns a validator initialized with InitValidators.
func NewValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	InitValidators(validate, translator)
	return validate
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredIfTag, requiredText, true)

	registerParamTranslation(validate, translator, oneOfTag, oneOfText, func(p string) string {
		return strings.ReplaceAll(p, " ", ", ")
	})
	registerParamTranslation(validate, translator, datetimeTag, datetimeText, nil)

	// nullable strings are validated as their value, or as empty when null
	validate.RegisterCustomTypeFunc(nullStringValue, null.String{})

	for _, fn := range validatorInits {
		fn(validate, translator)
	}
}

// registerParamTranslation registers (overriding) a translation whose text also shows the tag's param.
func registerParamTranslation(
	validate *validator.Validate,
	translator ut.Translator,
	tag, text string,
	formatParam func(string) string,
) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			param := fe.Param()
			if formatParam != nil {
				param = formatParam(param)
			}
			s, _ := t.T(tag, fe.Field(), param)
			return s
		},
	)
}

func nullStringValue(field reflect.Value) interface{} {
	if ns, ok := field.Interface().(null.String); ok && ns.Valid {
		return ns.String
	}
	return ""
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// TranslateErrors turns validator.ValidationErrors into a {field: message} map.
func TranslateErrors(errs validator.ValidationErrors, translator ut.Translator) map[string]string {
	fldErrs := make(map[string]string, len(errs))
	for _, vErr := range errs {
		fldErrs[vErr.Field()] = vErr.Translate(translator)
	}
	return fldErrs
}

// Custom Global Validators

// notBlankValidation rejects strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}
