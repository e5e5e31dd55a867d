package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

// Expiry bounds accepted for sign and organisation ID transactions
const (
	MinExpiry = 2 * time.Minute
	MaxExpiry = 30 * 24 * time.Hour
)

var knownCountries = map[eid.Country]bool{
	eid.CountrySweden:  true,
	eid.CountryNorway:  true,
	eid.CountryDenmark: true,
	eid.CountryFinland: true,
}

var knownAttributes = map[eid.AttributeToReturn]bool{
	eid.AttributeBasicUserInfo:            true,
	eid.AttributeEmailAddress:             true,
	eid.AttributeAllEmailAddresses:        true,
	eid.AttributeAllPhoneNumbers:          true,
	eid.AttributeDateOfBirth:              true,
	eid.AttributeAge:                      true,
	eid.AttributeAddresses:                true,
	eid.AttributeSSN:                      true,
	eid.AttributeCustomIdentifier:         true,
	eid.AttributeIntegratorSpecificUserID: true,
	eid.AttributeRelyingPartyUserID:       true,
	eid.AttributeOrganisationID:           true,
	eid.AttributeRegistrationLevel:        true,
	eid.AttributePhoto:                    true,
	eid.AttributeCovidCertificates:        true,
	eid.AttributeDocument:                 true,
}

// Validator validates request payloads. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Validator
type Option func(*Validator)

// WithLogger logs rejected requests at debug level
func WithLogger(logger *zap.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithClock sets the time source used for expiry checks
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// New creates a Validator with all rules registered
func New(opts ...Option) *Validator {
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.validate.RegisterTagNameFunc(wireName)
	// Registration only fails for an empty tag name.
	_ = v.validate.RegisterValidation("notblank", notBlank)
	_ = v.validate.RegisterValidation("attribute", knownAttribute)

	v.validate.RegisterStructValidation(v.validateUserTarget, message.UserTarget{})
	v.validate.RegisterStructValidation(v.validateSignRequest, message.InitiateSignRequest{})
	v.validate.RegisterStructValidation(v.validateAddOrganisationIDRequest, message.InitiateAddOrganisationIDRequest{})

	return v
}

// Validate checks req for the given transaction kind and context. It returns
// nil or an *eid.ValidationError listing every violated field.
func (v *Validator) Validate(kind endpoint.Kind, txCtx eid.TransactionContext, req any) error {
	if req == nil || (reflect.ValueOf(req).Kind() == reflect.Pointer && reflect.ValueOf(req).IsNil()) {
		return eid.NewValidationError("request", "required", "request cannot be nil")
	}

	var fields []eid.FieldError

	if err := v.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return eid.NewValidationError("request", "struct", err.Error())
		}
		for _, fe := range verrs {
			fields = append(fields, eid.FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: describe(fe),
			})
		}
	}

	fields = append(fields, scopeRules(kind, txCtx, req)...)

	if len(fields) == 0 {
		return nil
	}

	v.logger.Debug("request rejected",
		zap.String("kind", string(kind)),
		zap.String("request", fmt.Sprintf("%T", req)),
		zap.Int("violations", len(fields)))

	return &eid.ValidationError{Fields: fields}
}

// MaxWait checks a polling budget
func MaxWait(seconds int) error {
	if seconds <= 0 {
		return eid.NewValidationError("maxWaitSeconds", "gt", fmt.Sprintf("must be greater than 0, got %d", seconds))
	}
	return nil
}

func (v *Validator) validateUserTarget(sl validator.StructLevel) {
	t := sl.Current().Interface().(message.UserTarget)

	switch t.UserInfoType {
	case eid.UserInfoInferred:
		if t.UserInfo != "" && t.UserInfo != eid.InferredUserInfo {
			sl.ReportError(t.UserInfo, "userInfo", "UserInfo", "inferred", "")
		}
	case eid.UserInfoEmail:
		if sl.Validator().Var(t.UserInfo, "required,email") != nil {
			sl.ReportError(t.UserInfo, "userInfo", "UserInfo", "email", "")
		}
	case eid.UserInfoPhone:
		if sl.Validator().Var(t.UserInfo, "required,e164") != nil {
			sl.ReportError(t.UserInfo, "userInfo", "UserInfo", "e164", "")
		}
	case eid.UserInfoSSN:
		var ssn message.SSNUserInfo
		if json.Unmarshal([]byte(t.UserInfo), &ssn) != nil || strings.TrimSpace(ssn.SSN) == "" || !knownCountries[ssn.Country] {
			sl.ReportError(t.UserInfo, "userInfo", "UserInfo", "ssn", "")
		}
	case eid.UserInfoOrgID:
		if strings.TrimSpace(t.UserInfo) == "" {
			sl.ReportError(t.UserInfo, "userInfo", "UserInfo", "required", "")
		}
	}
}

func (v *Validator) validateSignRequest(sl validator.StructLevel) {
	r := sl.Current().Interface().(message.InitiateSignRequest)

	switch r.SignatureType {
	case eid.SignatureSimple:
		if r.DataToSignType != eid.DataToSignSimpleText {
			sl.ReportError(r.DataToSignType, "dataToSignType", "DataToSignType", "signaturetype", string(r.SignatureType))
		}
	case eid.SignatureExtended:
		if r.DataToSignType != eid.DataToSignExtendedText {
			sl.ReportError(r.DataToSignType, "dataToSignType", "DataToSignType", "signaturetype", string(r.SignatureType))
		}
		if r.DataToSign.BinaryData == "" {
			sl.ReportError(r.DataToSign.BinaryData, "binaryData", "BinaryData", "required", "")
		}
	}

	if r.DataToSign.BinaryData != "" && sl.Validator().Var(r.DataToSign.BinaryData, "base64") != nil {
		sl.ReportError(r.DataToSign.BinaryData, "binaryData", "BinaryData", "base64", "")
	}
	if r.DataToSign.Text != "" && sl.Validator().Var(r.DataToSign.Text, "base64") != nil {
		sl.ReportError(r.DataToSign.Text, "text", "Text", "base64", "")
	}

	v.checkExpiry(sl, r.Expiry)
}

func (v *Validator) validateAddOrganisationIDRequest(sl validator.StructLevel) {
	r := sl.Current().Interface().(message.InitiateAddOrganisationIDRequest)
	v.checkExpiry(sl, r.Expiry)
}

func (v *Validator) checkExpiry(sl validator.StructLevel, expiry int64) {
	if expiry == 0 {
		return
	}
	at := time.UnixMilli(expiry)
	now := v.now()
	if at.Before(now.Add(MinExpiry)) || at.After(now.Add(MaxExpiry)) {
		sl.ReportError(expiry, "expiry", "Expiry", "expiry", "")
	}
}

// scopeRules applies the rules that depend on the transaction kind or context
func scopeRules(kind endpoint.Kind, txCtx eid.TransactionContext, req any) []eid.FieldError {
	var (
		target  *message.UserTarget
		attrs   []message.AttributeRequest
		issuer  string
		fields  []eid.FieldError
		addsOrg bool
	)

	switch r := req.(type) {
	case *message.InitiateAuthenticationRequest:
		target, attrs, issuer = &r.UserTarget, r.AttributesToReturn, r.OrgIDIssuer
	case *message.InitiateSignRequest:
		target, attrs, issuer = &r.UserTarget, r.AttributesToReturn, r.OrgIDIssuer
	case *message.InitiateAddOrganisationIDRequest:
		target, attrs = &r.UserTarget, r.AttributesToReturn
		addsOrg = true
	default:
		return nil
	}

	if target.UserInfoType == eid.UserInfoInferred && kind != endpoint.KindAuthentication {
		fields = append(fields, eid.FieldError{Field: "userInfoType", Rule: "inferred",
			Message: fmt.Sprintf("INFERRED is not supported for %s transactions", kind)})
	}
	if target.UserInfoType == eid.UserInfoOrgID && txCtx != eid.ContextOrganisational {
		fields = append(fields, eid.FieldError{Field: "userInfoType", Rule: "organisational",
			Message: "ORG_ID requires the organisational transaction context"})
	}

	seen := make(map[eid.AttributeToReturn]bool, len(attrs))
	hasOrgID := false
	for _, a := range attrs {
		if seen[a.Attribute] {
			fields = append(fields, eid.FieldError{Field: "attributesToReturn", Rule: "unique",
				Message: fmt.Sprintf("%s requested more than once", a.Attribute)})
		}
		seen[a.Attribute] = true
		if a.Attribute == eid.AttributeOrganisationID {
			hasOrgID = true
		}
	}

	if addsOrg {
		if hasOrgID {
			fields = append(fields, eid.FieldError{Field: "attributesToReturn", Rule: "attribute",
				Message: "ORGANISATION_ID cannot be requested while adding an organisation ID"})
		}
		return fields
	}

	switch {
	case hasOrgID && strings.TrimSpace(issuer) == "":
		fields = append(fields, eid.FieldError{Field: "orgIdIssuer", Rule: "required_with",
			Message: "orgIdIssuer is required when ORGANISATION_ID is requested"})
	case !hasOrgID && issuer != "":
		fields = append(fields, eid.FieldError{Field: "orgIdIssuer", Rule: "excluded_without",
			Message: "orgIdIssuer is only allowed together with the ORGANISATION_ID attribute"})
	}

	return fields
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func knownAttribute(fl validator.FieldLevel) bool {
	return knownAttributes[eid.AttributeToReturn(fl.Field().String())]
}

// wireName reports fields by their JSON name
func wireName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name != "" && name != "-" {
		return name
	}
	runes := []rune(strings.TrimSuffix(fld.Name, "ID"))
	if len(runes) == 0 {
		return fld.Name
	}
	runes[0] = unicode.ToLower(runes[0])
	out := string(runes)
	if strings.HasSuffix(fld.Name, "ID") {
		out += "Id"
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "cannot be empty"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fmt.Sprint(fe.Value()))
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a phone number in E.164 format"
	case "ssn":
		return "must be an SSN with a supported country"
	case "inferred":
		return fmt.Sprintf("must be empty or %q for INFERRED", eid.InferredUserInfo)
	case "attribute":
		return fmt.Sprintf("unknown attribute %q", fmt.Sprint(fe.Value()))
	case "signaturetype":
		return fmt.Sprintf("does not match signatureType %s", fe.Param())
	case "expiry":
		return fmt.Sprintf("must be between %s and %s from now", MinExpiry, MaxExpiry)
	case "base64":
		return "must be base64 encoded"
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}
