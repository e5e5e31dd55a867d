package validation

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *Validator {
	return New(WithClock(func() time.Time { return fixedNow }))
}

func requireFields(t *testing.T, err error, fields ...string) *eid.ValidationError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, eid.ErrValidation))

	var verr *eid.ValidationError
	require.ErrorAs(t, err, &verr)
	for _, f := range fields {
		assert.True(t, verr.HasField(f), "expected violation on %q, got %v", f, verr.Fields)
	}
	return verr
}

func TestValidate_NilRequest(t *testing.T) {
	v := newTestValidator()

	requireFields(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, nil), "request")

	var req *message.AuthenticationResultRequest
	requireFields(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, req), "request")
}

func TestValidate_References(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name  string
		kind  endpoint.Kind
		req   any
		field string
	}{
		{"auth result", endpoint.KindAuthentication, message.NewAuthenticationResultRequest(""), "authRef"},
		{"auth cancel blank", endpoint.KindAuthentication, message.NewCancelAuthenticationRequest("   "), "authRef"},
		{"sign result", endpoint.KindSignature, message.NewSignResultRequest(""), "signRef"},
		{"sign cancel", endpoint.KindSignature, message.NewCancelSignRequest(""), "signRef"},
		{"org id result", endpoint.KindOrganisationID, message.NewOrganisationIDResultRequest(""), "orgIdRef"},
		{"org id cancel", endpoint.KindOrganisationID, message.NewCancelAddOrganisationIDRequest(""), "orgIdRef"},
		{"org id delete", endpoint.KindOrganisationID, message.NewDeleteOrganisationIDRequest(""), "identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireFields(t, v.Validate(tt.kind, eid.ContextPersonal, tt.req), tt.field)
		})
	}

	assert.NoError(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, message.NewSignResultRequest("123456789123456789")))
}

func TestValidate_RelyingPartyBlank(t *testing.T) {
	v := newTestValidator()

	req := &message.SignResultRequest{SignRef: "ref", RelyingPartyScope: message.RelyingPartyScope{RelyingPartyID: "  "}}
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, req), "relyingPartyId")

	req.RelyingPartyID = "relyingPartyId"
	assert.NoError(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, req))
}

func TestValidate_UserTarget(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name   string
		target message.UserTarget
		valid  bool
	}{
		{"email", message.EmailUser("joe@example.com"), true},
		{"bad email", message.EmailUser("not-an-email"), false},
		{"empty email", message.EmailUser(""), false},
		{"phone", message.PhoneUser("+46701234567"), true},
		{"bad phone", message.PhoneUser("0701234567"), false},
		{"ssn", message.SSNUser(eid.CountrySweden, "198710180000"), true},
		{"ssn unknown country", message.SSNUser("US", "123"), false},
		{"ssn empty", message.SSNUser(eid.CountryNorway, ""), false},
		{"ssn not json", message.UserTarget{UserInfoType: eid.UserInfoSSN, UserInfo: "1987", MinRegistrationLevel: eid.RegistrationExtended}, false},
		{"inferred", message.InferredUser(), true},
		{"inferred with info", message.UserTarget{UserInfoType: eid.UserInfoInferred, UserInfo: "joe", MinRegistrationLevel: eid.RegistrationBasic}, false},
		{"bad level", message.EmailUser("joe@example.com").WithMinRegistrationLevel("GOLD"), false},
		{"unknown type", message.UserTarget{UserInfoType: "FAX", UserInfo: "1", MinRegistrationLevel: eid.RegistrationBasic}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, &message.InitiateAuthenticationRequest{UserTarget: tt.target})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, eid.ErrValidation)
			}
		})
	}
}

func TestValidate_InferredOnlyForAuthentication(t *testing.T) {
	v := newTestValidator()

	sign := message.NewSimpleSignRequest(message.InferredUser(), "Title", "text")
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, sign), "userInfoType")

	auth := &message.InitiateAuthenticationRequest{UserTarget: message.InferredUser()}
	assert.NoError(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, auth))
}

func TestValidate_OrgIDUserInfoTypeNeedsOrganisationalContext(t *testing.T) {
	v := newTestValidator()
	req := &message.InitiateAuthenticationRequest{UserTarget: message.OrgIDUser("emp-1")}

	requireFields(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, req), "userInfoType")
	assert.NoError(t, v.Validate(endpoint.KindAuthentication, eid.ContextOrganisational, req))
}

func TestValidate_Attributes(t *testing.T) {
	v := newTestValidator()

	req := &message.InitiateAuthenticationRequest{
		UserTarget:         message.EmailUser("joe@example.com"),
		AttributesToReturn: message.Attributes(eid.AttributeBasicUserInfo, "SHOE_SIZE"),
	}
	verr := requireFields(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, req), "attribute")
	assert.Equal(t, "attribute", verr.Fields[0].Rule)

	req.AttributesToReturn = message.Attributes(eid.AttributeSSN, eid.AttributeSSN)
	requireFields(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, req), "attributesToReturn")

	req.AttributesToReturn = message.Attributes(eid.AttributeOrganisationID)
	requireFields(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, req), "orgIdIssuer")

	req.OrgIDIssuer = "issuer"
	assert.NoError(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, req))

	req.AttributesToReturn = nil
	requireFields(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, req), "orgIdIssuer")
}

func TestValidate_SignRequest(t *testing.T) {
	v := newTestValidator()
	user := message.EmailUser("joe@example.com")

	assert.NoError(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, message.NewSimpleSignRequest(user, "Agreement", "I agree")))
	assert.NoError(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, message.NewExtendedSignRequest(user, "Agreement", "I agree", []byte("pdf"))))

	mismatched := message.NewSimpleSignRequest(user, "Agreement", "I agree")
	mismatched.DataToSignType = eid.DataToSignExtendedText
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, mismatched), "dataToSignType")

	noBinary := message.NewExtendedSignRequest(user, "Agreement", "I agree", nil)
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, noBinary), "binaryData")

	missing := &message.InitiateSignRequest{UserTarget: user}
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, missing),
		"title", "text", "dataToSignType", "signatureType")

	rawText := message.NewSimpleSignRequest(user, "Agreement", "I agree")
	rawText.DataToSign.Text = "not base64!"
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, rawText), "text")

	push := message.NewSimpleSignRequest(user, "Agreement", "I agree")
	push.PushNotification = &message.PushNotification{Title: "Sign"}
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, push), "text")
}

func TestValidate_Expiry(t *testing.T) {
	v := newTestValidator()
	req := message.NewSimpleSignRequest(message.EmailUser("joe@example.com"), "Agreement", "I agree")

	req.Expiry = fixedNow.Add(time.Hour).UnixMilli()
	assert.NoError(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, req))

	req.Expiry = fixedNow.Add(time.Minute).UnixMilli()
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, req), "expiry")

	req.Expiry = fixedNow.Add(31 * 24 * time.Hour).UnixMilli()
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, req), "expiry")

	req.Expiry = -1
	requireFields(t, v.Validate(endpoint.KindSignature, eid.ContextPersonal, req), "expiry")
}

func TestValidate_AddOrganisationIDRequest(t *testing.T) {
	v := newTestValidator()

	valid := func() *message.InitiateAddOrganisationIDRequest {
		return &message.InitiateAddOrganisationIDRequest{
			UserTarget: message.EmailUser("joe@example.com"),
			OrganisationID: message.OrganisationID{
				Title:          "Example Org",
				IdentifierName: "Employee number",
				Identifier:     "emp-1",
				AdditionalAttributes: []message.OrganisationIDAttribute{
					{Key: "dept", FriendlyName: "Department", Value: "R&D"},
				},
			},
			Expiry: fixedNow.Add(7 * 24 * time.Hour).UnixMilli(),
		}
	}

	assert.NoError(t, v.Validate(endpoint.KindOrganisationID, eid.ContextOrganisational, valid()))

	req := valid()
	req.OrganisationID.Title = "A title that is far too long for the app"
	requireFields(t, v.Validate(endpoint.KindOrganisationID, eid.ContextOrganisational, req), "title")

	req = valid()
	req.OrganisationID.Identifier = ""
	req.OrganisationID.AdditionalAttributes[0].FriendlyName = "A friendly name longer than thirty"
	requireFields(t, v.Validate(endpoint.KindOrganisationID, eid.ContextOrganisational, req), "identifier", "friendlyName")

	req = valid()
	req.AttributesToReturn = message.Attributes(eid.AttributeOrganisationID)
	requireFields(t, v.Validate(endpoint.KindOrganisationID, eid.ContextOrganisational, req), "attributesToReturn")

	req = valid()
	req.UserTarget = message.InferredUser()
	requireFields(t, v.Validate(endpoint.KindOrganisationID, eid.ContextOrganisational, req), "userInfoType")
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	v := newTestValidator()

	req := &message.InitiateAuthenticationRequest{}
	verr := requireFields(t, v.Validate(endpoint.KindAuthentication, eid.ContextPersonal, req),
		"userInfoType", "minRegistrationLevel")
	assert.GreaterOrEqual(t, len(verr.Fields), 2)
}

func TestMaxWait(t *testing.T) {
	assert.NoError(t, MaxWait(1))
	requireFields(t, MaxWait(0), "maxWaitSeconds")
	requireFields(t, MaxWait(-5), "maxWaitSeconds")
}

func TestWireName(t *testing.T) {
	type sample struct {
		AuthRef        string `json:"authRef"`
		RelyingPartyID string `json:"-"`
		Plain          string
	}
	typ := reflectTypeOf(sample{})

	assert.Equal(t, "authRef", wireName(typ.Field(0)))
	assert.Equal(t, "relyingPartyId", wireName(typ.Field(1)))
	assert.Equal(t, "plain", wireName(typ.Field(2)))
}

func reflectTypeOf(v any) reflect.Type { return reflect.TypeOf(v) }
