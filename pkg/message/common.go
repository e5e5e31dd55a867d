package message

import (
	"encoding/json"
	"time"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
)

// Referencer is implemented by every payload that carries a transaction reference
type Referencer interface {
	Reference() string
}

// Resulter is implemented by get-result responses
type Resulter interface {
	Referencer
	TransactionStatus() eid.TransactionStatus
}

// RelyingPartyScoped is implemented by requests that may name a relying party
type RelyingPartyScoped interface {
	RelyingParty() string
}

// RelyingPartyScope carries the optional relying party id of a request
type RelyingPartyScope struct {
	RelyingPartyID string `json:"-" validate:"omitempty,notblank"`
}

// RelyingParty returns the relying party id, or "" when none is set
func (s RelyingPartyScope) RelyingParty() string {
	return s.RelyingPartyID
}

// UserTarget identifies the end user a transaction is addressed to
type UserTarget struct {
	UserInfoType         eid.UserInfoType      `json:"userInfoType" validate:"required,oneof=EMAIL PHONE SSN INFERRED ORG_ID"`
	UserInfo             string                `json:"userInfo"`
	MinRegistrationLevel eid.RegistrationLevel `json:"minRegistrationLevel" validate:"required,oneof=BASIC EXTENDED PLUS"`
}

// WithMinRegistrationLevel returns a copy of t requiring the given level
func (t UserTarget) WithMinRegistrationLevel(level eid.RegistrationLevel) UserTarget {
	t.MinRegistrationLevel = level
	return t
}

// EmailUser targets the user registered with the given email address
func EmailUser(email string) UserTarget {
	return UserTarget{UserInfoType: eid.UserInfoEmail, UserInfo: email, MinRegistrationLevel: eid.RegistrationBasic}
}

// PhoneUser targets the user registered with the given phone number
func PhoneUser(phone string) UserTarget {
	return UserTarget{UserInfoType: eid.UserInfoPhone, UserInfo: phone, MinRegistrationLevel: eid.RegistrationBasic}
}

// SSNUser targets the user with the given social security number. The SSN
// type needs at least the EXTENDED registration level.
func SSNUser(country eid.Country, ssn string) UserTarget {
	info, _ := json.Marshal(SSNUserInfo{Country: country, SSN: ssn})
	return UserTarget{UserInfoType: eid.UserInfoSSN, UserInfo: string(info), MinRegistrationLevel: eid.RegistrationExtended}
}

// InferredUser lets the user be identified by scanning a QR code
func InferredUser() UserTarget {
	return UserTarget{UserInfoType: eid.UserInfoInferred, UserInfo: eid.InferredUserInfo, MinRegistrationLevel: eid.RegistrationBasic}
}

// OrgIDUser targets the user holding the given organisation ID
func OrgIDUser(identifier string) UserTarget {
	return UserTarget{UserInfoType: eid.UserInfoOrgID, UserInfo: identifier, MinRegistrationLevel: eid.RegistrationBasic}
}

// SSNUserInfo is the userInfo payload of the SSN user info type
type SSNUserInfo struct {
	Country eid.Country `json:"country"`
	SSN     string      `json:"ssn"`
}

// AttributeRequest asks for one attribute in the result
type AttributeRequest struct {
	Attribute eid.AttributeToReturn `json:"attribute" validate:"required,attribute"`
}

// Attributes converts attribute names into the wire representation
func Attributes(attrs ...eid.AttributeToReturn) []AttributeRequest {
	out := make([]AttributeRequest, len(attrs))
	for i, a := range attrs {
		out[i] = AttributeRequest{Attribute: a}
	}
	return out
}

// PushNotification is the text shown in the push notification
type PushNotification struct {
	Title string `json:"title" validate:"required,max=256"`
	Text  string `json:"text" validate:"required,max=1024"`
}

// ExpiryAfter converts a delay into the millisecond epoch format the service expects
func ExpiryAfter(d time.Duration) int64 {
	return time.Now().Add(d).UnixMilli()
}

// BasicUserInfo is the user's name as registered
type BasicUserInfo struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

// RequestedAttributes holds the attributes returned with an approved transaction
type RequestedAttributes struct {
	BasicUserInfo            *BasicUserInfo `json:"basicUserInfo,omitempty"`
	EmailAddress             string         `json:"emailAddress,omitempty"`
	DateOfBirth              string         `json:"dateOfBirth,omitempty"`
	Age                      int            `json:"age,omitempty"`
	SSN                      *SSNUserInfo   `json:"ssn,omitempty"`
	CustomIdentifier         string         `json:"customIdentifier,omitempty"`
	IntegratorSpecificUserID string         `json:"integratorSpecificUserId,omitempty"`
	RelyingPartyUserID       string         `json:"relyingPartyUserId,omitempty"`
	OrganisationIDIdentifier string         `json:"organisationIdIdentifier,omitempty"`
	RegistrationLevel        string         `json:"registrationLevel,omitempty"`
}

// ResultsRequest asks for all results of the relying party that are not yet fetched
type ResultsRequest struct {
	RelyingPartyScope
	IncludePrevious eid.ResultsScope `json:"includePrevious" validate:"required,oneof=ALL"`
}

// NewResultsRequest returns a get-results request covering all previous results
func NewResultsRequest() *ResultsRequest {
	return &ResultsRequest{IncludePrevious: eid.ResultsAll}
}
