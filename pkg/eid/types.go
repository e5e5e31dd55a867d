package eid

// UserInfoType tells the service how to interpret userInfo
type UserInfoType string

const (
	UserInfoEmail    UserInfoType = "EMAIL"
	UserInfoPhone    UserInfoType = "PHONE"
	UserInfoSSN      UserInfoType = "SSN"
	UserInfoInferred UserInfoType = "INFERRED"
	UserInfoOrgID    UserInfoType = "ORG_ID"
)

// InferredUserInfo is the placeholder sent as userInfo when the type is INFERRED
const InferredUserInfo = "N/A"

// RegistrationLevel is the minimum registration level the end user must hold
type RegistrationLevel string

const (
	RegistrationBasic    RegistrationLevel = "BASIC"
	RegistrationExtended RegistrationLevel = "EXTENDED"
	RegistrationPlus     RegistrationLevel = "PLUS"
)

// AttributeToReturn names a user attribute the relying party wants back
type AttributeToReturn string

const (
	AttributeBasicUserInfo            AttributeToReturn = "BASIC_USER_INFO"
	AttributeEmailAddress             AttributeToReturn = "EMAIL_ADDRESS"
	AttributeAllEmailAddresses        AttributeToReturn = "ALL_EMAIL_ADDRESSES"
	AttributeAllPhoneNumbers          AttributeToReturn = "ALL_PHONE_NUMBERS"
	AttributeDateOfBirth              AttributeToReturn = "DATE_OF_BIRTH"
	AttributeAge                      AttributeToReturn = "AGE"
	AttributeAddresses                AttributeToReturn = "ADDRESSES"
	AttributeSSN                      AttributeToReturn = "SSN"
	AttributeCustomIdentifier         AttributeToReturn = "CUSTOM_IDENTIFIER"
	AttributeIntegratorSpecificUserID AttributeToReturn = "INTEGRATOR_SPECIFIC_USER_ID"
	AttributeRelyingPartyUserID       AttributeToReturn = "RELYING_PARTY_USER_ID"
	AttributeOrganisationID           AttributeToReturn = "ORGANISATION_ID"
	AttributeRegistrationLevel        AttributeToReturn = "REGISTRATION_LEVEL"
	AttributePhoto                    AttributeToReturn = "PHOTO"
	AttributeCovidCertificates        AttributeToReturn = "COVID_CERTIFICATES"
	AttributeDocument                 AttributeToReturn = "DOCUMENT"
)

// Country is an ISO 3166-1 alpha-2 code accepted for SSN user info
type Country string

const (
	CountrySweden  Country = "SE"
	CountryNorway  Country = "NO"
	CountryDenmark Country = "DK"
	CountryFinland Country = "FI"
)

// SignatureType selects the signature format
type SignatureType string

const (
	SignatureSimple   SignatureType = "SIMPLE"
	SignatureExtended SignatureType = "EXTENDED"
)

// DataToSignType describes what dataToSign carries
type DataToSignType string

const (
	DataToSignSimpleText   DataToSignType = "SIMPLE_UTF8_TEXT"
	DataToSignExtendedText DataToSignType = "EXTENDED_UTF8_TEXT"
)

// ResultsScope is the includePrevious value of a get-results request
type ResultsScope string

const (
	ResultsAll ResultsScope = "ALL"
)
