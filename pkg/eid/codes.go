package eid

// Error codes returned by the service
const (
	CodeInvalidUserInfoType    = 1001
	CodeInvalidUserInfo        = 1002
	CodeNotAllowed             = 1004
	CodeUserDisabledService    = 1005
	CodeInvalidRegistrationLvl = 1007
	CodeUnknownRelyingParty    = 1008
	CodeUnparsableRequest      = 1010
	CodeUserNotFound           = 1012
	CodeInvalidReference       = 1100
	CodeTransactionInProgress  = 2000
)

var codeMessages = map[int]string{
	CodeInvalidUserInfoType:    "Invalid or missing userInfoType.",
	CodeInvalidUserInfo:        "Invalid or missing userInfo.",
	CodeNotAllowed:             "You are not allowed to call this method.",
	CodeUserDisabledService:    "User has disabled your service.",
	CodeInvalidRegistrationLvl: "Invalid min registration level.",
	CodeUnknownRelyingParty:    "Unknown Relying party.",
	CodeUnparsableRequest:      "JSON request cannot be parsed.",
	CodeUserNotFound:           "User with the specified userInfo does not exist in Freja eID database.",
	CodeInvalidReference:       "Invalid reference (for example, nonexistent or expired).",
	CodeTransactionInProgress:  "There is already an in progress transaction for the user.",
}

// CodeMessage returns the documented message for a service error code
func CodeMessage(code int) (string, bool) {
	msg, ok := codeMessages[code]
	return msg, ok
}

// NewServiceError builds a ServiceError for a known code with its documented message
func NewServiceError(code int) *ServiceError {
	msg, _ := CodeMessage(code)
	return &ServiceError{Code: code, Message: msg}
}
