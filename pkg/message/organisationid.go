package message

import "github.com/sirosfoundation/go-frejaeid/pkg/eid"

// OrganisationIDAttribute is an extra key/value shown with an organisation ID
type OrganisationIDAttribute struct {
	Key          string `json:"key" validate:"required"`
	FriendlyName string `json:"friendlyName" validate:"required,max=30"`
	Value        string `json:"value" validate:"required,max=128"`
}

// OrganisationID is the identity an organisation attaches to a user
type OrganisationID struct {
	Title                string                    `json:"title" validate:"required,max=22"`
	IdentifierName       string                    `json:"identifierName" validate:"required,max=22"`
	Identifier           string                    `json:"identifier" validate:"required,notblank"`
	AdditionalAttributes []OrganisationIDAttribute `json:"additionalAttributes,omitempty" validate:"omitempty,dive"`
}

// InitiateAddOrganisationIDRequest starts attaching an organisation ID to a user
type InitiateAddOrganisationIDRequest struct {
	UserTarget
	RelyingPartyScope
	OrganisationID     OrganisationID     `json:"organisationId"`
	Expiry             int64              `json:"expiry,omitempty" validate:"gte=0"`
	AttributesToReturn []AttributeRequest `json:"attributesToReturn,omitempty" validate:"omitempty,dive"`
}

// InitiateAddOrganisationIDResponse carries the reference of a new add transaction
type InitiateAddOrganisationIDResponse struct {
	OrgIDRef string `json:"orgIdRef"`
}

func (r InitiateAddOrganisationIDResponse) Reference() string { return r.OrgIDRef }

// OrganisationIDResultRequest fetches the result of one add transaction
type OrganisationIDResultRequest struct {
	RelyingPartyScope
	OrgIDRef string `json:"orgIdRef" validate:"required,notblank"`
}

// NewOrganisationIDResultRequest is a shorthand for a request without relying party
func NewOrganisationIDResultRequest(orgIDRef string) *OrganisationIDResultRequest {
	return &OrganisationIDResultRequest{OrgIDRef: orgIDRef}
}

func (r OrganisationIDResultRequest) Reference() string { return r.OrgIDRef }

// OrganisationIDResult is the state of one add transaction
type OrganisationIDResult struct {
	OrgIDRef string                `json:"orgIdRef"`
	Status   eid.TransactionStatus `json:"status"`
	Details  string                `json:"details,omitempty"`
}

func (r OrganisationIDResult) Reference() string                        { return r.OrgIDRef }
func (r OrganisationIDResult) TransactionStatus() eid.TransactionStatus { return r.Status }

// CancelAddOrganisationIDRequest cancels an add transaction in progress
type CancelAddOrganisationIDRequest struct {
	RelyingPartyScope
	OrgIDRef string `json:"orgIdRef" validate:"required,notblank"`
}

// NewCancelAddOrganisationIDRequest is a shorthand for a request without relying party
func NewCancelAddOrganisationIDRequest(orgIDRef string) *CancelAddOrganisationIDRequest {
	return &CancelAddOrganisationIDRequest{OrgIDRef: orgIDRef}
}

func (r CancelAddOrganisationIDRequest) Reference() string { return r.OrgIDRef }

// DeleteOrganisationIDRequest detaches an organisation ID from its user
type DeleteOrganisationIDRequest struct {
	RelyingPartyScope
	Identifier string `json:"identifier" validate:"required,notblank"`
}

// NewDeleteOrganisationIDRequest is a shorthand for a request without relying party
func NewDeleteOrganisationIDRequest(identifier string) *DeleteOrganisationIDRequest {
	return &DeleteOrganisationIDRequest{Identifier: identifier}
}

func (r DeleteOrganisationIDRequest) Reference() string { return r.Identifier }

// AllOrganisationIDUsersRequest lists every user holding one of the organisation's IDs
type AllOrganisationIDUsersRequest struct {
	RelyingPartyScope
}

// OrganisationIDUserInfo describes one user holding an organisation ID
type OrganisationIDUserInfo struct {
	OrganisationID    OrganisationID `json:"organisationId"`
	SSN               *SSNUserInfo   `json:"ssn,omitempty"`
	RegistrationState string         `json:"registrationState,omitempty"`
}

// AllOrganisationIDUsers is the response to a get-all-users call
type AllOrganisationIDUsers struct {
	UserInfos []OrganisationIDUserInfo `json:"userInfos"`
}
