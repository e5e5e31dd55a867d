package message

import "github.com/sirosfoundation/go-frejaeid/pkg/eid"

// InitiateAuthenticationRequest starts an authentication transaction
type InitiateAuthenticationRequest struct {
	UserTarget
	RelyingPartyScope
	AttributesToReturn []AttributeRequest `json:"attributesToReturn,omitempty" validate:"omitempty,dive"`
	OrgIDIssuer        string             `json:"orgIdIssuer,omitempty"`
}

// InitiateAuthenticationResponse carries the reference of a new authentication
type InitiateAuthenticationResponse struct {
	AuthRef string `json:"authRef"`
}

func (r InitiateAuthenticationResponse) Reference() string { return r.AuthRef }

// AuthenticationResultRequest fetches the result of one authentication
type AuthenticationResultRequest struct {
	RelyingPartyScope
	AuthRef string `json:"authRef" validate:"required,notblank"`
}

// NewAuthenticationResultRequest is a shorthand for a request without relying party
func NewAuthenticationResultRequest(authRef string) *AuthenticationResultRequest {
	return &AuthenticationResultRequest{AuthRef: authRef}
}

func (r AuthenticationResultRequest) Reference() string { return r.AuthRef }

// AuthenticationResult is the state of one authentication
type AuthenticationResult struct {
	AuthRef             string                `json:"authRef"`
	Status              eid.TransactionStatus `json:"status"`
	Details             string                `json:"details,omitempty"`
	RequestedAttributes *RequestedAttributes  `json:"requestedAttributes,omitempty"`
}

func (r AuthenticationResult) Reference() string                        { return r.AuthRef }
func (r AuthenticationResult) TransactionStatus() eid.TransactionStatus { return r.Status }

// AuthenticationResults is the response to a get-results call
type AuthenticationResults struct {
	AuthenticationResults []AuthenticationResult `json:"authenticationResults"`
}

// CancelAuthenticationRequest cancels an authentication in progress
type CancelAuthenticationRequest struct {
	RelyingPartyScope
	AuthRef string `json:"authRef" validate:"required,notblank"`
}

// NewCancelAuthenticationRequest is a shorthand for a request without relying party
func NewCancelAuthenticationRequest(authRef string) *CancelAuthenticationRequest {
	return &CancelAuthenticationRequest{AuthRef: authRef}
}

func (r CancelAuthenticationRequest) Reference() string { return r.AuthRef }
