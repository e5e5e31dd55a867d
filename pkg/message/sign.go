package message

import (
	"encoding/base64"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
)

// DataToSign is the content the user signs. Both fields are base64 on the wire.
type DataToSign struct {
	Text       string `json:"text" validate:"required"`
	BinaryData string `json:"binaryData,omitempty"`
}

// NewDataToSign encodes a text and optional binary data for signing
func NewDataToSign(text string, binary []byte) DataToSign {
	d := DataToSign{Text: base64.StdEncoding.EncodeToString([]byte(text))}
	if len(binary) > 0 {
		d.BinaryData = base64.StdEncoding.EncodeToString(binary)
	}
	return d
}

// InitiateSignRequest starts a signature transaction
type InitiateSignRequest struct {
	UserTarget
	RelyingPartyScope
	Title              string             `json:"title" validate:"required,max=128"`
	PushNotification   *PushNotification  `json:"pushNotification,omitempty"`
	Expiry             int64              `json:"expiry,omitempty" validate:"gte=0"`
	DataToSignType     eid.DataToSignType `json:"dataToSignType" validate:"required,oneof=SIMPLE_UTF8_TEXT EXTENDED_UTF8_TEXT"`
	DataToSign         DataToSign         `json:"dataToSign"`
	SignatureType      eid.SignatureType  `json:"signatureType" validate:"required,oneof=SIMPLE EXTENDED"`
	AttributesToReturn []AttributeRequest `json:"attributesToReturn,omitempty" validate:"omitempty,dive"`
	OrgIDIssuer        string             `json:"orgIdIssuer,omitempty"`
}

// NewSimpleSignRequest builds a simple text signature request
func NewSimpleSignRequest(user UserTarget, title, text string) *InitiateSignRequest {
	return &InitiateSignRequest{
		UserTarget:     user,
		Title:          title,
		DataToSignType: eid.DataToSignSimpleText,
		DataToSign:     NewDataToSign(text, nil),
		SignatureType:  eid.SignatureSimple,
	}
}

// NewExtendedSignRequest builds a signature over text and binary data
func NewExtendedSignRequest(user UserTarget, title, text string, binary []byte) *InitiateSignRequest {
	return &InitiateSignRequest{
		UserTarget:     user,
		Title:          title,
		DataToSignType: eid.DataToSignExtendedText,
		DataToSign:     NewDataToSign(text, binary),
		SignatureType:  eid.SignatureExtended,
	}
}

// InitiateSignResponse carries the reference of a new signature
type InitiateSignResponse struct {
	SignRef string `json:"signRef"`
}

func (r InitiateSignResponse) Reference() string { return r.SignRef }

// SignResultRequest fetches the result of one signature
type SignResultRequest struct {
	RelyingPartyScope
	SignRef string `json:"signRef" validate:"required,notblank"`
}

// NewSignResultRequest is a shorthand for a request without relying party
func NewSignResultRequest(signRef string) *SignResultRequest {
	return &SignResultRequest{SignRef: signRef}
}

func (r SignResultRequest) Reference() string { return r.SignRef }

// SignResult is the state of one signature
type SignResult struct {
	SignRef             string                `json:"signRef"`
	Status              eid.TransactionStatus `json:"status"`
	Details             string                `json:"details,omitempty"`
	RequestedAttributes *RequestedAttributes  `json:"requestedAttributes,omitempty"`
}

func (r SignResult) Reference() string                        { return r.SignRef }
func (r SignResult) TransactionStatus() eid.TransactionStatus { return r.Status }

// SignResults is the response to a get-results call
type SignResults struct {
	SignatureResults []SignResult `json:"signatureResults"`
}

// CancelSignRequest cancels a signature in progress
type CancelSignRequest struct {
	RelyingPartyScope
	SignRef string `json:"signRef" validate:"required,notblank"`
}

// NewCancelSignRequest is a shorthand for a request without relying party
func NewCancelSignRequest(signRef string) *CancelSignRequest {
	return &CancelSignRequest{SignRef: signRef}
}

func (r CancelSignRequest) Reference() string { return r.SignRef }
