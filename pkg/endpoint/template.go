package endpoint

import "net/http"

// Template describes how a request body is framed on the wire
type Template struct {
	Method string
	Param  string
}

// Request templates
var (
	InitAuthenticationTemplate    = Template{Method: http.MethodPost, Param: "initAuthRequest"}
	AuthenticationResultTemplate  = Template{Method: http.MethodPost, Param: "getOneAuthResultRequest"}
	AuthenticationResultsTemplate = Template{Method: http.MethodPost, Param: "getAuthResultsRequest"}
	CancelAuthenticationTemplate  = Template{Method: http.MethodPost, Param: "cancelAuthRequest"}

	InitSignTemplate    = Template{Method: http.MethodPost, Param: "initSignRequest"}
	SignResultTemplate  = Template{Method: http.MethodPost, Param: "getOneSignResultRequest"}
	SignResultsTemplate = Template{Method: http.MethodPost, Param: "getSignResultsRequest"}
	CancelSignTemplate  = Template{Method: http.MethodPost, Param: "cancelSignRequest"}

	InitAddOrganisationIDTemplate   = Template{Method: http.MethodPost, Param: "initAddOrganisationIdRequest"}
	OrganisationIDResultTemplate    = Template{Method: http.MethodPost, Param: "getOneOrganisationIdResultRequest"}
	CancelAddOrganisationIDTemplate = Template{Method: http.MethodPost, Param: "cancelAddOrganisationIdRequest"}
	DeleteOrganisationIDTemplate    = Template{Method: http.MethodPost, Param: "deleteOrganisationIdRequest"}
	AllOrganisationIDUsersTemplate  = Template{Method: http.MethodPost, Param: "getAllOrganisationIdUsersRequest"}
)

// String returns the parameter name
func (t Template) String() string {
	return t.Param
}
