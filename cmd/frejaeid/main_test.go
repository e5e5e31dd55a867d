package main

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-frejaeid/pkg/client"
	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
	"github.com/sirosfoundation/go-frejaeid/pkg/transport"
)

type sentRequest struct {
	url            string
	tmpl           endpoint.Template
	body           any
	relyingPartyID string
}

type fakeTransport struct {
	mu       sync.Mutex
	response any
	sent     []sentRequest
}

func (f *fakeTransport) Send(_ context.Context, url string, tmpl endpoint.Template, body, out any, rp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentRequest{url: url, tmpl: tmpl, body: body, relyingPartyID: rp})
	if err, ok := f.response.(error); ok {
		return err
	}
	if f.response == nil || out == nil {
		return nil
	}
	raw, err := json.Marshal(f.response)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func run(t *testing.T, tr *fakeTransport, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	a := &app{
		v:   viper.New(),
		out: &out,
		customize: func(c *client.Config) {
			c.Transport = tr
			c.SSL = transport.SSLSettings{TLSConfig: &tls.Config{}}
		},
	}
	root := a.rootCmd()
	root.SetArgs(append([]string{"--log-level", "error", "--poll-interval", "1s"}, args...))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

func TestAuthInit(t *testing.T) {
	tr := &fakeTransport{response: message.InitiateAuthenticationResponse{AuthRef: "123"}}

	out, err := run(t, tr, "auth", "init", "--email", "joe@example.com", "--attribute", "basic_user_info", "--relying-party-id", "rp-1")
	require.NoError(t, err)

	var got referenceOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "123", got.Reference)

	require.Len(t, tr.sent, 1)
	assert.Equal(t, "https://services.test.frejaeid.com/authentication/1.0/initAuthentication", tr.sent[0].url)
	assert.Equal(t, "rp-1", tr.sent[0].relyingPartyID)

	req := tr.sent[0].body.(*message.InitiateAuthenticationRequest)
	assert.Equal(t, eid.UserInfoEmail, req.UserInfoType)
	assert.Equal(t, message.Attributes(eid.AttributeBasicUserInfo), req.AttributesToReturn)
}

func TestAuthInit_ValidationErrorNeverSent(t *testing.T) {
	tr := &fakeTransport{}

	_, err := run(t, tr, "auth", "init", "--email", "not-an-email")
	assert.ErrorIs(t, err, eid.ErrValidation)
	assert.Empty(t, tr.sent)
}

func TestSignPoll_YAML(t *testing.T) {
	tr := &fakeTransport{response: message.SignResult{SignRef: "abc", Status: eid.StatusApproved}}

	out, err := run(t, tr, "sign", "poll", "abc", "--max-wait", "5s", "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "signRef: abc")
	assert.Contains(t, out, "status: APPROVED")
	assert.Equal(t, "https://services.test.frejaeid.com/sign/1.0/getOneResult", tr.sent[0].url)
}

func TestSignInit_OrganisationalContext(t *testing.T) {
	tr := &fakeTransport{response: message.InitiateSignResponse{SignRef: "abc"}}

	_, err := run(t, tr, "--context", "organisational", "sign", "init",
		"--org-id", "emp-1", "--title", "Agreement", "--text", "I agree")
	require.NoError(t, err)
	assert.Equal(t, "https://services.test.frejaeid.com/organisation/sign/1.0/initSignature", tr.sent[0].url)
}

func TestOrgIDCommands(t *testing.T) {
	tr := &fakeTransport{response: message.AllOrganisationIDUsers{UserInfos: []message.OrganisationIDUserInfo{
		{OrganisationID: message.OrganisationID{Identifier: "emp-1"}},
	}}}

	out, err := run(t, tr, "orgid", "users")
	require.NoError(t, err)
	assert.Contains(t, out, `"identifier": "emp-1"`)
	assert.Equal(t, "https://services.test.frejaeid.com/organisation/management/orgId/1.0/users/getAll", tr.sent[0].url)

	tr.response = nil
	out, err = run(t, tr, "orgid", "delete", "emp-1")
	require.NoError(t, err)
	assert.Contains(t, out, `"result": "deleted"`)
	assert.Equal(t, endpoint.DeleteOrganisationIDTemplate, tr.sent[1].tmpl)
}

func TestServiceErrorSurfaces(t *testing.T) {
	tr := &fakeTransport{response: eid.NewServiceError(eid.CodeInvalidReference)}

	_, err := run(t, tr, "auth", "result", "missing")
	var svc *eid.ServiceError
	require.ErrorAs(t, err, &svc)
	assert.Equal(t, eid.CodeInvalidReference, svc.Code)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("FREJAEID_ENVIRONMENT", "production")
	tr := &fakeTransport{}

	_, err := run(t, tr, "auth", "cancel", "123")
	require.NoError(t, err)
	assert.Equal(t, "https://services.prod.frejaeid.com/authentication/1.0/cancel", tr.sent[0].url)
}

func TestConfigFileAndFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frejaeid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("serverUrl: https://file.example.com\nrelyingPartyId: from-file\n"), 0o600))
	tr := &fakeTransport{}

	_, err := run(t, tr, "--config", path, "sign", "cancel", "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com/sign/1.0/cancel", tr.sent[0].url)
	assert.Equal(t, "from-file", tr.sent[0].relyingPartyID)

	_, err = run(t, tr, "--config", path, "--server-url", "https://flag.example.com", "sign", "cancel", "abc")
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example.com/sign/1.0/cancel", tr.sent[1].url)
}

func TestMetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frejaeid.prom")
	tr := &fakeTransport{response: message.AuthenticationResult{AuthRef: "123", Status: eid.StatusRejected}}

	_, err := run(t, tr, "--metrics-textfile", path, "auth", "poll", "123", "--max-wait", "5s")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frejaeid_poll_attempts_total")
	assert.Contains(t, string(data), `outcome="completed"`)
}

func TestUserFlags(t *testing.T) {
	_, err := (&userFlags{}).target()
	assert.Error(t, err)

	_, err = (&userFlags{email: "a@example.com", phone: "+46701234567"}).target()
	assert.Error(t, err)

	target, err := (&userFlags{ssn: "198710180000", country: "no", minLevel: "plus"}).target()
	require.NoError(t, err)
	assert.Equal(t, eid.UserInfoSSN, target.UserInfoType)
	assert.Equal(t, eid.RegistrationPlus, target.MinRegistrationLevel)
	assert.JSONEq(t, `{"country":"NO","ssn":"198710180000"}`, target.UserInfo)
}

func TestParseOrgAttributes(t *testing.T) {
	attrs, err := parseOrgAttributes([]string{"dept=Department=R&D=Lab"})
	require.NoError(t, err)
	assert.Equal(t, []message.OrganisationIDAttribute{{Key: "dept", FriendlyName: "Department", Value: "R&D=Lab"}}, attrs)

	_, err = parseOrgAttributes([]string{"dept"})
	assert.Error(t, err)
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, render(&buf, "xml", referenceOutput{Reference: "x"}))
}
