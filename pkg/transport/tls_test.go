package transport

import (
	"context"
	"crypto/tls"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/endpoint"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

func TestLoadTLSConfig_Keystore(t *testing.T) {
	pki := newTestPKI(t)

	for _, asPEM := range []bool{true, false} {
		cfg, err := LoadTLSConfig(SSLSettings{
			KeystorePath:          pki.writeKeystore(t, testKeystorePassword),
			KeystorePassword:      testKeystorePassword,
			ServerCertificatePath: pki.writeCA(t, asPEM),
		})
		require.NoError(t, err)

		assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
		require.Len(t, cfg.Certificates, 1)
		assert.Equal(t, pki.clientCert.Raw, cfg.Certificates[0].Certificate[0])
		assert.Len(t, cfg.Certificates[0].Certificate, 2, "chain includes the CA")
		assert.NotNil(t, cfg.RootCAs)
	}
}

func TestLoadTLSConfig_EndToEnd(t *testing.T) {
	pki := newTestPKI(t)
	srv := pki.newMTLSServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"signRef":"abc"}`))
	}))

	cfg, err := LoadTLSConfig(SSLSettings{
		KeystorePath:          pki.writeKeystore(t, testKeystorePassword),
		KeystorePassword:      testKeystorePassword,
		ServerCertificatePath: pki.writeCA(t, true),
	})
	require.NoError(t, err)

	client := NewHTTPSClient(&HTTPSConfig{TLSConfig: cfg})
	var resp message.InitiateSignResponse
	req := message.NewSimpleSignRequest(message.EmailUser("joe@example.com"), "Agreement", "I agree")
	require.NoError(t, client.Send(context.Background(), srv.URL, endpoint.InitSignTemplate, req, &resp, ""))
	assert.Equal(t, "abc", resp.SignRef)
}

func TestLoadTLSConfig_Prebuilt(t *testing.T) {
	base := &tls.Config{MinVersion: tls.VersionTLS11, ServerName: "services.test.frejaeid.com"}

	cfg, err := LoadTLSConfig(SSLSettings{TLSConfig: base})
	require.NoError(t, err)

	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	assert.Equal(t, "services.test.frejaeid.com", cfg.ServerName)
	assert.NotSame(t, base, cfg)
}

func TestLoadTLSConfig_Errors(t *testing.T) {
	pki := newTestPKI(t)
	keystore := pki.writeKeystore(t, testKeystorePassword)
	ca := pki.writeCA(t, true)
	missing := filepath.Join(t.TempDir(), "missing.p12")

	tests := []struct {
		name     string
		settings SSLSettings
		contains string
	}{
		{"empty", SSLSettings{}, "SSL settings are required"},
		{"both", SSLSettings{TLSConfig: &tls.Config{}, KeystorePath: keystore}, "not both"},
		{"no keystore path", SSLSettings{ServerCertificatePath: ca}, "keystore path"},
		{"no server certificate", SSLSettings{KeystorePath: keystore, KeystorePassword: testKeystorePassword}, "server certificate path"},
		{"missing keystore", SSLSettings{KeystorePath: missing, KeystorePassword: testKeystorePassword, ServerCertificatePath: ca}, "reading keystore"},
		{"wrong password", SSLSettings{KeystorePath: keystore, KeystorePassword: "wrong", ServerCertificatePath: ca}, "decoding keystore"},
		{"keystore as certificate", SSLSettings{KeystorePath: keystore, KeystorePassword: testKeystorePassword, ServerCertificatePath: keystore}, "parsing server certificate"},
		{"missing certificate", SSLSettings{KeystorePath: keystore, KeystorePassword: testKeystorePassword, ServerCertificatePath: missing}, "reading server certificate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadTLSConfig(tt.settings)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, eid.ErrConfig)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
