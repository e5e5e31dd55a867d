package transport

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"software.sslmate.com/src/go-pkcs12"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
)

// SSLSettings selects the TLS material of a client. Either TLSConfig is set,
// or the keystore and server certificate paths are.
type SSLSettings struct {
	TLSConfig *tls.Config

	// KeystorePath is a PKCS#12 file holding the client key and certificate
	KeystorePath     string
	KeystorePassword string
	// ServerCertificatePath is the PEM or DER certificate the client trusts
	ServerCertificatePath string
}

func (s SSLSettings) hasKeystore() bool {
	return s.KeystorePath != "" || s.ServerCertificatePath != ""
}

// LoadTLSConfig builds the client TLS configuration. Every failure is an
// *eid.ConfigError.
func LoadTLSConfig(s SSLSettings) (*tls.Config, error) {
	switch {
	case s.TLSConfig != nil && s.hasKeystore():
		return nil, eid.NewConfigError("either a TLS config or a keystore can be set, not both")
	case s.TLSConfig != nil:
		cfg := s.TLSConfig.Clone()
		if cfg.MinVersion < TLS12 {
			cfg.MinVersion = TLS12
		}
		return cfg, nil
	case !s.hasKeystore():
		return nil, eid.NewConfigError("SSL settings are required")
	case s.KeystorePath == "":
		return nil, eid.NewConfigError("keystore path is required")
	case s.ServerCertificatePath == "":
		return nil, eid.NewConfigError("server certificate path is required")
	}

	clientCert, err := loadKeystore(s.KeystorePath, s.KeystorePassword)
	if err != nil {
		return nil, err
	}

	serverCerts, err := loadCertificates(s.ServerCertificatePath)
	if err != nil {
		return nil, err
	}
	roots := x509.NewCertPool()
	for _, c := range serverCerts {
		roots.AddCert(c)
	}

	return &tls.Config{
		MinVersion:   TLS12,
		Certificates: []tls.Certificate{clientCert},
		RootCAs:      roots,
	}, nil
}

func loadKeystore(path, password string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, eid.WrapConfigError(err, "reading keystore %s", path)
	}

	key, leaf, chain, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return tls.Certificate{}, eid.WrapConfigError(err, "decoding keystore %s", path)
	}

	cert := tls.Certificate{
		Certificate: [][]byte{leaf.Raw},
		PrivateKey:  key,
		Leaf:        leaf,
	}
	for _, c := range chain {
		cert.Certificate = append(cert.Certificate, c.Raw)
	}
	return cert, nil
}

// loadCertificates reads every certificate of a PEM file, or a single DER
// certificate
func loadCertificates(path string) ([]*x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eid.WrapConfigError(err, "reading server certificate %s", path)
	}

	var certs []*x509.Certificate
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		c, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, eid.WrapConfigError(err, "parsing server certificate %s", path)
		}
		certs = append(certs, c)
	}
	if len(certs) > 0 {
		return certs, nil
	}

	c, err := x509.ParseCertificate(data)
	if err != nil {
		return nil, eid.WrapConfigError(fmt.Errorf("no PEM certificate found and DER parsing failed: %w", err), "parsing server certificate %s", path)
	}
	return []*x509.Certificate{c}, nil
}
