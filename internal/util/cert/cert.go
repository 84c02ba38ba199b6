package cert

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bokysan/altbase64/internal/args"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/youmark/pkcs8"
)

// Config is the generic certificate configuration
type Config struct {
	CaCertificate             string  `yaml:"caCertificate"             long:"ca-certificate"               env:"CA_CERTIFICATE"               description:"CA certificate(s)"`
	CaCertificateFile         string  `yaml:"caCertificateFile"         long:"ca-certificate-file"          env:"CA_CERTIFICATE_FILE"          description:"File with CA certificate(s)"`
	Certificate               string  `yaml:"certificate"               long:"certificate"                  env:"CERTIFICATE"                  description:"Server certificate"`
	CertificateFile           string  `yaml:"certificateFile"           long:"certificate-file"             env:"CERTIFICATE_FILE"             description:"File with the server certificate"`
	PrivateKey                string  `yaml:"privateKey"                long:"private-key"                  env:"PRIVATE_KEY"                  description:"Server private key"`
	PrivateKeyFile            string  `yaml:"privateKeyFile"            long:"private-key-file"             env:"PRIVATE_KEY_FILE"             description:"File with the server private key"`
	PrivateKeyPassword        *string `yaml:"privateKeyPassword"        long:"private-key-password"         env:"PRIVATE_KEY_PASSWORD"         description:"Decryption password"`
	PrivateKeyPasswordProgram string  `yaml:"privateKeyPasswordProgram" long:"private-key-password-program" env:"PRIVATE_KEY_PASSWORD_PROGRAM" description:"Program to run to get the decryption key"`
}

// ServerConfig is the certificate configuration with server-specific extensions
type ServerConfig struct {
	Config            `yaml:",inline"`
	RequireClientCert bool `yaml:"requireClientCert" long:"require-client-cert" env:"REQUIRE_CLIENT_CERT" description:"If set, the client must authenticate with its certificate."`
}

func (m *Config) GetCertificate() ([]byte, error) {
	if m.CertificateFile != "" {
		certPemBlock, err := ioutil.ReadFile(findFile(m.CertificateFile))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read certificate file: %s", m.CertificateFile)
		}
		return certPemBlock, nil
	} else if m.Certificate != "" {
		return []byte(strings.TrimSpace(m.Certificate)), nil
	}
	return nil, nil
}

func (m *Config) GetPrivateKey() (privateKeyPemBlock []byte, err error) {
	if m.PrivateKeyFile != "" {
		privateKeyPemBlock, err = ioutil.ReadFile(findFile(m.PrivateKeyFile))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read private key file: %s", m.PrivateKeyFile)
		}
	} else if m.PrivateKey != "" {
		privateKeyPemBlock = []byte(strings.TrimSpace(m.PrivateKey))
	}

	if len(privateKeyPemBlock) == 0 {
		return nil, nil
	}

	block, _ := pem.Decode(privateKeyPemBlock)
	if block == nil {
		return nil, errors.Errorf("Private key is not PEM encoded")
	}

	if block.Type == "ENCRYPTED PRIVATE KEY" {
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}

		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "Don't know how to handle %T", key)
		}
		privateKeyPemBlock = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	}

	return privateKeyPemBlock, nil
}

func (m *Config) GetPrivateKeyPassword() ([]byte, error) {
	if m.PrivateKeyPassword != nil {
		return []byte(*m.PrivateKeyPassword), nil
	} else if m.PrivateKeyPasswordProgram != "" {
		cmd := exec.Command("sh", "-c", m.PrivateKeyPasswordProgram)
		out := bytes.NewBuffer([]byte{})
		cmd.Stdout = out
		if err := cmd.Run(); err != nil {
			return nil, errors.Wrapf(err, "Failed executing %s", m.PrivateKeyPasswordProgram)
		}
		return bytes.TrimRight(out.Bytes(), "\r\n"), nil
	}
	return nil, errors.Errorf("Private key is encrypted and no password or password program defined!")
}

// GetX509KeyPair returns the server key pair, or nil if neither certificate nor key are configured.
func (m *Config) GetX509KeyPair() (*tls.Certificate, error) {
	certPemBlock, err := m.GetCertificate()
	if err != nil {
		return nil, err
	}
	privateKeyPemBlock, err := m.GetPrivateKey()
	if err != nil {
		return nil, err
	}

	if len(certPemBlock) == 0 && len(privateKeyPemBlock) == 0 {
		return nil, nil
	}

	cert, err := tls.X509KeyPair(certPemBlock, privateKeyPemBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create a X509 key pair from given data!")
	}
	return &cert, nil
}

func (m *Config) GetCaCertificates() ([]byte, error) {
	if m.CaCertificateFile != "" {
		certPemBlock, err := ioutil.ReadFile(findFile(m.CaCertificateFile))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read ca certificate file: %s", m.CaCertificateFile)
		}
		return certPemBlock, nil
	} else if m.CaCertificate != "" {
		return []byte(strings.TrimSpace(m.CaCertificate)), nil
	}
	return nil, nil
}

// Enabled returns true if a certificate or a private key has been configured.
func (m *Config) Enabled() bool {
	return m.Certificate != "" || m.CertificateFile != "" || m.PrivateKey != "" || m.PrivateKeyFile != ""
}

// GetTlsConfig builds the server TLS configuration. It returns nil if TLS is not configured.
func (m *ServerConfig) GetTlsConfig() (*tls.Config, error) {
	log.Debug("ServerConfig.GetTlsConfig()")

	crt, err := m.GetX509KeyPair()
	if err != nil {
		return nil, errors.Wrapf(err, "Could not read certificate pair")
	} else if crt == nil {
		return nil, nil
	}

	conf := &tls.Config{
		Certificates: []tls.Certificate{*crt},
	}

	caCert, err := m.GetCaCertificates()
	if err != nil {
		return nil, errors.Wrapf(err, "Could not load CA certificates")
	}
	if caCert != nil {
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
			return nil, errors.Errorf("Could not parse CA certificates")
		}
		conf.ClientCAs = caCertPool
	}

	if m.RequireClientCert {
		conf.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return conf, nil
}

// findFile will try to locale the file based on relaltive path of the configuration location and,
// failing that, return the provided location as ist
func findFile(name string) string {
	if args.General.ConfigurationFilePath != "" {
		path := filepath.Dir(args.General.ConfigurationFilePath)
		file := filepath.Join(path, name)

		_, err := os.Stat(file)
		if !os.IsNotExist(err) {
			return file
		}
	}

	return name
}
