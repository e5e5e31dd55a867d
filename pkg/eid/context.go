package eid

import (
	"fmt"
	"strings"
)

// TransactionContext selects whether a client acts for an end user or an organisation
type TransactionContext int

const (
	ContextPersonal TransactionContext = iota
	ContextOrganisational
)

// String returns the name used in logs and configuration
func (c TransactionContext) String() string {
	switch c {
	case ContextPersonal:
		return "personal"
	case ContextOrganisational:
		return "organisational"
	default:
		return fmt.Sprintf("TransactionContext(%d)", int(c))
	}
}

// Valid reports whether c is one of the defined contexts
func (c TransactionContext) Valid() bool {
	return c == ContextPersonal || c == ContextOrganisational
}

// ParseTransactionContext parses "personal" or "organisational" (case-insensitive)
func ParseTransactionContext(s string) (TransactionContext, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "personal":
		return ContextPersonal, nil
	case "organisational", "organizational":
		return ContextOrganisational, nil
	default:
		return 0, fmt.Errorf("unknown transaction context %q", s)
	}
}

// Environment fixes the base URL of the remote service
type Environment string

const (
	EnvironmentTest       Environment = "TEST"
	EnvironmentProduction Environment = "PRODUCTION"
)

var environmentURLs = map[Environment]string{
	EnvironmentTest:       "https://services.test.frejaeid.com",
	EnvironmentProduction: "https://services.prod.frejaeid.com",
}

// URL returns the base URL for the environment, or "" if it is unknown
func (e Environment) URL() string {
	return environmentURLs[e]
}

// ParseEnvironment parses "test" or "production" (case-insensitive)
func ParseEnvironment(s string) (Environment, error) {
	env := Environment(strings.ToUpper(strings.TrimSpace(s)))
	switch env {
	case "PROD":
		return EnvironmentProduction, nil
	case EnvironmentTest, EnvironmentProduction:
		return env, nil
	default:
		return "", fmt.Errorf("unknown environment %q", s)
	}
}
