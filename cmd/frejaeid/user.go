package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-frejaeid/pkg/eid"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

// userFlags selects the user a transaction is addressed to
type userFlags struct {
	email      string
	phone      string
	ssn        string
	country    string
	orgID      string
	inferred   bool
	minLevel   string
	attributes []string
}

func (u *userFlags) register(cmd *cobra.Command, allowInferred bool) {
	f := cmd.Flags()
	f.StringVar(&u.email, "email", "", "Target the user with this email address")
	f.StringVar(&u.phone, "phone", "", "Target the user with this phone number (E.164)")
	f.StringVar(&u.ssn, "ssn", "", "Target the user with this social security number")
	f.StringVar(&u.country, "country", string(eid.CountrySweden), "Country of --ssn: SE, NO, DK or FI")
	f.StringVar(&u.orgID, "org-id", "", "Target the user holding this organisation ID")
	if allowInferred {
		f.BoolVar(&u.inferred, "inferred", false, "Let the user scan a QR code instead")
	}
	f.StringVar(&u.minLevel, "min-level", "", "Minimum registration level: BASIC, EXTENDED or PLUS")
	f.StringSliceVar(&u.attributes, "attribute", nil, "Attribute to return (repeatable), e.g. BASIC_USER_INFO")
}

// target builds the user target from exactly one selector flag
func (u *userFlags) target() (message.UserTarget, error) {
	var (
		targets []message.UserTarget
		t       message.UserTarget
	)
	if u.email != "" {
		targets = append(targets, message.EmailUser(u.email))
	}
	if u.phone != "" {
		targets = append(targets, message.PhoneUser(u.phone))
	}
	if u.ssn != "" {
		targets = append(targets, message.SSNUser(eid.Country(strings.ToUpper(u.country)), u.ssn))
	}
	if u.orgID != "" {
		targets = append(targets, message.OrgIDUser(u.orgID))
	}
	if u.inferred {
		targets = append(targets, message.InferredUser())
	}

	switch len(targets) {
	case 0:
		return t, fmt.Errorf("one of --email, --phone, --ssn, --org-id or --inferred is required")
	case 1:
		t = targets[0]
	default:
		return t, fmt.Errorf("only one user selector may be given")
	}

	if u.minLevel != "" {
		t = t.WithMinRegistrationLevel(eid.RegistrationLevel(strings.ToUpper(u.minLevel)))
	}
	return t, nil
}

func (u *userFlags) attributesToReturn() []message.AttributeRequest {
	if len(u.attributes) == 0 {
		return nil
	}
	attrs := make([]eid.AttributeToReturn, len(u.attributes))
	for i, a := range u.attributes {
		attrs[i] = eid.AttributeToReturn(strings.ToUpper(a))
	}
	return message.Attributes(attrs...)
}
