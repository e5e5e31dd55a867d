// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package validation checks request preconditions before anything is sent.

Field rules are declared with `validate` struct tags on the payload types in
package message. Cross-field rules, such as the userInfo format for a given
userInfoType or the dataToSignType matching the signatureType, are registered
as struct-level validations. Rules that depend on the transaction kind or
context are applied last.

# Usage

	v := validation.New()
	if err := v.Validate(endpoint.KindSignature, eid.ContextPersonal, req); err != nil {
	    var verr *eid.ValidationError
	    errors.As(err, &verr)
	    for _, f := range verr.Fields {
	        fmt.Println(f.Field, f.Message)
	    }
	}

All violations of a request are reported together, by JSON field name.
*/
package validation
