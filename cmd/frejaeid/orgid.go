package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-frejaeid/pkg/client"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

func (a *app) orgIDClient() (*client.OrganisationIDClient, error) {
	cc, err := a.clientConfig()
	if err != nil {
		return nil, err
	}
	return client.NewOrganisationIDClient(cc)
}

// parseOrgAttributes parses key=friendly name=value triples
func parseOrgAttributes(specs []string) ([]message.OrganisationIDAttribute, error) {
	attrs := make([]message.OrganisationIDAttribute, 0, len(specs))
	for _, raw := range specs {
		parts := strings.SplitN(raw, "=", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("attribute %q must have the form key=friendly name=value", raw)
		}
		attrs = append(attrs, message.OrganisationIDAttribute{Key: parts[0], FriendlyName: parts[1], Value: parts[2]})
	}
	return attrs, nil
}

func (a *app) orgIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgid",
		Aliases: []string{"org-id"},
		Short:   "Manage organisation IDs",
	}

	var (
		user           userFlags
		title          string
		identifierName string
		identifier     string
		extra          []string
		expiry         time.Duration
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Start adding an organisation ID to a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := user.target()
			if err != nil {
				return err
			}
			attrs, err := parseOrgAttributes(extra)
			if err != nil {
				return err
			}
			req := &message.InitiateAddOrganisationIDRequest{
				UserTarget: target,
				OrganisationID: message.OrganisationID{
					Title:                title,
					IdentifierName:       identifierName,
					Identifier:           identifier,
					AdditionalAttributes: attrs,
				},
				AttributesToReturn: user.attributesToReturn(),
			}
			if expiry > 0 {
				req.Expiry = message.ExpiryAfter(expiry)
			}
			req.RelyingPartyID = a.cfg.RelyingPartyID

			c, err := a.orgIDClient()
			if err != nil {
				return err
			}
			ref, err := c.InitiateAdd(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, referenceOutput{Reference: ref})
		},
	}
	user.register(addCmd, false)
	f := addCmd.Flags()
	f.StringVar(&title, "title", "", "Title of the organisation ID card")
	f.StringVar(&identifierName, "identifier-name", "", "Label of the identifier, e.g. Employee number")
	f.StringVar(&identifier, "identifier", "", "The organisation ID")
	f.StringArrayVar(&extra, "extra", nil, "Additional attribute as key=friendly name=value (repeatable)")
	f.DurationVar(&expiry, "expiry", 0, "Time the user has to accept, between 2m and 720h")

	resultCmd := &cobra.Command{
		Use:   "result REFERENCE",
		Short: "Fetch the current result of an add transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.orgIDClient()
			if err != nil {
				return err
			}
			req := message.NewOrganisationIDResultRequest(args[0])
			req.RelyingPartyID = a.cfg.RelyingPartyID

			res, err := c.GetResult(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}

	var maxWait time.Duration
	pollCmd := &cobra.Command{
		Use:   "poll REFERENCE",
		Short: "Wait for an add transaction to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.orgIDClient()
			if err != nil {
				return err
			}
			req := message.NewOrganisationIDResultRequest(args[0])
			req.RelyingPartyID = a.cfg.RelyingPartyID

			res, err := c.PollForResult(cmd.Context(), req, a.maxWaitSeconds(maxWait))
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
	pollCmd.Flags().DurationVar(&maxWait, "max-wait", 0, "Give up after this long (default from config)")

	cancelCmd := &cobra.Command{
		Use:   "cancel REFERENCE",
		Short: "Cancel an add transaction in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.orgIDClient()
			if err != nil {
				return err
			}
			req := message.NewCancelAddOrganisationIDRequest(args[0])
			req.RelyingPartyID = a.cfg.RelyingPartyID

			if err := c.CancelAdd(cmd.Context(), req); err != nil {
				return err
			}
			return a.print(cmd, statusOutput{Reference: args[0], Result: "cancelled"})
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete IDENTIFIER",
		Short: "Delete an organisation ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.orgIDClient()
			if err != nil {
				return err
			}
			req := message.NewDeleteOrganisationIDRequest(args[0])
			req.RelyingPartyID = a.cfg.RelyingPartyID

			if err := c.Delete(cmd.Context(), req); err != nil {
				return err
			}
			return a.print(cmd, statusOutput{Reference: args[0], Result: "deleted"})
		},
	}

	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "List users holding an organisation ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.orgIDClient()
			if err != nil {
				return err
			}
			req := &message.AllOrganisationIDUsersRequest{}
			req.RelyingPartyID = a.cfg.RelyingPartyID

			users, err := c.GetAllUsers(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, users)
		},
	}

	cmd.AddCommand(addCmd, resultCmd, pollCmd, cancelCmd, deleteCmd, usersCmd)
	return cmd
}
