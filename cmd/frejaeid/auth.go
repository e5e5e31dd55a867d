package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-frejaeid/pkg/client"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

func (a *app) authClient() (*client.AuthenticationClient, error) {
	cc, err := a.clientConfig()
	if err != nil {
		return nil, err
	}
	return client.NewAuthenticationClient(cc)
}

// maxWaitSeconds returns --max-wait, or the configured default
func (a *app) maxWaitSeconds(maxWait time.Duration) int {
	if maxWait > 0 {
		return int(maxWait / time.Second)
	}
	return a.cfg.MaxWaitSeconds()
}

func (a *app) authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate users",
	}

	var (
		user   userFlags
		issuer string
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Start an authentication",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := user.target()
			if err != nil {
				return err
			}
			c, err := a.authClient()
			if err != nil {
				return err
			}
			req := &message.InitiateAuthenticationRequest{
				UserTarget:         target,
				AttributesToReturn: user.attributesToReturn(),
				OrgIDIssuer:        issuer,
			}
			req.RelyingPartyID = a.cfg.RelyingPartyID

			ref, err := c.Initiate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, referenceOutput{Reference: ref})
		},
	}
	user.register(initCmd, true)
	initCmd.Flags().StringVar(&issuer, "org-id-issuer", "", "Issuer of the requested ORGANISATION_ID attribute")

	resultCmd := &cobra.Command{
		Use:   "result REFERENCE",
		Short: "Fetch the current result of an authentication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authClient()
			if err != nil {
				return err
			}
			req := message.NewAuthenticationResultRequest(args[0])
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
		Short: "Wait for an authentication to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authClient()
			if err != nil {
				return err
			}
			req := message.NewAuthenticationResultRequest(args[0])
			req.RelyingPartyID = a.cfg.RelyingPartyID

			res, err := c.PollForResult(cmd.Context(), req, a.maxWaitSeconds(maxWait))
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}
	pollCmd.Flags().DurationVar(&maxWait, "max-wait", 0, "Give up after this long (default from config)")

	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "Fetch all authentication results not yet fetched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authClient()
			if err != nil {
				return err
			}
			req := message.NewResultsRequest()
			req.RelyingPartyID = a.cfg.RelyingPartyID

			res, err := c.GetResults(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, res)
		},
	}

	cancelCmd := &cobra.Command{
		Use:   "cancel REFERENCE",
		Short: "Cancel an authentication in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.authClient()
			if err != nil {
				return err
			}
			req := message.NewCancelAuthenticationRequest(args[0])
			req.RelyingPartyID = a.cfg.RelyingPartyID

			if err := c.Cancel(cmd.Context(), req); err != nil {
				return err
			}
			return a.print(cmd, statusOutput{Reference: args[0], Result: "cancelled"})
		},
	}

	cmd.AddCommand(initCmd, resultCmd, pollCmd, resultsCmd, cancelCmd)
	return cmd
}
