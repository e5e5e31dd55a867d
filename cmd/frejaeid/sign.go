package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-frejaeid/pkg/client"
	"github.com/sirosfoundation/go-frejaeid/pkg/message"
)

func (a *app) signClient() (*client.SignClient, error) {
	cc, err := a.clientConfig()
	if err != nil {
		return nil, err
	}
	return client.NewSignClient(cc)
}

type signFlags struct {
	title      string
	text       string
	binaryFile string
	pushTitle  string
	pushText   string
	expiry     time.Duration
	issuer     string
}

func (s *signFlags) request(user message.UserTarget) (*message.InitiateSignRequest, error) {
	var req *message.InitiateSignRequest
	if s.binaryFile != "" {
		data, err := os.ReadFile(s.binaryFile)
		if err != nil {
			return nil, fmt.Errorf("reading binary data: %w", err)
		}
		req = message.NewExtendedSignRequest(user, s.title, s.text, data)
	} else {
		req = message.NewSimpleSignRequest(user, s.title, s.text)
	}

	if s.pushTitle != "" || s.pushText != "" {
		req.PushNotification = &message.PushNotification{Title: s.pushTitle, Text: s.pushText}
	}
	if s.expiry > 0 {
		req.Expiry = message.ExpiryAfter(s.expiry)
	}
	req.OrgIDIssuer = s.issuer
	return req, nil
}

func (a *app) signCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Ask users to sign",
	}

	var (
		user userFlags
		sf   signFlags
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Start a signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := user.target()
			if err != nil {
				return err
			}
			req, err := sf.request(target)
			if err != nil {
				return err
			}
			req.AttributesToReturn = user.attributesToReturn()
			req.RelyingPartyID = a.cfg.RelyingPartyID

			c, err := a.signClient()
			if err != nil {
				return err
			}
			ref, err := c.Initiate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, referenceOutput{Reference: ref})
		},
	}
	user.register(initCmd, false)
	f := initCmd.Flags()
	f.StringVar(&sf.title, "title", "", "Title shown in the app")
	f.StringVar(&sf.text, "text", "", "Text to sign")
	f.StringVar(&sf.binaryFile, "binary-file", "", "File signed together with the text (extended signature)")
	f.StringVar(&sf.pushTitle, "push-title", "", "Push notification title")
	f.StringVar(&sf.pushText, "push-text", "", "Push notification text")
	f.DurationVar(&sf.expiry, "expiry", 0, "Time the user has to sign, between 2m and 720h")
	f.StringVar(&sf.issuer, "org-id-issuer", "", "Issuer of the requested ORGANISATION_ID attribute")

	resultCmd := &cobra.Command{
		Use:   "result REFERENCE",
		Short: "Fetch the current result of a signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.signClient()
			if err != nil {
				return err
			}
			req := message.NewSignResultRequest(args[0])
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
		Short: "Wait for a signature to finish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.signClient()
			if err != nil {
				return err
			}
			req := message.NewSignResultRequest(args[0])
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
		Short: "Fetch all signature results not yet fetched",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.signClient()
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
		Short: "Cancel a signature in progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.signClient()
			if err != nil {
				return err
			}
			req := message.NewCancelSignRequest(args[0])
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
