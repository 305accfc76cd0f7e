package mail

import (
	"context"
	"fmt"

	"github.com/Domenick1991/ticketing/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type Message struct {
	To      string
	Subject string
	Body    string
}

type sesAPI interface {
	VerifyEmailIdentity(ctx context.Context, params *ses.VerifyEmailIdentityInput, optFns ...func(*ses.Options)) (*ses.VerifyEmailIdentityOutput, error)
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESClient sends mail through Amazon SES or an SES compatible endpoint.
type SESClient struct {
	api   sesAPI
	creds aws.CredentialsProvider
}

func NewSESClient(ctx context.Context, cfg config.MailConfig) (*SESClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := ses.NewFromConfig(awsCfg, func(o *ses.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}
	})
	return &SESClient{api: client, creds: awsCfg.Credentials}, nil
}

func (c *SESClient) VerifyIdentity(ctx context.Context, sender string) error {
	if err := c.checkCredentials(ctx); err != nil {
		return err
	}
	_, err := c.api.VerifyEmailIdentity(ctx, &ses.VerifyEmailIdentityInput{
		EmailAddress: aws.String(sender),
	})
	return err
}

func (c *SESClient) Send(ctx context.Context, sender string, msg Message) error {
	if err := c.checkCredentials(ctx); err != nil {
		return err
	}
	_, err := c.api.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(sender),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String(charset)},
			},
		},
	})
	return err
}

func (c *SESClient) checkCredentials(ctx context.Context) error {
	if c.creds == nil {
		return ErrNoCredentials
	}
	if _, err := c.creds.Retrieve(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	return nil
}
