// internal/common/aws/ses.go
package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESClient emails deal alerts to a fixed recipient list.
type SESClient struct {
	client SESAPI
	from   string
	to     []string
}

func NewSESClient(ctx context.Context, region, from string, to []string) (*SESClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSESClientWithAPI(ses.NewFromConfig(cfg), from, to), nil
}

func NewSESClientWithAPI(api SESAPI, from string, to []string) *SESClient {
	return &SESClient{client: api, from: from, to: to}
}

func (s *SESClient) SendDealAlert(ctx context.Context, alert DealAlert) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      awssdk.String(s.from),
		Destination: &types.Destination{ToAddresses: s.to},
		Message: &types.Message{
			Subject: &types.Content{Data: awssdk.String(alert.Subject())},
			Body: &types.Body{
				Text: &types.Content{Data: awssdk.String(alert.Text())},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send email: %w", err)
	}
	return nil
}
