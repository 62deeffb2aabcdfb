package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{}, nil
}

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{}, nil
}

func sampleAlert() DealAlert {
	return DealAlert{
		ListingID:        "20794780",
		Address:          "1209 E 7th St",
		City:             "Austin",
		State:            "TX",
		Price:            150000,
		MonthlyRent:      1800,
		SquareFootage:    1600,
		RentToValueRatio: 1.2,
		SqftToValueRatio: 1.0667,
		EstimateSource:   "provider",
	}
}

func TestSNSClient_SendDealAlert(t *testing.T) {
	api := &fakeSNS{}
	client := NewSNSClientWithAPI(api, "arn:aws:sns:us-east-1:123456789012:deal-alerts")

	require.NoError(t, client.SendDealAlert(context.Background(), sampleAlert()))
	require.Len(t, api.inputs, 1)

	in := api.inputs[0]
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:deal-alerts", *in.TopicArn)
	assert.Equal(t, "20794780", *in.MessageAttributes["zpid"].StringValue)
	assert.LessOrEqual(t, len(*in.Subject), 100)

	var decoded DealAlert
	require.NoError(t, json.Unmarshal([]byte(*in.Message), &decoded))
	assert.Equal(t, sampleAlert(), decoded)
}

func TestDealAlerts_JoinsFailures(t *testing.T) {
	snsAPI := &fakeSNS{err: errors.New("throttled")}
	sesAPI := &fakeSES{}

	alerts := NewDealAlerts(
		NewSNSClientWithAPI(snsAPI, "arn:topic"),
		NewSESClientWithAPI(sesAPI, "alerts@example.com", []string{"investor@example.com"}),
	)

	err := alerts.SendDealAlert(context.Background(), sampleAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")

	require.Len(t, sesAPI.inputs, 1, "email is still sent when sns fails")
	assert.Equal(t, []string{"investor@example.com"}, sesAPI.inputs[0].Destination.ToAddresses)
	assert.Contains(t, *sesAPI.inputs[0].Message.Body.Text.Data, "Rent-to-value: 1.20%")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 100))
	assert.Equal(t, "ab", truncate("abc", 2))
}
