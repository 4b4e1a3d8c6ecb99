package sns

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*sns.PublishOutput)
	return out, args.Error(1)
}

func TestSendSMS(t *testing.T) {
	p := &mockPublisher{}
	p.On("Publish", mock.Anything, mock.MatchedBy(func(in *sns.PublishInput) bool {
		return *in.PhoneNumber == "+15550001" && *in.Message == "Order placed"
	})).Return(&sns.PublishOutput{}, nil)

	assert.NoError(t, NewSenderWithClient(p).SendSMS(context.Background(), "+15550001", "Order placed"))
	p.AssertExpectations(t)
}

func TestSendSMS_Error(t *testing.T) {
	p := &mockPublisher{}
	p.On("Publish", mock.Anything, mock.Anything).Return(nil, errors.New("opted out"))

	assert.ErrorContains(t, NewSenderWithClient(p).SendSMS(context.Background(), "+1", "x"), "opted out")
}
