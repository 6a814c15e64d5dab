package aws

import (
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailInput(t *testing.T) {
	in := EmailInput("plans@farm.example", "ravi@example.com", "Your farming plan: Wheat", "Grow wheat.")
	require.NotNil(t, in.Destination)
	assert.Equal(t, []string{"ravi@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "plans@farm.example", awssdk.ToString(in.Source))
	assert.Equal(t, "Your farming plan: Wheat", awssdk.ToString(in.Message.Subject.Data))
	assert.Equal(t, "Grow wheat.", awssdk.ToString(in.Message.Body.Text.Data))
	assert.Nil(t, in.Message.Body.Html)
}

func TestSMSInput(t *testing.T) {
	in := SMSInput("+919800000000", "FARMADV", "Farm plan: grow Wheat.")
	assert.Equal(t, "+919800000000", awssdk.ToString(in.PhoneNumber))
	assert.Equal(t, "FARMADV", awssdk.ToString(in.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
	assert.Equal(t, "Transactional", awssdk.ToString(in.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue))

	in = SMSInput("+919800000000", "", "hi")
	_, ok := in.MessageAttributes["AWS.SNS.SMS.SenderID"]
	assert.False(t, ok)
}
