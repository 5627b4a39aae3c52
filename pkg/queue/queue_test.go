package queue

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJob(t *testing.T) {
	payload := PaymentReminderPayload{
		PaymentID:   uuid.New(),
		RequestedBy: uuid.New(),
		Message:     "rent overdue",
	}

	job, err := NewJob(JobTypePaymentReminder, payload)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, JobTypePaymentReminder, job.Type)
	assert.Equal(t, 0, job.Attempt)
	assert.False(t, job.CreatedAt.IsZero())

	var got PaymentReminderPayload
	require.NoError(t, json.Unmarshal(job.Payload, &got))
	assert.Equal(t, payload, got)
}

func TestNewJobUnmarshalablePayload(t *testing.T) {
	_, err := NewJob(JobTypePaymentReminder, func() {})
	assert.Error(t, err)
}
