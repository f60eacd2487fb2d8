package request

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/circleshare/service-sharing/internal/domain"
)

func TestNewItemRequest_Validation(t *testing.T) {
	_, err := NewItemRequest(uuid.Nil, "Need a ladder")
	var validation *domain.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = NewItemRequest(uuid.New(), "")
	require.ErrorAs(t, err, &validation)

	requesterID := uuid.New()
	r, err := NewItemRequest(requesterID, "Need a ladder")
	require.NoError(t, err)
	assert.Equal(t, "Need a ladder", r.Description())
	assert.True(t, r.IsRequestedBy(requesterID))
	assert.False(t, r.IsRequestedBy(uuid.New()))
}
