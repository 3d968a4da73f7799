package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/paulmaker/office-mgmt/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	entityID := uuid.New()

	client, err := NewClient(entityID, "Acme Corp")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", client.Name)
	assert.Equal(t, entityID, client.EntityID)
	assert.Equal(t, ClientStatusActive, client.Status)
	assert.Empty(t, client.ReferenceCode)

	_, err = NewClient(entityID, "   ")
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestClientSetReferenceCode(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme Corp")
	require.NoError(t, err)

	// Any string is accepted at write time, even ones that can never
	// seed invoice numbers.
	client.SetReferenceCode("jo1")
	assert.Equal(t, "jo1", client.ReferenceCode)

	client.SetReferenceCode("ACM")
	assert.Equal(t, "ACM", client.ReferenceCode)
}

func TestClientInvoicePrefix(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{"valid code", "ACM", "ACM", false},
		{"valid code with surrounding spaces", "  ACM  ", "ACM", false},
		{"no code configured", "", "", false},
		{"whitespace only", "   ", "", false},
		{"lowercase letters", "jo1", "", true},
		{"digit in code", "AB1", "", true},
		{"too short", "AB", "", true},
		{"too long", "ABCD", "", true},
		{"non-ascii letters", "ÄBC", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(uuid.New(), "Acme Corp")
			require.NoError(t, err)
			client.SetReferenceCode(tt.code)

			got, err := client.InvoicePrefix()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, shared.IsCode(err, shared.CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientInvoicePrefixErrorEchoesCode(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme Corp")
	require.NoError(t, err)
	client.SetReferenceCode("jo1")

	_, err = client.InvoicePrefix()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jo1")
}

func TestClientArchive(t *testing.T) {
	client, err := NewClient(uuid.New(), "Acme Corp")
	require.NoError(t, err)

	require.NoError(t, client.Archive())
	assert.Equal(t, ClientStatusArchived, client.Status)

	err = client.Archive()
	assert.Error(t, err)
}
