package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutcome(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, o Outcome)
	}{
		{
			name: "success with all identifiers",
			raw:  `{"kind":"success","success":{"payment_id":"pay1","order_id":"r1","signature":"sig1"}}`,
			check: func(t *testing.T, o Outcome) {
				assert.Equal(t, OutcomeSuccess, o.Kind)
				assert.Equal(t, "pay1", o.Success.PaymentID)
			},
		},
		{
			name:    "success missing signature",
			raw:     `{"kind":"success","success":{"payment_id":"pay1","order_id":"r1"}}`,
			wantErr: true,
		},
		{
			name:    "success without identifier block",
			raw:     `{"kind":"success"}`,
			wantErr: true,
		},
		{
			name: "failed with reason",
			raw:  `{"kind":"failed","reason":"card declined"}`,
			check: func(t *testing.T, o Outcome) {
				assert.Equal(t, "card declined", o.Reason)
			},
		},
		{
			name: "dismissed",
			raw:  `{"kind":"dismissed"}`,
			check: func(t *testing.T, o Outcome) {
				assert.Equal(t, OutcomeDismissed, o.Kind)
			},
		},
		{
			name:    "unknown kind",
			raw:     `{"kind":"timeout"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			raw:     `{"kind":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := ParseOutcome([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, o)
			}
		})
	}
}
