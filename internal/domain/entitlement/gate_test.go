package entitlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanView(t *testing.T) {
	assert.True(t, CanView(AccessDecision{Granted: true, Status: AccessStatusAccepted}))
	assert.False(t, CanView(AccessDecision{Status: AccessStatusPending}))
	assert.False(t, CanView(AccessDecision{Status: AccessStatusNone}))
}

func TestCanPurchase(t *testing.T) {
	tests := []struct {
		name string
		d    AccessDecision
		want bool
	}{
		{name: "no request yet", d: AccessDecision{Status: AccessStatusNone}, want: true},
		{name: "after rejection", d: AccessDecision{Status: AccessStatusRejected}, want: true},
		{name: "while pending", d: AccessDecision{Status: AccessStatusPending}, want: false},
		{name: "already accepted", d: AccessDecision{Granted: true, Status: AccessStatusAccepted}, want: false},
		{name: "inherited acceptance", d: AccessDecision{Granted: true, Status: AccessStatusAccepted, Inherited: true}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPurchase(tt.d))
		})
	}
}
