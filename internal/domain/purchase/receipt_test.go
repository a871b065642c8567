package purchase

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReceipt(t *testing.T) {
	rc, err := NewReceipt(7, "uploads/2026/receipt-7.png")
	require.NoError(t, err)

	assert.Zero(t, rc.ID())
	assert.Equal(t, uint(7), rc.RequestID())
	assert.Equal(t, "uploads/2026/receipt-7.png", rc.FileRef())
	assert.True(t, strings.HasPrefix(rc.SID(), "rc_"))
	assert.WithinDuration(t, time.Now(), rc.UploadedAt(), time.Second)
}

func TestNewReceipt_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		requestID uint
		fileRef   string
	}{
		{name: "missing request", requestID: 0, fileRef: "uploads/x.png"},
		{name: "missing file ref", requestID: 7, fileRef: ""},
		{name: "blank file ref", requestID: 7, fileRef: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := NewReceipt(tt.requestID, tt.fileRef)
			assert.Error(t, err)
			assert.Nil(t, rc)
		})
	}
}

func TestReceipt_Replace(t *testing.T) {
	rc, err := NewReceipt(7, "uploads/first.png")
	require.NoError(t, err)
	firstUpload := rc.UploadedAt()

	require.NoError(t, rc.Replace("uploads/second.png"))
	assert.Equal(t, "uploads/second.png", rc.FileRef())
	assert.False(t, rc.UploadedAt().Before(firstUpload))

	assert.ErrorIs(t, rc.Replace("  "), ErrFileRefRequired)
	assert.Equal(t, "uploads/second.png", rc.FileRef())
}
