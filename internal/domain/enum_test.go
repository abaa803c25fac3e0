package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNotificationType(t *testing.T) {
	tests := []struct {
		raw     string
		want    NotificationType
		wantErr bool
	}{
		{raw: "SYSTEM", want: NotificationTypeSystem},
		{raw: "ALERT", want: NotificationTypeAlert},
		{raw: "REMINDER", want: NotificationTypeReminder},
		{raw: "RECOMMENDATION", want: NotificationTypeRecommendation},
		{raw: "alert", wantErr: true},
		{raw: " ALERT", wantErr: true},
		{raw: "ALERT ", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "BOGUS", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseNotificationType(tt.raw)
			if tt.wantErr {
				var enumErr *InvalidEnumValueError
				require.True(t, errors.As(err, &enumErr))
				assert.Equal(t, "typeNotification", enumErr.Field)
				assert.Equal(t, tt.raw, enumErr.Value)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnumSet_ErrorListsAllowedSymbols(t *testing.T) {
	_, err := ParseRiskProfile("CONSERVATIVE")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"CONSERVATIVE"`)
	assert.Contains(t, err.Error(), "riskProfile")
	assert.Contains(t, err.Error(), "SEMBRADOR, EXPLORADOR, CAZADOR, SKIP")
}

func TestEnumSet_Symbols(t *testing.T) {
	assert.Equal(t, []string{"BASIC", "INTERMEDIATE", "ADVANCED"}, KnowledgeLevels.Symbols())
}
