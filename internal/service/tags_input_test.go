package service

import (
	"testing"

	"tagboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagNames(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    []string
		wantErr string
	}{
		{
			name:    "missing field",
			values:  nil,
			wantErr: "Tags are required",
		},
		{
			name:   "single JSON array value",
			values: []string{`["go","backend"]`},
			want:   []string{"go", "backend"},
		},
		{
			name:   "single empty JSON array",
			values: []string{`[]`},
			want:   []string{},
		},
		{
			name:    "single plain string value",
			values:  []string{"go"},
			wantErr: "Tags must be a valid JSON array",
		},
		{
			name:    "single JSON array of numbers",
			values:  []string{`[1,2]`},
			wantErr: "Tags must be a valid JSON array",
		},
		{
			name:   "repeated field values pass through",
			values: []string{"go", "backend"},
			want:   []string{"go", "backend"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTagNames(tt.values)
			if tt.wantErr != "" {
				require.Error(t, err)
				var appErr *models.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, models.CodeValidation, appErr.Code)
				assert.Equal(t, tt.wantErr, appErr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
