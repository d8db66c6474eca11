package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandCategory_String(t *testing.T) {
	tests := []struct {
		category CommandCategory
		expected string
	}{
		{CategoryUncategorized, "other commands"},
		{CategoryManifest, "edit the manifest"},
		{CategoryInstall, "install resources"},
		{CategoryConfig, "configure srcdsrm"},
		{CategorySession, "session"},
		{CommandCategory(99), "other commands"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.category.String())
		})
	}
}
