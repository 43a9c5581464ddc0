package styles

import (
	"strings"
	"testing"
)

func TestApplyThemePinsBackground(t *testing.T) {
	ApplyTheme("dark")
	if GlamourStyle() != "dark" {
		t.Errorf("GlamourStyle after dark = %q", GlamourStyle())
	}

	ApplyTheme("light")
	if GlamourStyle() != "light" {
		t.Errorf("GlamourStyle after light = %q", GlamourStyle())
	}
}

func TestStatusRenderersIncludeIndicator(t *testing.T) {
	tests := []struct {
		got, indicator string
	}{
		{RenderSuccess("saved"), StatusIndicators.Success},
		{RenderError("failed"), StatusIndicators.Error},
		{RenderWarning("careful"), StatusIndicators.Warning},
		{RenderInfo("note"), StatusIndicators.Info},
	}
	for _, tt := range tests {
		if !strings.Contains(tt.got, tt.indicator) {
			t.Errorf("%q should contain %q", tt.got, tt.indicator)
		}
	}
}
