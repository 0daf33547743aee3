// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewThemeWithPreference(t *testing.T) {
	dark := NewThemeWithPreference("dark")
	if !dark.IsDark {
		t.Error("expected dark theme")
	}

	light := NewThemeWithPreference("light")
	if light.IsDark {
		t.Error("expected light theme")
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewThemeWithPreference("dark")
	theme.SetSize(120, 40)

	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize not applied: %dx%d", theme.Width, theme.Height)
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewThemeWithPreference("dark")
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: got mode %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestStatusIndicatorsASCII(t *testing.T) {
	indicators := []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
		StatusIndicators.Active,
	}

	for _, ind := range indicators {
		for _, r := range ind {
			if r > 127 {
				t.Errorf("indicator %q contains non-ASCII rune %q", ind, r)
			}
		}
	}
}

func TestRenderHelpersIncludeIndicator(t *testing.T) {
	if !strings.Contains(RenderSuccess("saved"), "[OK]") {
		t.Error("RenderSuccess missing indicator")
	}
	if !strings.Contains(RenderError("failed"), "[X]") {
		t.Error("RenderError missing indicator")
	}
	if !strings.Contains(RenderWarning("careful"), "[!]") {
		t.Error("RenderWarning missing indicator")
	}
	if !strings.Contains(RenderInfo("note"), "[i]") {
		t.Error("RenderInfo missing indicator")
	}
}
