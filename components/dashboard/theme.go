package dashboard

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Theme is the design-system configuration shared by dashboard clients.
// Spacing values are pixels and are rendered as rem.
type Theme struct {
	ColorScheme              string                    `json:"color_scheme,omitempty" yaml:"color_scheme,omitempty"`
	FocusRing                string                    `json:"focus_ring,omitempty" yaml:"focus_ring,omitempty"`
	Black                    string                    `json:"black,omitempty" yaml:"black,omitempty"`
	FontFamily               string                    `json:"font_family,omitempty" yaml:"font_family,omitempty"`
	MonospaceFontFamily      string                    `json:"monospace_font_family,omitempty" yaml:"monospace_font_family,omitempty"`
	LineHeight               float64                   `json:"line_height,omitempty" yaml:"line_height,omitempty"`
	CursorType               string                    `json:"cursor_type,omitempty" yaml:"cursor_type,omitempty"`
	Spacing                  map[string]int            `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	Colors                   map[string][]string       `json:"colors,omitempty" yaml:"colors,omitempty"`
	Shadows                  map[string]string         `json:"shadows,omitempty" yaml:"shadows,omitempty"`
	Components               map[string]ComponentTheme `json:"components,omitempty" yaml:"components,omitempty"`
	TransitionTimingFunction string                    `json:"transition_timing_function,omitempty" yaml:"transition_timing_function,omitempty"`
	TransitionDurationMS     int                       `json:"transition_duration_ms,omitempty" yaml:"transition_duration_ms,omitempty"`
}

// ComponentTheme holds per-component defaults and named variants.
type ComponentTheme struct {
	DefaultProps map[string]any               `json:"default_props,omitempty" yaml:"default_props,omitempty"`
	Variants     map[string]map[string]string `json:"variants,omitempty" yaml:"variants,omitempty"`
}

// ThemeOverrides are caller-supplied tweaks layered over the defaults.
type ThemeOverrides struct {
	ColorScheme string                    `json:"color_scheme,omitempty" yaml:"color_scheme,omitempty"`
	Components  map[string]ComponentTheme `json:"components,omitempty" yaml:"components,omitempty"`
}

var defaultFontStack = []string{
	"-apple-system",
	"BlinkMacSystemFont",
	"Segoe UI",
	"Roboto",
	"Oxygen",
	"Ubuntu",
	"Cantarell",
	"Fira Sans",
	"Droid Sans",
	"Open Sans",
	"Helvetica Neue",
	"Apple Color Emoji",
	"Segoe UI Emoji",
	"sans-serif",
}

// DefaultTheme returns the stock theme with overrides applied. Override
// components replace stock components of the same name.
func DefaultTheme(overrides *ThemeOverrides) *Theme {
	theme := &Theme{
		ColorScheme:         "light",
		FocusRing:           "auto",
		Black:               "#111418",
		FontFamily:          strings.Join(defaultFontStack, ", "),
		MonospaceFontFamily: "Menlo, 'Ubuntu Mono', 'Consolas', 'source-code-pro', monospace",
		LineHeight:          1.4,
		CursorType:          "pointer",
		Spacing: map[string]int{
			"one": 1, "two": 2, "xxs": 4, "xs": 8, "sm": 12, "md": 16, "lg": 20,
			"xl": 24, "xxl": 32, "3xl": 40, "4xl": 48, "5xl": 64, "6xl": 80,
			"7xl": 96, "8xl": 128, "9xl": 160,
		},
		Colors: map[string][]string{
			"offWhite": {"#FDFDFD"},
		},
		Shadows: map[string]string{
			"subtle": "0px 1px 2px 0px rgba(10, 13, 18, 0.05)",
			"heavy":  "0px 12px 16px -4px rgba(10, 13, 18, 0.08), 0px 4px 6px -2px rgba(10, 13, 18, 0.03), 0px 2px 2px -1px rgba(10, 13, 18, 0.04)",
		},
		Components: map[string]ComponentTheme{
			"Button": {Variants: map[string]map[string]string{
				"darkPrimary": {
					"border":     "1px solid #414E62",
					"box-shadow": "0px 0px 0px 1px #151C24",
					"background": "linear-gradient(180deg, #202B37 0%, #151C24 100%)",
				},
			}},
			"Tooltip": {DefaultProps: map[string]any{"withArrow": true}},
			"Modal":   {DefaultProps: map[string]any{"yOffset": 140}},
		},
		TransitionTimingFunction: "ease-in-out",
		TransitionDurationMS:     200,
	}
	if overrides != nil {
		if overrides.ColorScheme != "" {
			theme.ColorScheme = overrides.ColorScheme
		}
		for name, component := range overrides.Components {
			theme.Components[name] = component
		}
	}
	return theme
}

// DecodeTheme reads a YAML theme and layers it over the defaults.
func DecodeTheme(r io.Reader) (*Theme, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var partial Theme
	if err := decoder.Decode(&partial); err != nil {
		if err == io.EOF {
			return DefaultTheme(nil), nil
		}
		return nil, fmt.Errorf("dashboard: parse theme: %w", err)
	}
	theme := DefaultTheme(&ThemeOverrides{ColorScheme: partial.ColorScheme, Components: partial.Components})
	theme.merge(partial)
	return theme, nil
}

func (theme *Theme) merge(other Theme) {
	if other.FocusRing != "" {
		theme.FocusRing = other.FocusRing
	}
	if other.Black != "" {
		theme.Black = other.Black
	}
	if other.FontFamily != "" {
		theme.FontFamily = other.FontFamily
	}
	if other.MonospaceFontFamily != "" {
		theme.MonospaceFontFamily = other.MonospaceFontFamily
	}
	if other.LineHeight > 0 {
		theme.LineHeight = other.LineHeight
	}
	if other.CursorType != "" {
		theme.CursorType = other.CursorType
	}
	for key, value := range other.Spacing {
		theme.Spacing[key] = value
	}
	for key, value := range other.Colors {
		theme.Colors[key] = value
	}
	for key, value := range other.Shadows {
		theme.Shadows[key] = value
	}
	if other.TransitionTimingFunction != "" {
		theme.TransitionTimingFunction = other.TransitionTimingFunction
	}
	if other.TransitionDurationMS > 0 {
		theme.TransitionDurationMS = other.TransitionDurationMS
	}
}

// Rem converts pixels to a rem string using a 16px root.
func Rem(px int) string {
	return strconv.FormatFloat(float64(px)/16, 'f', -1, 64) + "rem"
}

// CSSVariables flattens the theme into CSS custom properties.
func (theme *Theme) CSSVariables() map[string]string {
	if theme == nil {
		return nil
	}
	vars := map[string]string{}
	set := func(name, value string) {
		if value == "" {
			return
		}
		if key := normalizeCSSVariable(name); key != "" {
			vars[key] = value
		}
	}
	set("black", theme.Black)
	set("font-family", theme.FontFamily)
	set("font-family-monospace", theme.MonospaceFontFamily)
	if theme.LineHeight > 0 {
		set("line-height", strconv.FormatFloat(theme.LineHeight, 'f', -1, 64))
	}
	set("cursor-type", theme.CursorType)
	for key, px := range theme.Spacing {
		set("spacing-"+key, Rem(px))
	}
	for key, shades := range theme.Colors {
		for idx, shade := range shades {
			set(fmt.Sprintf("color-%s-%d", key, idx), shade)
		}
	}
	for key, value := range theme.Shadows {
		set("shadow-"+key, value)
	}
	set("transition-timing-function", theme.TransitionTimingFunction)
	if theme.TransitionDurationMS > 0 {
		set("transition-duration", strconv.Itoa(theme.TransitionDurationMS)+"ms")
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string, sorted by name.
func (theme *Theme) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(vars[key])
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}
