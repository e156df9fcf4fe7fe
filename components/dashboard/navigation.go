package dashboard

import (
	"context"
	"net/url"
	"strings"
)

// DashboardURL builds the client route for a dashboard, optionally scoped to a tab:
// /projects/{project}/dashboards/{dashboard}/{edit|view}[/tabs/{tab}].
func DashboardURL(projectUUID, dashboardUUID string, mode ViewMode, tabUUID string) string {
	if mode != ModeView {
		mode = ModeEdit
	}
	var b strings.Builder
	b.WriteString("/projects/")
	b.WriteString(url.PathEscape(projectUUID))
	b.WriteString("/dashboards/")
	b.WriteString(url.PathEscape(dashboardUUID))
	b.WriteString("/")
	b.WriteString(string(mode))
	if tabUUID != "" {
		b.WriteString("/tabs/")
		b.WriteString(url.PathEscape(tabUUID))
	}
	return b.String()
}

// ParseViewMode maps free-form input onto a ViewMode, defaulting to edit.
func ParseViewMode(value string) ViewMode {
	if strings.EqualFold(strings.TrimSpace(value), string(ModeView)) {
		return ModeView
	}
	return ModeEdit
}

type noopNavigator struct{}

func (noopNavigator) Navigate(context.Context, NavigationRequest) error { return nil }
