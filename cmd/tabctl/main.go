package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/goliatone/go-bi-dashboard/components/dashboard"
	"github.com/goliatone/go-bi-dashboard/pkg/fields"
	"github.com/goliatone/go-bi-dashboard/pkg/validate"
)

type cli struct {
	Verbose bool `short:"v" help:"Log dashboard events to stderr."`

	Tabs          tabsCmd          `cmd:"" help:"Edit the tabs of a dashboard document."`
	Password      passwordCmd      `cmd:"" help:"Check a password against the password policy."`
	Email         emailCmd         `cmd:"" help:"Check whether an email address is well formed."`
	FilterDefault filterDefaultCmd `cmd:"" name:"filter-default" help:"Print the default values a filter rule would receive."`
	DateLabel     dateLabelCmd     `cmd:"" name:"date-label" help:"Print the group label of a date dimension."`
	Theme         themeCmd         `cmd:"" help:"Render theme CSS variables."`
}

type runtime struct {
	ctx    context.Context
	logger *zap.Logger
	out    io.Writer
}

type tabsCmd struct {
	List    listTabsCmd    `cmd:"" help:"List tabs in display order."`
	Visible visibleCmd     `cmd:"" help:"List tiles visible under the active tab."`
	Add     addTabCmd      `cmd:"" help:"Add a tab and make it active."`
	Rename  renameTabCmd   `cmd:"" help:"Rename a tab."`
	Delete  deleteTabCmd   `cmd:"" help:"Delete a tab and its tiles."`
	Reorder reorderTabsCmd `cmd:"" help:"Move a tab or apply an explicit order."`
	Select  selectTabCmd   `cmd:"" help:"Activate a tab."`
}

type documentFlag struct {
	File string `required:"" short:"f" type:"existingfile" help:"Dashboard document (YAML)."`
}

type listTabsCmd struct {
	documentFlag
}

type visibleCmd struct {
	documentFlag
}

type addTabCmd struct {
	documentFlag
	Name string `required:"" help:"Tab name."`
}

type renameTabCmd struct {
	documentFlag
	Tab  string `required:"" help:"Tab uuid."`
	Name string `required:"" help:"New name."`
}

type deleteTabCmd struct {
	documentFlag
	Tab string `required:"" help:"Tab uuid."`
}

type reorderTabsCmd struct {
	documentFlag
	Source      int      `help:"Index of the tab to move."`
	Destination *int     `help:"Index to move it to; without it nothing moves."`
	Order       []string `help:"Explicit tab uuid order; overrides source/destination."`
}

type selectTabCmd struct {
	documentFlag
	Tab  string `required:"" help:"Tab uuid."`
	Mode string `default:"edit" enum:"edit,view" help:"View mode used for the navigation path."`
}

type passwordCmd struct {
	Password string `arg:"" help:"Password to check."`
}

type emailCmd struct {
	Address string `arg:"" help:"Email address to check."`
}

type filterDefaultCmd struct {
	Field    string `required:"" help:"Field name."`
	Table    string `help:"Table of the field."`
	Type     string `default:"date" enum:"string,number,date,timestamp,boolean" help:"Field type."`
	Interval string `default:"DAY" help:"Time interval of date dimensions."`
	Operator string `default:"equals" help:"Filter operator."`
	Timezone string `default:"UTC" help:"IANA timezone used to compute dates."`
}

type dateLabelCmd struct {
	Label    string `required:"" help:"Dimension label."`
	Interval string `required:"" help:"Time interval (DAY, WEEK, ...)."`
	Group    string `default:"date" help:"Group the dimension belongs to."`
}

type themeCmd struct {
	File   string `type:"existingfile" help:"YAML theme overrides."`
	Inline bool   `help:"Print a single style attribute value."`
}

func main() {
	var root cli
	ctx := kong.Parse(&root,
		kong.Description("Dashboard tab editing and field utilities."),
		kong.UsageOnError(),
	)
	logger := zap.NewNop()
	if root.Verbose {
		var err error
		logger, err = zap.NewDevelopment()
		ctx.FatalIfErrorf(err)
	}
	defer logger.Sync() //nolint:errcheck
	err := ctx.Run(&runtime{ctx: context.Background(), logger: logger, out: os.Stdout})
	ctx.FatalIfErrorf(err)
}

// session holds a document loaded into an in-memory service.
type session struct {
	doc     *dashboard.DashboardDocument
	ref     dashboard.DashboardRef
	service *dashboard.Service
}

func openSession(rt *runtime, path string) (*session, error) {
	doc, err := dashboard.ReadDocument(path)
	if err != nil {
		return nil, err
	}
	state := doc.State()
	service := dashboard.NewService(dashboard.Options{
		StateStore: dashboard.NewInMemoryStateStore(state),
		Telemetry:  dashboard.NewZapTelemetry(rt.logger),
	})
	return &session{doc: doc, ref: state.Ref(), service: service}, nil
}

func (s *session) save(ctx context.Context) (dashboard.State, error) {
	state, err := s.service.State(ctx, s.ref)
	if err != nil {
		return dashboard.State{}, err
	}
	if err := dashboard.WriteDocument(s.doc.Source, dashboard.DocumentFromState(state, s.doc)); err != nil {
		return dashboard.State{}, err
	}
	return state, nil
}

func (cmd *listTabsCmd) Run(rt *runtime) error {
	s, err := openSession(rt, cmd.File)
	if err != nil {
		return err
	}
	state, err := s.service.State(rt.ctx, s.ref)
	if err != nil {
		return err
	}
	printTabs(rt.out, state)
	return nil
}

func (cmd *visibleCmd) Run(rt *runtime) error {
	s, err := openSession(rt, cmd.File)
	if err != nil {
		return err
	}
	tiles, err := s.service.VisibleTiles(rt.ctx, s.ref)
	if err != nil {
		return err
	}
	for _, tile := range tiles {
		fmt.Fprintf(rt.out, "%s\t%s\t(%d,%d %dx%d)\n", tile.UUID, tile.Title, tile.X, tile.Y, tile.W, tile.H)
	}
	return nil
}

func (cmd *addTabCmd) Run(rt *runtime) error {
	s, err := openSession(rt, cmd.File)
	if err != nil {
		return err
	}
	if _, err := s.service.AddTab(rt.ctx, s.ref, cmd.Name); err != nil {
		return err
	}
	return s.commit(rt)
}

func (cmd *renameTabCmd) Run(rt *runtime) error {
	s, err := openSession(rt, cmd.File)
	if err != nil {
		return err
	}
	if _, err := s.service.RenameTab(rt.ctx, s.ref, cmd.Tab, cmd.Name); err != nil {
		return err
	}
	return s.commit(rt)
}

func (cmd *deleteTabCmd) Run(rt *runtime) error {
	s, err := openSession(rt, cmd.File)
	if err != nil {
		return err
	}
	_, result, err := s.service.DeleteTab(rt.ctx, s.ref, cmd.Tab)
	if err != nil {
		return err
	}
	if result.LastTab {
		fmt.Fprintf(rt.out, "removed last tab, navigate to %s\n", result.RedirectPath)
	} else if len(result.TilesToDelete) > 0 {
		fmt.Fprintf(rt.out, "removed %d tile(s)\n", len(result.TilesToDelete))
	}
	return s.commit(rt)
}

func (cmd *reorderTabsCmd) Run(rt *runtime) error {
	s, err := openSession(rt, cmd.File)
	if err != nil {
		return err
	}
	switch {
	case len(cmd.Order) > 0:
		_, err = s.service.ReorderTabsByID(rt.ctx, s.ref, cmd.Order)
	case cmd.Destination != nil:
		_, err = s.service.ReorderTabs(rt.ctx, s.ref, cmd.Source, *cmd.Destination)
	default:
		fmt.Fprintln(rt.out, "no destination given, tabs unchanged")
		return nil
	}
	if err != nil {
		return err
	}
	return s.commit(rt)
}

func (cmd *selectTabCmd) Run(rt *runtime) error {
	s, err := openSession(rt, cmd.File)
	if err != nil {
		return err
	}
	_, nav, err := s.service.SelectTab(rt.ctx, s.ref, cmd.Tab, dashboard.ParseViewMode(cmd.Mode), "")
	if err != nil {
		return err
	}
	if nav.Path != "" {
		fmt.Fprintln(rt.out, nav.Path)
	}
	return s.commit(rt)
}

func (s *session) commit(rt *runtime) error {
	state, err := s.save(rt.ctx)
	if err != nil {
		return err
	}
	printTabs(rt.out, state)
	return nil
}

func printTabs(out io.Writer, state dashboard.State) {
	for _, tab := range state.DisplayTabs() {
		marker := " "
		if tab.UUID == state.ActiveTabUUID {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %d\t%s\t%s\n", marker, tab.Order, tab.UUID, tab.Name)
	}
}

func (cmd *passwordCmd) Run(rt *runtime) error {
	result := validate.ValidatePassword(cmd.Password)
	if !result.Valid {
		return fmt.Errorf("tabctl: password %s", result.Message)
	}
	fmt.Fprintln(rt.out, "✓ password accepted")
	return nil
}

func (cmd *emailCmd) Run(rt *runtime) error {
	if !validate.IsValidEmailAddress(cmd.Address) {
		return fmt.Errorf("tabctl: %q is not a valid email address", cmd.Address)
	}
	fmt.Fprintln(rt.out, "✓ email accepted")
	return nil
}

func (cmd *filterDefaultCmd) Run(rt *runtime) error {
	loc, err := time.LoadLocation(cmd.Timezone)
	if err != nil {
		return fmt.Errorf("tabctl: load timezone: %w", err)
	}
	field := fields.Field{
		Kind:         fields.KindDimension,
		Type:         fields.FieldType(cmd.Type),
		Name:         cmd.Field,
		Table:        cmd.Table,
		TimeInterval: fields.TimeInterval(strings.ToUpper(cmd.Interval)),
	}
	rule := fields.FilterRuleWithDefaultValue(field, fields.FilterRule{
		Operator: fields.FilterOperator(cmd.Operator),
	}, nil, time.Now(), loc)
	encoder := json.NewEncoder(rt.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rule)
}

func (cmd *dateLabelCmd) Run(rt *runtime) error {
	label, ok := fields.DateGroupLabel(fields.Field{
		Kind:         fields.KindDimension,
		Type:         fields.TypeDate,
		Label:        cmd.Label,
		TimeInterval: fields.TimeInterval(strings.ToUpper(cmd.Interval)),
		Group:        cmd.Group,
	})
	if !ok {
		return fmt.Errorf("tabctl: dimension has no group label")
	}
	fmt.Fprintln(rt.out, label)
	return nil
}

func (cmd *themeCmd) Run(rt *runtime) error {
	theme := dashboard.DefaultTheme(nil)
	if cmd.File != "" {
		f, err := os.Open(cmd.File) //nolint:gosec
		if err != nil {
			return fmt.Errorf("tabctl: open theme: %w", err)
		}
		defer f.Close()
		if theme, err = dashboard.DecodeTheme(f); err != nil {
			return err
		}
	}
	if cmd.Inline {
		fmt.Fprintln(rt.out, theme.CSSVariablesInline())
		return nil
	}
	fmt.Fprintln(rt.out, ":root {")
	vars := theme.CSSVariables()
	for _, name := range sortedKeys(vars) {
		fmt.Fprintf(rt.out, "  %s: %s;\n", name, vars[name])
	}
	fmt.Fprintln(rt.out, "}")
	return nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
