package dispatchers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/previoip/srcds-resource-manager/internal/tree"
	"github.com/previoip/srcds-resource-manager/internal/usage"
)

type recorder struct {
	calls []string
	ns    []*Namespace
}

func (rec *recorder) hook(name string) Hook {
	return HookFunc(func(_ context.Context, ns *Namespace) error {
		rec.calls = append(rec.calls, name)
		rec.ns = append(rec.ns, ns)
		return nil
	})
}

// newScenarioRegistry registers configure(appinfo <path>, platform <value>),
// list([addons], [plugins]) and exit.
func newScenarioRegistry(rec *recorder) (*Registry, map[string]tree.ID) {
	r := NewRegistry("srcdsrm")
	ids := map[string]tree.ID{}

	ids["configure"] = r.Register(CommandSpec{Name: "configure"})
	ids["appinfo"] = r.Register(CommandSpec{Name: "appinfo", Parent: ids["configure"], Fields: []string{"path"}, Hook: rec.hook("appinfo")})
	ids["platform"] = r.Register(CommandSpec{Name: "platform", Parent: ids["configure"], Fields: []string{"value"}, Hook: rec.hook("platform")})

	ids["list"] = r.Register(CommandSpec{Name: "list"})
	ids["addons"] = r.Register(CommandSpec{Name: "addons", Parent: ids["list"], Optional: true, Hook: rec.hook("addons")})
	ids["plugins"] = r.Register(CommandSpec{Name: "plugins", Parent: ids["list"], Optional: true, Hook: rec.hook("plugins")})

	ids["exit"] = r.Register(CommandSpec{Name: "exit", Hook: rec.hook("exit")})
	return r, ids
}

func TestDispatch_Scenario(t *testing.T) {
	tests := []struct {
		name       string
		tokens     []string
		wantCalls  []string
		wantKind   usage.ErrorKind
		wantErr    bool
		wantValues []string
	}{
		{
			name:      "optional leaf with no arguments",
			tokens:    []string{"list", "addons"},
			wantCalls: []string{"addons"},
		},
		{
			name:      "missing required argument",
			tokens:    []string{"configure", "appinfo"},
			wantErr:   true,
			wantKind:  usage.ErrArity,
			wantCalls: nil,
		},
		{
			name:     "unknown top-level command",
			tokens:   []string{"bogus"},
			wantErr:  true,
			wantKind: usage.ErrNoMatch,
		},
		{
			name:       "argument bound to field",
			tokens:     []string{"configure", "appinfo", "server.json"},
			wantCalls:  []string{"appinfo"},
			wantValues: []string{"server.json"},
		},
		{
			name:     "group with required children and no tokens",
			tokens:   []string{"configure"},
			wantErr:  true,
			wantKind: usage.ErrIncomplete,
		},
		{
			name:   "group with only optional children and no tokens",
			tokens: []string{"list"},
		},
		{
			name:     "empty line at the root",
			tokens:   nil,
			wantErr:  true,
			wantKind: usage.ErrIncomplete,
		},
		{
			name:      "leftover tokens at a leaf are ignored",
			tokens:    []string{"exit", "now", "please"},
			wantCalls: []string{"exit"},
		},
		{
			name:     "matching is case sensitive",
			tokens:   []string{"LIST"},
			wantErr:  true,
			wantKind: usage.ErrNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			r, _ := newScenarioRegistry(rec)

			err := r.Dispatch(context.Background(), tt.tokens)
			if tt.wantErr {
				require.Error(t, err)
				require.Equal(t, tt.wantKind, usage.KindOf(err))
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantCalls, rec.calls)

			if tt.wantValues != nil {
				require.Len(t, rec.ns, 1)
				require.Equal(t, tt.wantValues, rec.ns[0].Values)
			}
		})
	}
}

func TestDispatch_ArityZeroGetsNilNamespace(t *testing.T) {
	rec := &recorder{}
	r, _ := newScenarioRegistry(rec)

	require.NoError(t, r.Dispatch(context.Background(), []string{"list", "addons"}))
	require.Len(t, rec.ns, 1)
	require.Nil(t, rec.ns[0])
}

func TestDispatch_NoMatchListsContinuations(t *testing.T) {
	r, ids := newScenarioRegistry(&recorder{})

	err := r.Dispatch(context.Background(), []string{"configure", "platfrom", "linux"})

	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, usage.ErrNoMatch, ue.Kind)
	require.Equal(t, []string{"appinfo", "platform"}, ue.Continuations)
	require.Equal(t, []string{"platform"}, ue.Suggestions)
	require.Equal(t, r.Usage(ids["configure"]), ue.Usage)
}

func TestDispatch_ArityErrorCarriesUsage(t *testing.T) {
	r, _ := newScenarioRegistry(&recorder{})

	err := r.Dispatch(context.Background(), []string{"configure", "appinfo"})

	var ue *usage.Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, "configure appinfo <path>", ue.Usage)
	require.Contains(t, ue.Error(), `"appinfo" command requires 1 argument(s)`)
}

func TestDispatch_ChainOrder(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry("prog")
	a := r.Register(CommandSpec{Name: "a", Fields: []string{"x"}, Hook: rec.hook("a")})
	b := r.Register(CommandSpec{Name: "b", Parent: a, Fields: []string{"y", "z"}, Hook: rec.hook("b")})
	r.Register(CommandSpec{Name: "c", Parent: b, Hook: rec.hook("c")})

	err := r.Dispatch(context.Background(), []string{"a", "1", "b", "2", "3", "c"})
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b", "c"}, rec.calls)
	require.Equal(t, []string{"1"}, rec.ns[0].Values)
	require.Equal(t, []string{"a"}, rec.ns[0].Path)
	require.Equal(t, "2", rec.ns[1].Get("y"))
	require.Equal(t, "3", rec.ns[1].Get("z"))
	require.Equal(t, b, rec.ns[1].Node)
	require.Nil(t, rec.ns[2])
}

func TestDispatch_ArityFailureStopsDescent(t *testing.T) {
	rec := &recorder{}
	r := NewRegistry("prog")
	x := r.Register(CommandSpec{Name: "x", Fields: []string{"first", "second"}, Hook: rec.hook("x")})
	r.Register(CommandSpec{Name: "y", Parent: x, Hook: rec.hook("y")})

	err := r.Dispatch(context.Background(), []string{"x", "only-one"})

	require.Equal(t, usage.ErrArity, usage.KindOf(err))
	require.Empty(t, rec.calls)
}

func TestDispatch_NoRollback(t *testing.T) {
	state := map[string]string{}
	r := NewRegistry("prog")
	set := r.Register(CommandSpec{
		Name:   "set",
		Fields: []string{"key"},
		Hook: HookFunc(func(_ context.Context, ns *Namespace) error {
			state["key"] = ns.Get("key")
			return nil
		}),
	})
	r.Register(CommandSpec{Name: "to", Parent: set, Fields: []string{"value"}})

	err := r.Dispatch(context.Background(), []string{"set", "platform", "to"})

	require.Equal(t, usage.ErrArity, usage.KindOf(err))
	require.Equal(t, "platform", state["key"])
}

func TestDispatch_HookError(t *testing.T) {
	cause := errors.New("disk full")
	rec := &recorder{}
	r := NewRegistry("prog")
	save := r.Register(CommandSpec{
		Name: "save",
		Hook: HookFunc(func(context.Context, *Namespace) error { return cause }),
	})
	r.Register(CommandSpec{Name: "now", Parent: save, Hook: rec.hook("now")})

	err := r.Dispatch(context.Background(), []string{"save", "now"})

	require.Equal(t, usage.ErrHook, usage.KindOf(err))
	require.ErrorIs(t, err, cause)
	require.Empty(t, rec.calls)
}

func TestDispatch_HookUsageErrorPassesThrough(t *testing.T) {
	r := NewRegistry("prog")
	r.Register(CommandSpec{
		Name:   "view",
		Fields: []string{"index"},
		Hook: HookFunc(func(_ context.Context, ns *Namespace) error {
			return usage.InvalidArgument("index", ns.Get("index"), "argument needs to be integer")
		}),
	})

	err := r.Dispatch(context.Background(), []string{"view", "abc"})

	require.Equal(t, usage.ErrInvalidArgument, usage.KindOf(err))
}

func TestDispatch_DoesNotMutateTokens(t *testing.T) {
	r, _ := newScenarioRegistry(&recorder{})
	tokens := []string{"configure", "appinfo", "a.json"}

	require.NoError(t, r.Dispatch(context.Background(), tokens))
	require.Equal(t, []string{"configure", "appinfo", "a.json"}, tokens)
}

func TestDispatch_NilHookIsNoop(t *testing.T) {
	r := NewRegistry("prog")
	r.Register(CommandSpec{Name: "noop"})

	require.NoError(t, r.Dispatch(context.Background(), []string{"noop"}))
}

func TestInvoke_FromSubtree(t *testing.T) {
	rec := &recorder{}
	r, ids := newScenarioRegistry(rec)

	require.NoError(t, r.Invoke(context.Background(), ids["configure"], []string{"platform", "linux"}))
	require.Equal(t, []string{"platform"}, rec.calls)
	require.Equal(t, "linux", rec.ns[0].Get("value"))
}

func TestNamespace_Get(t *testing.T) {
	ns := &Namespace{Fields: []string{"kind", "index"}, Values: []string{"plugin", "2"}}

	require.Equal(t, "plugin", ns.Get("kind"))
	require.Equal(t, "2", ns.Get("index"))
	require.Equal(t, "", ns.Get("missing"))

	var nilNS *Namespace
	require.Equal(t, "", nilNS.Get("kind"))
}
