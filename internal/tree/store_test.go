package tree

import (
	"errors"
	"testing"

	"github.com/agentic-research/folio/api"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// portfolio is the two-level tree used across these tests:
// root -> About (leaf), Projects (internal) -> A (leaf).
func portfolio() []api.Declaration {
	return []api.Declaration{
		{ID: "root", Title: "Home", Keys: []string{"About", "Projects"}},
		{ID: "about", Parent: api.String("root"), Title: "About", Content: api.String("X")},
		{ID: "projects", Parent: api.String("root"), Title: "Projects", Keys: []string{"A"}},
		{ID: "a", Parent: api.String("projects"), Title: "A", Content: api.String("Y")},
	}
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func TestLoad_Portfolio(t *testing.T) {
	s, err := Load(portfolio())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Len())
	assert.Equal(t, "root", s.Root().ID())
	assert.True(t, s.Root().IsRoot())
	assert.Equal(t, Internal, s.Root().Kind())
	assert.Equal(t, []string{"About", "Projects"}, s.Root().Keys())

	about, err := s.GetNode("about")
	require.NoError(t, err)
	assert.True(t, about.IsLeaf())
	assert.Equal(t, "X", about.Content())
	pid, ok := about.ParentID()
	assert.True(t, ok)
	assert.Equal(t, "root", pid)

	assert.Empty(t, s.Diagnostics())
}

func TestStore_GetNodeNotFound(t *testing.T) {
	s, err := Load(portfolio())
	require.NoError(t, err)

	_, err = s.GetNode("nonexistent")
	assert.True(t, errors.Is(err, ErrNotFound), "err = %v, want ErrNotFound", err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestStore_ChildrenOrderAndEmpty(t *testing.T) {
	s, err := Load(portfolio())
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"about", "projects"}, ids(s.Children("root"))); diff != "" {
		t.Errorf("Children(root) mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, s.Children("about"), "leaf has no children")
	assert.Empty(t, s.Children("missing"), "unknown id is not an error")
}

func TestStore_ChildrenIsACopy(t *testing.T) {
	s, err := Load(portfolio())
	require.NoError(t, err)

	kids := s.Children("root")
	kids[0] = nil
	assert.NotNil(t, s.Children("root")[0])

	keys := s.Root().Keys()
	keys[0] = "Mutated"
	assert.Equal(t, "About", s.Root().Keys()[0])
}

func TestStore_ChildByTitle(t *testing.T) {
	decls := append(portfolio(),
		api.Declaration{ID: "a2", Parent: api.String("projects"), Title: "A", Content: api.String("Z")},
	)
	s, err := Load(decls)
	require.NoError(t, err)

	n, count := s.ChildByTitle("root", "About")
	assert.Equal(t, 1, count)
	assert.Equal(t, "about", n.ID())

	n, count = s.ChildByTitle("root", "about")
	assert.Nil(t, n, "titles are case-sensitive")
	assert.Zero(t, count)

	n, count = s.ChildByTitle("projects", "A")
	assert.Nil(t, n)
	assert.Equal(t, 2, count)
}

func TestLoad_DuplicateID(t *testing.T) {
	decls := append(portfolio(), api.Declaration{ID: "about", Parent: api.String("root"), Title: "Again", Content: api.String("")})
	_, err := Load(decls)

	var dup *DuplicateIDError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "about", dup.ID)
	assert.ErrorIs(t, err, ErrInvalidTree)
}

func TestLoad_DanglingParent(t *testing.T) {
	decls := portfolio()
	decls[1].Parent = api.String("missing")
	_, err := Load(decls)

	var dangling *DanglingParentError
	require.ErrorAs(t, err, &dangling)
	assert.Equal(t, "missing", dangling.Parent)
	assert.Equal(t, "about", dangling.ID)
}

func TestLoad_RootCardinality(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		_, err := Load(nil)
		var rc *RootCardinalityError
		require.ErrorAs(t, err, &rc)
		assert.Empty(t, rc.Roots)
	})

	t.Run("two", func(t *testing.T) {
		decls := portfolio()
		decls[2].Parent = nil
		_, err := Load(decls)
		var rc *RootCardinalityError
		require.ErrorAs(t, err, &rc)
		assert.Equal(t, []string{"root", "projects"}, rc.Roots)
	})
}

func TestLoad_KindMismatch(t *testing.T) {
	cases := []struct {
		name string
		decl api.Declaration
	}{
		{"both", api.Declaration{ID: "x", Parent: api.String("root"), Keys: []string{}, Content: api.String("c")}},
		{"neither", api.Declaration{ID: "x", Parent: api.String("root")}},
		{"leaf with keys", api.Declaration{ID: "x", Parent: api.String("root"), Kind: api.KindLeaf, Keys: []string{"k"}}},
		{"leaf without content", api.Declaration{ID: "x", Parent: api.String("root"), Kind: api.KindLeaf}},
		{"internal with content", api.Declaration{ID: "x", Parent: api.String("root"), Kind: api.KindInternal, Content: api.String("c")}},
		{"unknown kind", api.Declaration{ID: "x", Parent: api.String("root"), Kind: "branch", Keys: []string{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(append(portfolio(), tc.decl))
			var km *KindMismatchError
			require.ErrorAs(t, err, &km)
			assert.Equal(t, "x", km.ID)
		})
	}
}

func TestLoad_ExplicitInternalWithoutKeys(t *testing.T) {
	decls := append(portfolio(), api.Declaration{ID: "empty", Parent: api.String("root"), Title: "Empty", Kind: api.KindInternal})
	s, err := Load(decls)
	require.NoError(t, err)

	n, err := s.GetNode("empty")
	require.NoError(t, err)
	assert.Equal(t, Internal, n.Kind())
	assert.Empty(t, n.Keys())
}

func TestLoad_Cycle(t *testing.T) {
	decls := append(portfolio(),
		api.Declaration{ID: "p", Parent: api.String("q"), Title: "P", Keys: []string{"Q"}},
		api.Declaration{ID: "q", Parent: api.String("p"), Title: "Q", Keys: []string{"P"}},
		api.Declaration{ID: "hanger", Parent: api.String("q"), Title: "H", Content: api.String("")},
	)
	_, err := Load(decls)

	var cyc *CycleError
	require.ErrorAs(t, err, &cyc)
	assert.Contains(t, []string{"p", "q"}, cyc.ID)
}

func TestLoad_SelfParentIsCycle(t *testing.T) {
	decls := append(portfolio(), api.Declaration{ID: "self", Parent: api.String("self"), Title: "S", Content: api.String("")})
	_, err := Load(decls)

	var cyc *CycleError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, "self", cyc.ID)
}

func TestLoad_CheckOrder(t *testing.T) {
	// Both a duplicate and a dangling parent: duplicates are checked first.
	decls := append(portfolio(),
		api.Declaration{ID: "a", Parent: api.String("nowhere"), Title: "A", Content: api.String("")},
	)
	_, err := Load(decls)
	var dup *DuplicateIDError
	assert.ErrorAs(t, err, &dup)
}

func TestLoad_Diagnostics(t *testing.T) {
	decls := []api.Declaration{
		{ID: "root", Title: "Home", Keys: []string{"About", "Contact", "Twin"}},
		{ID: "about", Parent: api.String("root"), Title: "About", Content: api.String("X")},
		{ID: "t1", Parent: api.String("root"), Title: "Twin", Content: api.String("1")},
		{ID: "t2", Parent: api.String("root"), Title: "Twin", Content: api.String("2")},
		{ID: "secret", Parent: api.String("root"), Title: "Secret", Content: api.String("s")},
		{ID: "orphan", Parent: api.String("about"), Title: "Orphan", Content: api.String("o")},
	}

	core, logs := observer.New(zap.WarnLevel)
	s, err := Load(decls, WithLogger(zap.New(core)))
	require.NoError(t, err)

	got := map[Code][]string{}
	for _, d := range s.Diagnostics() {
		got[d.Code] = append(got[d.Code], d.NodeID+"/"+d.Key)
	}
	want := map[Code][]string{
		CodeDeadKey:       {"root/Contact"},
		CodeAmbiguousKey:  {"root/Twin"},
		CodeUnlistedChild: {"root/Secret"},
		CodeLeafChildren:  {"about/"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, logs.FilterMessage("tree diagnostic").Len())
}

func TestStore_ParentAndAncestors(t *testing.T) {
	s, err := Load(portfolio())
	require.NoError(t, err)

	p, ok := s.Parent("a")
	require.True(t, ok)
	assert.Equal(t, "projects", p.ID())

	_, ok = s.Parent("root")
	assert.False(t, ok)

	path, err := s.Ancestors("a")
	require.NoError(t, err)
	assert.Equal(t, []string{"root", "projects", "a"}, ids(path))

	_, err = s.Ancestors("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_WalkDepthFirst(t *testing.T) {
	decls := append(portfolio(),
		api.Declaration{ID: "b", Parent: api.String("projects"), Title: "B", Keys: []string{"C"}},
		api.Declaration{ID: "c", Parent: api.String("b"), Title: "C", Content: api.String("deep")},
	)
	s, err := Load(decls)
	require.NoError(t, err)

	var visited []string
	var depths []int
	require.NoError(t, s.Walk(func(n *Node, depth int) error {
		visited = append(visited, n.ID())
		depths = append(depths, depth)
		return nil
	}))
	assert.Equal(t, []string{"root", "about", "projects", "a", "b", "c"}, visited)
	assert.Equal(t, []int{0, 1, 1, 2, 2, 3}, depths)

	visited = nil
	require.NoError(t, s.Walk(func(n *Node, _ int) error {
		visited = append(visited, n.ID())
		if n.ID() == "projects" {
			return SkipChildren
		}
		return nil
	}))
	assert.Equal(t, []string{"root", "about", "projects"}, visited)

	stop := errors.New("stop")
	err = s.Walk(func(n *Node, _ int) error {
		if n.ID() == "a" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)

	assert.Equal(t, []string{"about", "a", "c"}, ids(s.Leaves()))
}

func TestLoad_NodeLink(t *testing.T) {
	decls := portfolio()
	decls[1].Link = "mailto:someone@example.com"
	s, err := Load(decls)
	require.NoError(t, err)

	n, err := s.GetNode("about")
	require.NoError(t, err)
	assert.Equal(t, "mailto:someone@example.com", n.Link())
}
