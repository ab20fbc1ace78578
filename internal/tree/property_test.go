package tree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/agentic-research/folio/api"
	"github.com/stretchr/testify/require"
)

// genDecls draws a random declaration list. Parents only point at earlier
// entries (or at an undeclared id), so no cycles can form and the outcome
// is decided by uniqueness, parent resolution and root count alone.
func genDecls(r *rand.Rand) []api.Declaration {
	n := r.Intn(8)
	decls := make([]api.Declaration, 0, n)
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("n%d", i)
		if r.Intn(10) == 0 && i > 0 {
			id = decls[r.Intn(i)].ID // duplicate
		}
		d := api.Declaration{ID: id, Title: id, Kind: api.KindInternal}
		switch roll := r.Intn(10); {
		case roll == 0:
			// extra root
		case roll == 1:
			d.Parent = api.String("ghost")
		case i == 0:
			// first entry is the intended root
		default:
			d.Parent = api.String(decls[r.Intn(i)].ID)
		}
		decls = append(decls, d)
	}
	return decls
}

// wellFormed is the predicate Load must agree with.
func wellFormed(decls []api.Declaration) bool {
	seen := map[string]bool{}
	for _, d := range decls {
		if seen[d.ID] {
			return false
		}
		seen[d.ID] = true
	}
	roots := 0
	for _, d := range decls {
		if d.Parent == nil {
			roots++
		} else if !seen[*d.Parent] {
			return false
		}
	}
	return roots == 1
}

func TestLoad_SucceedsIffWellFormed(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		decls := genDecls(r)
		_, err := Load(decls)
		require.Equal(t, wellFormed(decls), err == nil, "iteration %d: decls=%+v err=%v", i, decls, err)
		if err != nil {
			require.ErrorIs(t, err, ErrInvalidTree)
		}
	}
}

func FuzzLoad(f *testing.F) {
	f.Add([]byte{0, 0, 1, 0, 2, 1})
	f.Add([]byte{})
	f.Add([]byte{3, 3, 3})

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 64 {
			data = data[:64]
		}
		// Byte i picks the parent of node i: 0 = root, k = node k-1
		// (any node, so cycles and self-parents are possible).
		decls := make([]api.Declaration, len(data))
		for i, b := range data {
			decls[i] = api.Declaration{ID: fmt.Sprintf("n%d", i), Title: fmt.Sprintf("t%d", b%3), Kind: api.KindInternal}
			if b != 0 {
				decls[i].Parent = api.String(fmt.Sprintf("n%d", int(b-1)%len(data)))
			}
		}

		s, err := Load(decls)
		if err != nil {
			require.ErrorIs(t, err, ErrInvalidTree)
			return
		}
		// Every node is reachable from the root exactly once.
		count := 0
		require.NoError(t, s.Walk(func(*Node, int) error { count++; return nil }))
		require.Equal(t, s.Len(), count)
	})
}
