package rosetree

import (
	"fmt"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lcg is a minimal deterministic linear-congruential generator, local to
// each test (no process-wide mutable seed).
type lcg struct{ state uint64 }

func newLCG(seed uint64) *lcg { return &lcg{state: seed} }

func (g *lcg) next() uint64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407

	return g.state
}

func (g *lcg) intn(n int) int { return int(g.next() % uint64(n)) }

func TestNewIsSingleNodeRoot(t *testing.T) {
	t.Parallel()

	p := New(42)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 42, p.Data())
	assert.Empty(t, p.Children())
}

func TestAddChildFocusesOnNewChild(t *testing.T) {
	t.Parallel()

	root := New(1)
	withChild := root.AddChild(2)

	assert.Equal(t, 2, withChild.Len())
	assert.Equal(t, 2, withChild.Data())

	parent := withChild.Parent()
	assert.Equal(t, 1, parent.Data())
	assert.Len(t, parent.Children(), 1)
}

func TestAddMultipleRootChildren(t *testing.T) {
	t.Parallel()

	root := New("r")
	a := root.AddChild("a")
	root = a.Root()
	b := root.AddChild("b")
	root = b.Root()

	children := root.Children()
	require.Len(t, children, 2)

	var data []string
	for _, c := range children {
		data = append(data, c.Data())
	}

	sort.Strings(data)
	assert.Equal(t, []string{"a", "b"}, data)
}

func TestAddGrandchildren(t *testing.T) {
	t.Parallel()

	root := New(0)
	child := root.AddChild(1)
	grandchild := child.AddChild(2)

	assert.Equal(t, 3, grandchild.Len())
	assert.Equal(t, 2, grandchild.Data())

	back := grandchild.Parent().Parent()
	assert.Equal(t, 0, back.Data())
	assert.Len(t, back.Children(), 1)
}

func TestRemoveFocusPanicsAtRoot(t *testing.T) {
	t.Parallel()

	root := New(1)
	assert.Panics(t, func() { root.RemoveFocus() })
}

func TestRemoveFocusDropsSubtree(t *testing.T) {
	t.Parallel()

	root := New(1)
	child := root.AddChild(2)
	grandchild := child.AddChild(3)

	// Path of length exactly 2 (root, child): removing the focus yields a
	// path of length 1 (root only).
	backToRoot := child.RemoveFocus()
	assert.Equal(t, 1, backToRoot.Len())
	assert.Empty(t, backToRoot.Children())

	// Removing the grandchild instead leaves the child with no children.
	withoutGrandchild := grandchild.RemoveFocus()
	assert.Equal(t, 2, withoutGrandchild.Len())
	assert.Empty(t, withoutGrandchild.Children())

	// Neither mutation touched the original handles.
	assert.Equal(t, 1, child.Parent().Len())
	assert.Len(t, grandchild.Parent().Children(), 1)
}

func TestSetDataKeepsChildren(t *testing.T) {
	t.Parallel()

	root := New(1)
	child := root.AddChild(2)
	root = child.Root()
	root2 := root.SetData(99)

	assert.Equal(t, 99, root2.Data())
	assert.Len(t, root2.Children(), 1)

	// original unaffected
	assert.Equal(t, 1, root.Data())
}

func TestApplyChangesFocusOnly(t *testing.T) {
	t.Parallel()

	root := New(1)
	child := root.AddChild(2)

	doubled := child.Apply(func(d int) (int, bool) { return d * 2, true })
	assert.Equal(t, 4, doubled.Data())

	assert.Equal(t, 2, child.Data())
}

func TestApplyNoOpReturnsSameHandle(t *testing.T) {
	t.Parallel()

	root := New(1)
	same := root.Apply(func(d int) (int, bool) { return d, false })

	assert.Same(t, root.focus(), same.focus())
}

func TestApplyRecursiveRebuildsOnlyAlongChangedPath(t *testing.T) {
	t.Parallel()

	root := New(1)
	a := root.AddChild(2)
	root = a.Root()
	b := root.AddChild(3)
	root = b.Root()

	doubleEvens := func(d int) (int, bool) {
		if d%2 == 0 {
			return d * 2, true
		}

		return d, false
	}

	result := root.ApplyRecursive(doubleEvens)

	children := result.Children()
	var byData = map[int]Path[int]{}

	for _, c := range children {
		byData[c.Data()] = c
	}

	assert.Contains(t, byData, 4) // 2 doubled
	assert.Contains(t, byData, 3) // 3 untouched
}

func TestApplyRecursiveIdentityIsZeroRebuild(t *testing.T) {
	t.Parallel()

	root := New(1)
	a := root.AddChild(2)
	root = a.Root()
	b := a.AddChild(3)
	root = b.Root()

	identity := func(d int) (int, bool) { return d, false }

	result := root.ApplyRecursive(identity)

	assert.Same(t, root.focus(), result.focus())
}

func TestFilterRecursiveDropsFailingSubtree(t *testing.T) {
	t.Parallel()

	root := New(0)
	a := root.AddChild(2)
	root = a.Root()
	b := root.AddChild(3)
	root = b.Root()

	keepEven := func(d int) bool { return d%2 == 0 }

	filtered, ok := root.FilterRecursive(keepEven)
	require.True(t, ok)

	children := filtered.Children()
	require.Len(t, children, 1)
	assert.Equal(t, 2, children[0].Data())
}

func TestFilterRecursiveRejectsFocus(t *testing.T) {
	t.Parallel()

	root := New(1)

	_, ok := root.FilterRecursive(func(d int) bool { return d%2 == 0 })
	assert.False(t, ok)
}

func TestFlattenPreOrder(t *testing.T) {
	t.Parallel()

	root := New(1)
	a := root.AddChild(2)
	grandchild := a.AddChild(3)
	root = grandchild.Root()

	flat := root.Flatten()
	assert.Equal(t, []int{1, 2, 3}, flat)
}

func TestRemoveAllChildren(t *testing.T) {
	t.Parallel()

	root := New(1)
	a := root.AddChild(2)
	root = a.Root()
	b := root.AddChild(3)
	root = b.Root()

	require.Len(t, root.Children(), 2)

	pruned := root.RemoveAllChildren()
	assert.Empty(t, pruned.Children())
	assert.Equal(t, 1, pruned.Data())

	// original unaffected
	assert.Len(t, root.Children(), 2)

	// already-childless is a no-op, same handle
	leaf := pruned.focus()
	prunedAgain := pruned.RemoveAllChildren()
	assert.Same(t, leaf, prunedAgain.focus())
}

func TestMapDataTransformsEveryNode(t *testing.T) {
	t.Parallel()

	root := New(1)
	a := root.AddChild(2)
	root = a.Root()
	b := a.AddChild(3)
	root = b.Root()

	doubled := root.MapData(func(d int) (int, bool) { return d * 2, true })

	assert.Equal(t, 2, doubled.Data())

	flat := doubled.Flatten()
	slices.Sort(flat)
	assert.Equal(t, []int{2, 4, 6}, flat)
}

func TestMapDataNoOpReturnsSameHandle(t *testing.T) {
	t.Parallel()

	root := New(1)
	a := root.AddChild(2)
	root = a.Root()

	same := root.MapData(func(d int) (int, bool) { return d, false })
	assert.Same(t, root.focus(), same.focus())
}

// intStack is a minimal TreeAcc that tracks the sum of ancestor data.
type intStack struct{ sums []int }

func (s *intStack) Push(d int) {
	sum := d
	if len(s.sums) > 0 {
		sum += s.sums[len(s.sums)-1]
	}

	s.sums = append(s.sums, sum)
}

func (s *intStack) Pop() {
	s.sums = s.sums[:len(s.sums)-1]
}

func (s *intStack) total() int {
	if len(s.sums) == 0 {
		return 0
	}

	return s.sums[len(s.sums)-1]
}

func TestApplyAccumulatingSeesAncestorSum(t *testing.T) {
	t.Parallel()

	root := New(10)
	a := root.AddChild(20)
	root = a.Root()
	b := a.AddChild(30)
	root = b.Root()

	acc := &intStack{}
	withAncestorSums := root.ApplyAccumulating(acc, func(a TreeAcc[int], d int) (int, bool) {
		return a.(*intStack).total(), true
	})

	assert.Equal(t, 10, withAncestorSums.Data())

	children := withAncestorSums.Children()
	require.Len(t, children, 1)
	assert.Equal(t, 30, children[0].Data()) // 10 + 20

	grandchildren := children[0].Children()
	require.Len(t, grandchildren, 1)
	assert.Equal(t, 60, grandchildren[0].Data()) // 10 + 20 + 30
}

func TestIterAccumulatingVisitsEveryNodeWithAncestorContext(t *testing.T) {
	t.Parallel()

	root := New(1)
	a := root.AddChild(2)
	root = a.Root()
	b := a.AddChild(3)
	root = b.Root()

	acc := &intStack{}
	var sums []int

	root.IterAccumulating(acc, func(a TreeAcc[int], d int) {
		sums = append(sums, a.(*intStack).total())
	})

	assert.Equal(t, []int{1, 3, 6}, sums)
}

func TestChildrenSetIdentitySemantics(t *testing.T) {
	t.Parallel()

	root := New("r")
	withFirst := root.AddChild("dup")
	root = withFirst.Root()
	withSecond := root.AddChild("dup")
	root = withSecond.Root()

	// Two children with identical data are still two distinct members,
	// since membership is keyed by handle, not by data.
	assert.Len(t, root.Children(), 2)
}

func TestTreePersistenceAcrossManyRootChildren(t *testing.T) {
	t.Parallel()

	root := New(0)

	const numRoots = 128

	for i := 1; i <= numRoots; i++ {
		child := root.AddChild(i)
		grand1 := child.AddChild(i * 1000)
		great := grand1.AddChild(i*1000 + 1)
		root = great.Root()
	}

	snapshot := root

	// Mutate further from the live handle.
	mutated := root.AddChild(-1)

	assert.Len(t, snapshot.Children(), numRoots)
	assert.Len(t, mutated.Root().Children(), numRoots+1)

	for _, c := range snapshot.Children() {
		require.Len(t, c.Children(), 1)

		grandchildren := c.Children()[0].Children()
		require.Len(t, grandchildren, 1)
	}
}

func TestRandomizedAddRemoveInvariants(t *testing.T) {
	t.Parallel()

	gen := newLCG(777)

	root := New(0)
	focus := root
	depth := 1

	for i := 0; i < 2000; i++ {
		switch {
		case depth > 1 && gen.intn(3) == 0:
			focus = focus.RemoveFocus()
			depth--
		default:
			focus = focus.AddChild(gen.intn(1 << 30))
			depth++
		}
	}

	assert.Equal(t, depth, focus.Len())
	assert.NotPanics(t, func() { _ = focus.Flatten() })
}

func ExamplePath_Flatten() {
	root := New(1)
	a := root.AddChild(2)
	b := a.AddChild(3)

	fmt.Println(b.Root().Flatten())
	// Output: [1 2 3]
}
