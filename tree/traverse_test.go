package tree_test

import (
	"testing"

	"github.com/TuftsBCB/phylo/newick"
	"github.com/TuftsBCB/phylo/tree"
	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const metazoa = "(((((((((22_MOUSE:0.05998,Apaf-1_HUMAN:0.01825)Euarchontoglires:" +
	"0.09825,11_CHICK:0.15226):0.02309,16_XENLA:0.4409):0.06584,15_TETNG:" +
	"0.37438)Euteleostomi:0.28901,((1_BRAFL:0.26131,18_NEMVE:0.38014):0.10709," +
	"23_STRPU:0.48179):0.01594):0.22058,(26_STRPU:0.36374,25_STRPU:0.33137)" +
	"'Strongylocentrotus purpuratus':0.34475):0.26168,(CED4_CAEEL:0.13241," +
	"31_CAEBR:0.04777)Caenorhabditis:1.31498):0.07466,(((28_DROPS:0.1732," +
	"Dark_DROME:0.18863)Sophophora:0.76898,29_AEDAE:0.86398)Diptera:0.24915," +
	"30_TRICA:0.97698)Endopterygota:0.13172):0.18105,((((((34_BRAFL:0.093," +
	"35_BRAFL:0.08226):0.93134,8_BRAFL:0.58563)'Branchiostoma floridae':" +
	"0.21648,(20_NEMVE:0.71946,21_NEMVE:0.9571)'Nematostella vectensis':" +
	"0.28437):0.09305,9_BRAFL:1.09612):0.54836,((3_BRAFL:0.48766,2_BRAFL:" +
	"0.65293)'Branchiostoma floridae':0.22189,19_NEMVE:0.57144):0.34914)" +
	":0.15891,((37_BRAFL:0.21133,36_BRAFL:0.16225):0.92214,33_BRAFL:0.8363)" +
	"'Branchiostoma floridae':0.43438):0.18105)Metazoa;"

func parseOne(t *testing.T, s string) *tree.Node {
	t.Helper()
	trees, err := newick.ParseString(s)
	if err != nil {
		t.Fatalf("%q: %s", s, err)
	}
	if len(trees) != 1 {
		t.Fatalf("%q: expected one tree, got %d", s, len(trees))
	}
	return trees[0]
}

func count(n *tree.Node, walk func(*tree.Node, func(*tree.Node))) int {
	c := 0
	walk(n, func(*tree.Node) {
		c++
	})
	return c
}

func TestPreOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()

	phy := parseOne(t, "((a,b)c,(d)e,f)g;")
	got := make([]string, 0)
	tree.PreOrder(phy, func(n *tree.Node) {
		got = append(got, n.Label())
	})
	want := []string{"g", "c", "a", "b", "e", "d", "f"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("pre-order mismatch (-want +got):\n%s", diff)
	}

	// A fresh walk starts over.
	if c := count(phy, tree.PreOrder); c != 7 {
		t.Errorf("Expected 7 nodes, got %d", c)
	}
}

func TestPreOrderCounts(t *testing.T) {
	phy := parseOne(t, metazoa)
	for _, walk := range []func(*tree.Node, func(*tree.Node)){
		tree.PreOrder, tree.PreOrderAll,
	} {
		if c := count(phy, walk); c != 55 {
			t.Errorf("Expected 55 nodes, got %d", c)
		}
		if c := count(tree.FindByName(phy, "3_BRAFL")[0], walk); c != 1 {
			t.Errorf("Expected 1 node, got %d", c)
		}
		if c := count(tree.FindByName(phy, "Caenorhabditis")[0], walk); c != 3 {
			t.Errorf("Expected 3 nodes, got %d", c)
		}
	}
}

func TestPreOrderCollapsed(t *testing.T) {
	phy := parseOne(t, metazoa)
	collapsed := tree.FindByName(phy, "Strongylocentrotus purpuratus")[0]
	collapsed.Collapsed = true

	if c := count(phy, tree.PreOrder); c != 53 {
		t.Errorf("Expected 53 visible nodes, got %d", c)
	}
	if c := count(phy, tree.PreOrderAll); c != 55 {
		t.Errorf("Expected 55 nodes, got %d", c)
	}
	if c := count(collapsed, tree.PreOrder); c != 1 {
		t.Errorf("Expected only the collapsed node, got %d", c)
	}
	if found := tree.FindByName(phy, "26_STRPU"); len(found) != 1 {
		t.Errorf("Expected lookup to see below collapsed nodes")
	}
}

func TestFindByName(t *testing.T) {
	phy := parseOne(t, metazoa)
	found := tree.FindByName(phy, "Branchiostoma floridae")
	if len(found) != 3 {
		t.Fatalf("Expected 3 matches, got %d", len(found))
	}
	lengths := make([]float64, len(found))
	for i, n := range found {
		lengths[i] = *n.Length
	}
	if diff := cmp.Diff([]float64{0.21648, 0.22189, 0.43438}, lengths); diff != "" {
		t.Errorf("matches out of pre-order (-want +got):\n%s", diff)
	}

	for _, name := range []string{"", "branchiostoma floridae", "nope"} {
		if found := tree.FindByName(phy, name); len(found) != 0 {
			t.Errorf("Expected no match for %q, got %d", name, len(found))
		}
	}
}

func TestRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "phylo.tree")
	defer teardown()

	phy := parseOne(t, metazoa)
	tree.LinkParents(phy)
	if tree.Root(phy) != phy {
		t.Fatalf("Expected the root to be its own tree root")
	}
	for _, name := range []string{"22_MOUSE", "3_BRAFL", "Diptera"} {
		n := tree.FindByName(phy, name)[0]
		if tree.Root(n) != phy {
			t.Errorf("Expected %s to lead back to the root", name)
		}
	}

	d := tree.FindByName(phy, "Diptera")[0]
	if d.Children[0].Parent != d || d.Parent.Label() != "Endopterygota" {
		t.Errorf("Unexpected parent links around Diptera")
	}

	single := parseOne(t, "(node0);").Children[0]
	if tree.Root(single) != single {
		t.Errorf("Expected an unlinked node to be its own root")
	}
	if tree.Root(nil) != nil {
		t.Errorf("Expected no root for a nil node")
	}
}
