package cnext

// IncludeNode is one `.cnx` file reached while walking an entry unit's
// transitive includes (§3.3).
type IncludeNode struct {
	Path  string
	Unit  *CompilationUnit
	Table *SymbolTable
}

// IncludeGraph is the transitive closure of input-language includes
// reachable from one entry file, plus every C/C++ header pulled in
// along the way. Nodes is keyed by resolved absolute path; Order
// records first-discovery order.
//
// Grounded on query_errors.go's discoverImportedFiles (DFS over
// imports with a visited set) and grammar_import.go's sortedDeps.
type IncludeGraph struct {
	Nodes         map[string]*IncludeNode
	Order         []string
	HeaderEffects *EffectSet
}

func newIncludeGraph() *IncludeGraph {
	return &IncludeGraph{
		Nodes:         map[string]*IncludeNode{},
		HeaderEffects: NewEffectSet(),
	}
}

func (g *IncludeGraph) add(node *IncludeNode) {
	if _, ok := g.Nodes[node.Path]; ok {
		return
	}
	g.Nodes[node.Path] = node
	g.Order = append(g.Order, node.Path)
}
