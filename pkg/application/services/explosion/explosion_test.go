package explosion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planforge/pkg/domain/entities"
	"planforge/pkg/infrastructure/repositories/memory"
)

func buildBOM(t *testing.T, edges ...[3]interface{}) *memory.BOMRepository {
	t.Helper()
	repo := memory.NewBOMRepository(len(edges))
	for _, e := range edges {
		edge, err := entities.NewBOMEdge(
			entities.SKU(e[0].(string)),
			entities.SKU(e[1].(string)),
			entities.Quantity(e[2].(int)),
			false,
		)
		require.NoError(t, err)
		repo.AddEdge(*edge)
	}
	return repo
}

func findRequirement(reqs []*Requirement, sku entities.SKU) *Requirement {
	for _, r := range reqs {
		if r.ComponentSKU == sku {
			return r
		}
	}
	return nil
}

func TestExplode_SingleLevelRoundTrip(t *testing.T) {
	repo := buildBOM(t,
		[3]interface{}{"P", "C1", 2},
		[3]interface{}{"P", "C2", 3},
	)
	engine := NewEngine(repo)

	reqs, warnings, err := engine.Explode("P", 5)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	c1 := findRequirement(reqs, "C1")
	require.NotNil(t, c1)
	assert.InDelta(t, 10.0, float64(c1.TotalQty), 1e-9)

	c2 := findRequirement(reqs, "C2")
	require.NotNil(t, c2)
	assert.InDelta(t, 15.0, float64(c2.TotalQty), 1e-9)
}

func TestExplode_MultiLevelMultiplication(t *testing.T) {
	repo := buildBOM(t,
		[3]interface{}{"TOP", "SUB", 2},
		[3]interface{}{"SUB", "LEAF", 4},
	)
	engine := NewEngine(repo)

	reqs, _, err := engine.Explode("TOP", 3)
	require.NoError(t, err)

	sub := findRequirement(reqs, "SUB")
	require.NotNil(t, sub)
	assert.InDelta(t, 6.0, float64(sub.TotalQty), 1e-9)

	leaf := findRequirement(reqs, "LEAF")
	require.NotNil(t, leaf)
	assert.InDelta(t, 24.0, float64(leaf.TotalQty), 1e-9)
}

func TestExplode_SharedComponentAccumulates(t *testing.T) {
	repo := buildBOM(t,
		[3]interface{}{"TOP", "SUB-A", 1},
		[3]interface{}{"TOP", "SUB-B", 1},
		[3]interface{}{"SUB-A", "SCREW", 4},
		[3]interface{}{"SUB-B", "SCREW", 6},
	)
	engine := NewEngine(repo)

	reqs, warnings, err := engine.Explode("TOP", 2)
	require.NoError(t, err)
	assert.Empty(t, warnings, "shared SKU on independent branches is not a cycle")

	screw := findRequirement(reqs, "SCREW")
	require.NotNil(t, screw)
	assert.InDelta(t, 20.0, float64(screw.TotalQty), 1e-9)
	require.Len(t, screw.Paths, 2)
	assert.Equal(t, []entities.SKU{"TOP", "SUB-A", "SCREW"}, screw.Paths[0].Route)
	assert.Equal(t, []entities.SKU{"TOP", "SUB-B", "SCREW"}, screw.Paths[1].Route)
}

func TestExplode_PhantomExplodedThrough(t *testing.T) {
	repo := memory.NewBOMRepository(2)
	phantomEdge, err := entities.NewBOMEdge("TOP", "PHANTOM-KIT", 2, true)
	require.NoError(t, err)
	repo.AddEdge(*phantomEdge)
	leafEdge, err := entities.NewBOMEdge("PHANTOM-KIT", "LEAF", 3, false)
	require.NoError(t, err)
	repo.AddEdge(*leafEdge)

	engine := NewEngine(repo)
	reqs, _, err := engine.Explode("TOP", 1)
	require.NoError(t, err)

	assert.Nil(t, findRequirement(reqs, "PHANTOM-KIT"), "phantoms are never stocked")
	leaf := findRequirement(reqs, "LEAF")
	require.NotNil(t, leaf)
	assert.InDelta(t, 6.0, float64(leaf.TotalQty), 1e-9)
}

func TestExplode_CycleDetectedInBoundedTime(t *testing.T) {
	repo := buildBOM(t,
		[3]interface{}{"A", "B", 1},
		[3]interface{}{"B", "A", 1},
	)
	// Disable the depth guard so termination relies on path cycle
	// detection alone.
	engine := NewEngine(repo)
	engine.maxDepth = 1 << 30

	reqs, warnings, err := engine.Explode("A", 1)
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	var circular *entities.CircularBOMError
	require.True(t, errors.As(warnings[0], &circular))
	assert.Equal(t, entities.SKU("A"), circular.SKU)

	b := findRequirement(reqs, "B")
	require.NotNil(t, b)
	assert.InDelta(t, 1.0, float64(b.TotalQty), 1e-9)
}

func TestExplode_MaxDepthGuard(t *testing.T) {
	repo := buildBOM(t,
		[3]interface{}{"L0", "L1", 1},
		[3]interface{}{"L1", "L2", 1},
		[3]interface{}{"L2", "L3", 1},
	)
	engine := NewEngine(repo)
	engine.maxDepth = 2

	_, warnings, err := engine.Explode("L0", 1)
	require.NoError(t, err)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0].Error(), "max BOM depth")
}

func TestExplode_RejectsNonPositiveBuildQty(t *testing.T) {
	engine := NewEngine(memory.NewBOMRepository(0))
	_, _, err := engine.Explode("P", 0)
	assert.Error(t, err)
}

func TestWhereUsed_FindsFinishedGoods(t *testing.T) {
	repo := buildBOM(t,
		[3]interface{}{"FG-1", "SUB", 1},
		[3]interface{}{"FG-2", "SUB", 2},
		[3]interface{}{"SUB", "SCREW", 4},
	)
	engine := NewEngine(repo)

	assemblies, err := engine.WhereUsed("SCREW")
	require.NoError(t, err)
	assert.Equal(t, []entities.SKU{"FG-1", "FG-2"}, assemblies)
}
