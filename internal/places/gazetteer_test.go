package places

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGazetteer(t *testing.T) *Gazetteer {
	t.Helper()
	g, err := NewGazetteer()
	require.NoError(t, err)
	return g
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Maputo", "maputo"},
		{"  MAPUTÓ ", "maputo"},
		{"Gurué", "gurue"},
		{"Manhiça", "manhica"},
		{"Alto Maé", "alto mae"},
		{"Ilha de Moçambique", "ilha de mocambique"},
		{"àâã", "aaa"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestResolve(t *testing.T) {
	g := newTestGazetteer(t)

	loc, ok := g.Resolve("Maputo")
	require.True(t, ok)
	assert.Equal(t, -25.966375, loc.Lat)
	assert.Equal(t, 32.580611, loc.Lng)

	accented, ok := g.Resolve("Maputó")
	require.True(t, ok)
	assert.Equal(t, loc, accented)

	_, ok = g.Resolve("Nowhereland")
	assert.False(t, ok)
}

func TestResolve_AccentedKeys(t *testing.T) {
	g := newTestGazetteer(t)

	for _, name := range []string{"gurue", "Gurué", "manhica", "ALTO MAE"} {
		_, ok := g.Resolve(name)
		assert.True(t, ok, name)
	}
}

func TestResolve_NoPartialMatch(t *testing.T) {
	g := newTestGazetteer(t)

	for _, name := range []string{"mapu", "maputo city", "costa"} {
		_, ok := g.Resolve(name)
		assert.False(t, ok, name)
	}
}

func TestProximityTerms(t *testing.T) {
	g := newTestGazetteer(t)

	assert.Equal(t, []string{"matola", "costa do sol", "marracuene", "polana", "baixa"}, g.ProximityTerms("Maputo"))
	assert.Equal(t, []string{"sommerschield", "baixa", "alto mae"}, g.ProximityTerms("polana"))
	assert.Nil(t, g.ProximityTerms("Nowhereland"))

	terms := g.ProximityTerms("maputo")
	terms[0] = "changed"
	assert.Equal(t, "matola", g.ProximityTerms("maputo")[0])
}

func TestList_SortedByName(t *testing.T) {
	g := newTestGazetteer(t)

	list := g.List()
	require.Len(t, list, g.Len())
	for i := 1; i < len(list); i++ {
		assert.LessOrEqual(t, Normalize(list[i-1].Name), Normalize(list[i].Name))
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "places: [\n"},
		{"missing name", "places:\n  - {lat: 1, lng: 1}\n"},
		{"latitude out of range", "places:\n  - {name: x, lat: 91, lng: 1}\n"},
		{"duplicate after normalizing", "places:\n  - {name: Gurué, lat: 1, lng: 1}\n  - {name: gurue, lat: 2, lng: 2}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestNearest(t *testing.T) {
	g := newTestGazetteer(t)

	t.Run("every place is its own nearest", func(t *testing.T) {
		for _, loc := range g.List() {
			got, dist, ok := g.Nearest(loc.Lat, loc.Lng, 10)
			require.True(t, ok, loc.Name)
			assert.Equal(t, loc, got)
			assert.Equal(t, 0.0, dist)
		}
	})

	t.Run("close to maputo", func(t *testing.T) {
		got, dist, ok := g.Nearest(-25.9670, 32.5790, 5)
		require.True(t, ok)
		assert.Equal(t, "maputo", got.Name)
		assert.Less(t, dist, 1.0)
	})

	t.Run("nothing within radius", func(t *testing.T) {
		_, _, ok := g.Nearest(-24.0, 30.0, 10)
		assert.False(t, ok)
	})

	t.Run("wide radius scans every place", func(t *testing.T) {
		got, _, ok := g.Nearest(-20.0, 34.8, 500)
		require.True(t, ok)
		assert.Equal(t, "beira", got.Name)
	})

	t.Run("default radius", func(t *testing.T) {
		got, _, ok := g.Nearest(-25.5, 32.7, 0)
		require.True(t, ok)
		assert.Equal(t, "marracuene", got.Name)
	})
}

func TestRingFor(t *testing.T) {
	assert.Equal(t, 2, ringFor(5))
	assert.Equal(t, 5, ringFor(50))
}
