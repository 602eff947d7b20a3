package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mkroot/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	is1 := domain.NewInternedString("libc6")
	is2 := domain.NewInternedString("libc6")

	// Interned values compare equal and can be used as map keys.
	assert.Equal(t, is1, is2)
	assert.Equal(t, "libc6", is1.String())

	seen := map[domain.PackageName]bool{is1: true}
	assert.True(t, seen[is2])
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	assert.True(t, zero.IsZero())
	assert.Empty(t, zero.String())
	assert.False(t, domain.NewInternedString("").IsZero())
}

func TestInternedStringJSON(t *testing.T) {
	type record struct {
		Name domain.PackageName `json:"name"`
	}

	data, err := json.Marshal(record{Name: domain.NewPackageName("zlib1g")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"zlib1g"}`, string(data))

	var decoded record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.NewPackageName("zlib1g"), decoded.Name)
}
