package identity

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LotCoM/watcher-setup/pkg/setup"
)

func TestDerive_GoldenValues(t *testing.T) {
	tests := []struct {
		seed string
		want string
	}{
		{"LotCom Watcher 1.2.3", "7c944604-45fd-8922-30e8-91abb9c16a16"},
		{"LotCom Watcher 1.0.0", "47bc3667-d513-0623-3039-bd00900c1180"},
	}

	for _, tt := range tests {
		t.Run(tt.seed, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.seed).String())
		})
	}
}

func TestDerive_Deterministic(t *testing.T) {
	seed := Seed("LotCom Watcher", "2.4.1")

	id1 := Derive(seed)
	id2 := Derive(seed)

	assert.Equal(t, id1, id2, "expected byte-identical identities")
	assert.NotEqual(t, uuid.Nil, id1)
}

func TestDerive_UsesFirstSixteenDigestBytes(t *testing.T) {
	seed := "LotCom Watcher 9.9.9"
	sum := sha256.Sum256([]byte(seed))
	id := Derive(seed)

	// Everything after Data3 is copied verbatim.
	assert.Equal(t, sum[8:16], id[8:16])
	// Data1..Data3 are byte-reversed per field.
	assert.Equal(t, []byte{sum[3], sum[2], sum[1], sum[0]}, id[0:4])
	assert.Equal(t, []byte{sum[5], sum[4]}, id[4:6])
	assert.Equal(t, []byte{sum[7], sum[6]}, id[6:8])
}

func TestDerive_NearDuplicateSeedsDiffer(t *testing.T) {
	const n = 5000
	ids := make(map[uuid.UUID]string, n*2)

	for i := 0; i < n; i++ {
		for _, seed := range []string{
			fmt.Sprintf("LotCom Watcher 1.%d.0", i),
			fmt.Sprintf("LotCom Watcher 1.%d.1", i),
		} {
			id := Derive(seed)
			if other, exists := ids[id]; exists {
				t.Fatalf("collision: %q and %q both map to %s", seed, other, id)
			}
			ids[id] = seed
		}
	}

	require.Len(t, ids, n*2)
}

func TestDerive_SingleCharacterSensitivity(t *testing.T) {
	base := "LotCom Watcher 1.2.3"
	baseID := Derive(base)

	for i := range base {
		mutated := []byte(base)
		mutated[i] ^= 0x01
		assert.NotEqual(t, baseID, Derive(string(mutated)), "flipping byte %d should change the identity", i)
	}
}

func TestDerive_TextualForm(t *testing.T) {
	for _, seed := range []string{"", "a", "LotCom Watcher 0.0.1", "ünïcødé 1.2.3"} {
		id := Derive(seed)
		assert.Len(t, id[:], 16)

		parsed, err := uuid.Parse(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
		assert.Len(t, id.String(), 36)
	}
}

func TestSeed(t *testing.T) {
	assert.Equal(t, "LotCom Watcher 1.2.3", Seed("LotCom Watcher", setup.Version("1.2.3")))
	assert.Equal(t, Derive("LotCom Watcher 1.2.3"), ForVersion("LotCom Watcher", "1.2.3"))
}
