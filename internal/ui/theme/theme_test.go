package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/tier"
)

func TestTierStyle(t *testing.T) {
	for _, l := range append(tier.DefaultVocabulary(), "Lainnya") {
		assert.Contains(t, TierStyle(l).Render(string(l)), string(l))
	}
	assert.True(t, TierStyle(tier.Berprestasi).GetBold())
	assert.False(t, TierStyle(tier.Cukup).GetBold())
}
