package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptVariants(t *testing.T) {
	one, err := BuildPrompt("borsa", "Gucci", 1)
	require.NoError(t, err)
	two, err := BuildPrompt("borsa", "Gucci", 2)
	require.NoError(t, err)
	three, err := BuildPrompt("borsa", "Gucci", 3)
	require.NoError(t, err)

	assert.Contains(t, one, "una sola fotografia")
	assert.Contains(t, one, `"richiedi_altra_foto" a true`)
	assert.Contains(t, two, "due fotografie")
	assert.Contains(t, three, "Hai ricevuto 3 fotografie")
	assert.Contains(t, three, "valutazione finale")
	assert.Contains(t, three, `"richiedi_altra_foto": false`)
	assert.Contains(t, three, `"dettaglio_richiesto": ""`)

	assert.NotEqual(t, one, two)
	assert.NotEqual(t, two, three)
}

func TestBuildPromptCommonSections(t *testing.T) {
	for photos := 1; photos <= 4; photos++ {
		prompt, err := BuildPrompt("scarpe", "Nike", photos)
		require.NoError(t, err)

		assert.Contains(t, prompt, "'scarpe'")
		assert.Contains(t, prompt, "'Nike'")
		assert.Contains(t, prompt, `"percentuale": -1`)
		assert.Contains(t, prompt, "0-20: apparentemente autentico")
		assert.Contains(t, prompt, "20-40: plausibile")
		assert.Contains(t, prompt, "40-70: presenta elementi sospetti")
		assert.Contains(t, prompt, "70-100: forti segnali di contraffazione")
		assert.Contains(t, prompt, "coerente con il tono")
		for _, key := range []string{"percentuale", "motivazione", "richiedi_altra_foto", "dettaglio_richiesto", "marca_stimata"} {
			assert.Contains(t, prompt, `"`+key+`"`)
		}
	}
}

func TestBuildPromptFourPhotosUsesFinalVerdict(t *testing.T) {
	prompt, err := BuildPrompt("borsa", "", 4)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Hai ricevuto 4 fotografie")
	assert.Contains(t, prompt, "valutazione finale")
}

func TestBuildPromptBrand(t *testing.T) {
	withoutBrand, err := BuildPrompt("Borsa", "", 1)
	require.NoError(t, err)
	assert.Contains(t, withoutBrand, "'borsa'")
	assert.Contains(t, withoutBrand, "Nessuna marca è stata dichiarata")
	assert.NotContains(t, withoutBrand, "dichiarato della marca")

	withBrand, err := BuildPrompt("borsa", "louis   vuitton", 2)
	require.NoError(t, err)
	assert.Contains(t, withBrand, "dichiarato della marca 'Louis Vuitton'")
}
