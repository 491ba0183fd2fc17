package services

import (
	"testing"

	"fakecheckapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainReply = `{"percentuale":10,"motivazione":"Logo e cuciture regolari","richiedi_altra_foto":false,"dettaglio_richiesto":""}`

func TestCleanAIResponseText(t *testing.T) {
	cases := map[string]string{
		"plain":             plainReply,
		"padded":            "\n  " + plainReply + "  \n",
		"fence":             "```\n" + plainReply + "\n```",
		"json fence":        "```json\n" + plainReply + "\n```",
		"upper json fence":  "```JSON\n" + plainReply + "\n```",
		"inline json fence": "```json" + plainReply + "```",
		"trailing chatter":  "```json\n" + plainReply + "\n```\nSpero sia utile!",
		"unclosed fence":    "```json\n" + plainReply,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, plainReply, CleanAIResponseText(raw))
		})
	}
}

func TestFencedAndPlainRepliesParseIdentically(t *testing.T) {
	plain, err := ParseAnalysisResult(CleanAIResponseText(plainReply), models.OnePhoto, false)
	require.NoError(t, err)

	fenced, err := ParseAnalysisResult(CleanAIResponseText("```json\n"+plainReply+"\n```"), models.OnePhoto, false)
	require.NoError(t, err)

	assert.Equal(t, plain, fenced)
}
