package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
	"github.com/iWorld-y/language_miner/app/language_miner/pkg/source"
)

func names(cs []source.Connector) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name())
	}
	return out
}

func TestNewConnectorsNoneEnabled(t *testing.T) {
	_, err := NewConnectors(context.Background(), config.Default(), Enabled{})
	assert.Error(t, err)
}

func TestNewConnectorsSkipsMissingCredentials(t *testing.T) {
	cfg := config.Default()

	cs, err := NewConnectors(context.Background(), cfg, Enabled{Reddit: true, Amazon: true, YouTube: true})
	require.NoError(t, err)
	assert.Equal(t, []string{source.NameAmazon}, names(cs))
}

func TestNewConnectorsAll(t *testing.T) {
	cfg := config.Default()
	cfg.Sources.Reddit.ClientID = "id"
	cfg.Sources.Reddit.ClientSecret = "secret"
	cfg.Sources.YouTube.APIKey = "key"

	cs, err := NewConnectors(context.Background(), cfg, Enabled{Reddit: true, Amazon: true, YouTube: true})
	require.NoError(t, err)
	assert.Equal(t, []string{source.NameReddit, source.NameAmazon, source.NameYouTube}, names(cs))
}

func TestEnabledSources(t *testing.T) {
	e := Enabled{Amazon: true}
	assert.True(t, e.Any())
	assert.Equal(t, map[string]bool{"reddit": false, "amazon": true, "youtube": false}, e.Sources())
}
