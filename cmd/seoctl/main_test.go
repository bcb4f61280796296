package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/kumar045/seo-website/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// offline clears provider credentials so every capability runs in
// fallback mode.
func offline(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LLM_API_KEY", "GEMINI_API_KEY", "SCRAPER_API_KEY", "SERP_API_KEY", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigSample(t *testing.T) {
	out, err := run(t, "config", "sample", "--config", "/does/not/matter.toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[server]")
	assert.Contains(t, out, "[llm]")
}

func TestGenerateArticle_Offline(t *testing.T) {
	offline(t)

	out, err := run(t, "generate", "article", "coffee", "roasting")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\n"), out)
	assert.Contains(t, out, "coffee roasting")

	out, err = run(t, "generate", "article", "--format", "toml", "coffee")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "+++\n"), out)

	_, err = run(t, "generate", "article", "--format", "json", "coffee")
	assert.Error(t, err)
}

func TestGenerateLanding_Offline(t *testing.T) {
	offline(t)

	out, err := run(t, "generate", "landing", "cloud", "hosting")
	require.NoError(t, err)

	var page model.LandingPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	assert.NotEmpty(t, page.Slug)
	assert.Equal(t, model.StatusPublished, page.Status)
	assert.NotEmpty(t, page.Sections.Features)
}

func TestKeyword_Table(t *testing.T) {
	offline(t)

	out, err := run(t, "keyword", "seo", "tools", "--surface", "landing")
	require.NoError(t, err)
	assert.Contains(t, out, "Keyword:    seo tools (landing)")
	assert.Contains(t, out, "Volume:     20000/month")
	assert.Contains(t, out, "Difficulty: 45/100")
	assert.Contains(t, out, "URL")

	_, err = run(t, "keyword", "seo", "--surface", "footer")
	assert.Error(t, err)
}

func TestCompetitor_InvalidURL(t *testing.T) {
	offline(t)

	_, err := run(t, "competitor", "not a url")
	assert.Error(t, err)
}

func TestEnqueue(t *testing.T) {
	offline(t)

	// Without Redis there is nobody to hand the job to
	_, err := run(t, "enqueue", "coffee")
	assert.ErrorIs(t, err, errNoRedis)

	mr := miniredis.RunT(t)
	t.Setenv("REDIS_ADDR", mr.Addr())

	out, err := run(t, "enqueue", "--json", "--surface", "landing", "cloud", "hosting")
	require.NoError(t, err)

	var job struct {
		ID      string `json:"id"`
		Keyword string `json:"keyword"`
		Surface string `json:"surface"`
		Status  string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &job))
	assert.Equal(t, "cloud hosting", job.Keyword)
	assert.Equal(t, "landing", job.Surface)
	assert.Equal(t, "pending", job.Status)

	queued, err := mr.List("queue:generate")
	require.NoError(t, err)
	assert.Equal(t, []string{job.ID}, queued)
}

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"#", "Title"}, [][]string{{"1", "First"}, {"2"}}, []columnAlignment{alignRight})
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "╭")
	assert.Empty(t, renderTable(nil, nil, nil))
}
