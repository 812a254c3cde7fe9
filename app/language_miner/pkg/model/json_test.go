package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMarshalNil(t *testing.T) {
	var a Analysis
	b, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"pain_points":[]`)
	assert.Contains(t, string(b), `"key_insights":[]`)
	assert.NotContains(t, string(b), "null")
}

func TestFlexString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"high"`, "high"},
		{`42`, "42"},
		{`true`, "true"},
		{`null`, ""},
	}
	for _, c := range cases {
		var f FlexString
		require.NoError(t, json.Unmarshal([]byte(c.in), &f), c.in)
		assert.Equal(t, c.want, f.String())
	}

	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &f))
}

func TestOrderedMapKeepsOrder(t *testing.T) {
	in := `{"problem":"p","agitate":"a","solution":"s"}`
	var m OrderedMap[FlexString]
	require.NoError(t, json.Unmarshal([]byte(in), &m))
	assert.Equal(t, []string{"problem", "agitate", "solution"}, m.Keys())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestOrderedMapEmptyAndInvalid(t *testing.T) {
	var m OrderedMap[List[string]]
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))

	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.Equal(t, 0, m.Len())

	assert.Error(t, json.Unmarshal([]byte(`["x"]`), &m))
}

func TestOrderedMapSetKeepsFirstPosition(t *testing.T) {
	var m OrderedMap[int]
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestTimestampPriority(t *testing.T) {
	r := SourceRecord{Date: "2024-01-03", PublishedAt: "2024-01-02T00:00:00Z"}
	ts, ok := r.Timestamp()
	assert.True(t, ok)
	assert.Equal(t, "2024-01-02T00:00:00Z", ts)

	r.CreatedUTC = "2024-01-01T00:00:00Z"
	ts, _ = r.Timestamp()
	assert.Equal(t, "2024-01-01T00:00:00Z", ts)

	_, ok = SourceRecord{}.Timestamp()
	assert.False(t, ok)
}

func TestResultVariants(t *testing.T) {
	s := Structured(Analysis{KeyInsights: List[string]{"x"}})
	v, ok := s.Value()
	assert.True(t, ok)
	assert.Equal(t, "x", v.KeyInsights[0])
	assert.Equal(t, "structured", s.Status().Status)

	r := Raw[Analysis]("not json")
	_, ok = r.Value()
	assert.False(t, ok)
	assert.Equal(t, PassStatus{Status: "raw", Raw: "not json"}, r.Status())
	assert.Empty(t, r.OrZero().PainPoints)

	e := Failed[AdFramework](assert.AnError)
	assert.Equal(t, KindError, e.Kind())
	assert.Equal(t, assert.AnError.Error(), e.ErrMessage())
	assert.True(t, e.Status().Degraded())
}

func TestAwarenessBuckets(t *testing.T) {
	var b AwarenessBuckets
	assert.True(t, b.Add(StageMostAware, SourceRecord{Text: "buy"}))
	assert.False(t, b.Add("ready_to_buy", SourceRecord{Text: "x"}))
	assert.Len(t, b.Get(StageMostAware), 1)
	assert.Equal(t, 1, b.Total())
}

func TestMarshalKeepsHTMLCharacters(t *testing.T) {
	var m OrderedMap[List[string]]
	m.Set("a<b", List[string]{"x & y", "<tag>"})

	out, err := marshalRaw(m)
	require.NoError(t, err)
	assert.Equal(t, `{"a<b":["x & y","<tag>"]}`, string(out))
}
