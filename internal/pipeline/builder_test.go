package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/SketchShifter/portfolio_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(stages []Stage) []StageKind {
	out := make([]StageKind, 0, len(stages))
	for _, s := range stages {
		out = append(out, s.Kind())
	}
	return out
}

func TestFromParams_FullSearch(t *testing.T) {
	p, err := FromParams(Params{
		JobGroup:    "Frontend",
		TechStacks:  []string{"React", " Node ", "React", ""},
		SearchField: FieldTag,
		Keyword:     "  web ",
		Sort:        SortLikes,
		Page:        3,
		Limit:       10,
	})
	require.NoError(t, err)

	assert.Equal(t,
		[]StageKind{KindJobGroup, KindTechStack, KindKeyword, KindEnrich, KindSort, KindWindow},
		kinds(p.Stages()))

	stages := p.Stages()
	assert.Equal(t, JobGroupFilter{Name: "Frontend"}, stages[0])
	assert.Equal(t, TechStackFilter{Skills: []string{"React", "Node"}}, stages[1])
	assert.Equal(t, KeywordFilter{Field: FieldTag, Keyword: "web"}, stages[2])
	assert.Equal(t, SortLikes, p.Sort())

	w, ok := p.Window()
	require.True(t, ok)
	assert.Equal(t, WindowStage{Skip: 20, Limit: 10}, w)
	assert.Equal(t, 3, w.Page())

	assert.Len(t, p.Filters(), 3)
	assert.True(t, p.Enriched())
}

func TestFromParams_Defaults(t *testing.T) {
	p, err := FromParams(Params{JobGroup: "all"})
	require.NoError(t, err)

	assert.Equal(t, []StageKind{KindEnrich, KindSort, KindWindow}, kinds(p.Stages()))
	assert.Empty(t, p.Filters())
	assert.Equal(t, SortLatest, p.Sort())

	w, _ := p.Window()
	assert.Equal(t, WindowStage{Skip: 0, Limit: 1}, w)
}

func TestFromParams_ClampsPageAndLimit(t *testing.T) {
	p, err := FromParams(Params{Page: -4, Limit: 0})
	require.NoError(t, err)

	w, _ := p.Window()
	assert.Equal(t, 0, w.Skip)
	assert.Equal(t, 1, w.Limit)
	assert.Equal(t, 1, w.Page())
}

func TestFromParams_LimitTooLarge(t *testing.T) {
	_, err := FromParams(Params{Page: 1, Limit: MaxLimit + 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidArgument))
}

func TestFromParams_PageTooLarge(t *testing.T) {
	for _, page := range []int{math.MaxInt / 10, math.MaxInt, (math.MaxInt-1)/DefaultLimit + 2} {
		_, err := FromParams(Params{Page: page, Limit: DefaultLimit})
		require.Error(t, err, "page=%d", page)
		assert.True(t, errors.Is(err, models.ErrInvalidArgument))
	}

	// 上限ちょうどのページは受け付け、skip は負にならない
	maxPage := (math.MaxInt-1)/DefaultLimit + 1
	p, err := FromParams(Params{Page: maxPage, Limit: DefaultLimit})
	require.NoError(t, err)
	w, ok := p.Window()
	require.True(t, ok)
	assert.GreaterOrEqual(t, w.Skip, 0)
	assert.Equal(t, maxPage, w.Page())
}

func TestFromParams_IDSearch(t *testing.T) {
	p, err := FromParams(Params{SearchField: FieldID, Keyword: "42", Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, KeywordFilter{Field: FieldID, Keyword: "42", PortfolioID: 42}, p.Filters()[0])

	for _, bad := range []string{"abc", "0", "-1", "1.5"} {
		_, err := FromParams(Params{SearchField: FieldID, Keyword: bad, Page: 1, Limit: 1})
		assert.True(t, errors.Is(err, models.ErrInvalidArgument), "keyword=%q", bad)
	}
}

func TestFromParams_UnknownSearchField(t *testing.T) {
	_, err := FromParams(Params{SearchField: "contents", Keyword: "x", Page: 1, Limit: 1})
	assert.True(t, errors.Is(err, models.ErrInvalidArgument))

	// キーワードが空ならステージ自体が作られない
	_, err = FromParams(Params{SearchField: "contents", Page: 1, Limit: 1})
	assert.NoError(t, err)
}

func TestBuilder_IsImmutable(t *testing.T) {
	base := NewBuilder().JobGroup("Backend")
	withTech := base.TechStacks([]string{"Go"})
	withKeyword := base.Keyword(FieldTitle, "api")

	p1, err := base.Build()
	require.NoError(t, err)
	p2, err := withTech.Build()
	require.NoError(t, err)
	p3, err := withKeyword.Build()
	require.NoError(t, err)

	assert.Equal(t, []StageKind{KindJobGroup}, kinds(p1.Stages()))
	assert.Equal(t, []StageKind{KindJobGroup, KindTechStack}, kinds(p2.Stages()))
	assert.Equal(t, []StageKind{KindJobGroup, KindKeyword}, kinds(p3.Stages()))

	// 返されたスライスを書き換えてもパイプラインは変わらない
	stages := p2.Stages()
	stages[0] = OwnerFilter{UserID: "x"}
	assert.Equal(t, JobGroupFilter{Name: "Backend"}, p2.Stages()[0])
}

func TestBuilder_OrdersStagesAndKeepsLastSingleton(t *testing.T) {
	p, err := NewBuilder().
		Paginate(1, 5).
		SortBy(SortViews).
		Enrich().
		Owner("octocat").
		SortBy(SortLikes).
		JobGroup("Design").
		Paginate(2, 5).
		Build()
	require.NoError(t, err)

	assert.Equal(t,
		[]StageKind{KindJobGroup, KindOwner, KindEnrich, KindSort, KindWindow},
		kinds(p.Stages()))
	assert.Equal(t, SortLikes, p.Sort())
	w, _ := p.Window()
	assert.Equal(t, 2, w.Page())
}

func TestBuilder_FirstErrorWins(t *testing.T) {
	_, err := NewBuilder().
		Keyword(FieldID, "nope").
		Paginate(1, MaxLimit+1).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortLatest, ParseSort(""))
	assert.Equal(t, SortLatest, ParseSort("popular"))
	assert.Equal(t, SortViews, ParseSort("views"))
	assert.Equal(t, SortLikes, ParseSort("likes"))
}

func TestParseSearchField(t *testing.T) {
	f, err := ParseSearchField("")
	require.NoError(t, err)
	assert.Equal(t, FieldTitle, f)

	f, err = ParseSearchField("_id")
	require.NoError(t, err)
	assert.Equal(t, FieldID, f)

	f, err = ParseSearchField("likedByUser")
	require.NoError(t, err)
	assert.Equal(t, FieldLikedByUser, f)

	_, err = ParseSearchField("everything")
	assert.True(t, errors.Is(err, models.ErrInvalidArgument))
}
