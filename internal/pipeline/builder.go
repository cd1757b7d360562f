package pipeline

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/SketchShifter/portfolio_backend/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 15
	MaxLimit     = 100

	// allJobGroups 職種で絞り込まないことを表す値
	allJobGroups = "all"
)

// Params 検索パラメータ
type Params struct {
	JobGroup    string
	TechStacks  []string
	SearchField SearchField
	Keyword     string
	Sort        SortOrder
	Page        int
	Limit       int
}

// Pipeline 組み立て済みのステージ列 (不変)
type Pipeline struct {
	stages []Stage
}

// Stages ステージのコピーを返す
func (p Pipeline) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// Filters 総件数の計算に使うステージ
func (p Pipeline) Filters() []Stage {
	var out []Stage
	for _, s := range p.stages {
		if s.Kind().IsFilter() {
			out = append(out, s)
		}
	}
	return out
}

// Enriched 付加情報ステージを含むかどうか
func (p Pipeline) Enriched() bool {
	for _, s := range p.stages {
		if s.Kind() == KindEnrich {
			return true
		}
	}
	return false
}

// Sort 並び順 (未指定なら新着順)
func (p Pipeline) Sort() SortOrder {
	for _, s := range p.stages {
		if st, ok := s.(SortStage); ok {
			return st.Order
		}
	}
	return SortLatest
}

// Window ページの切り出し範囲
func (p Pipeline) Window() (WindowStage, bool) {
	for _, s := range p.stages {
		if w, ok := s.(WindowStage); ok {
			return w, true
		}
	}
	return WindowStage{}, false
}

// Builder ステージを蓄積するビルダー
// 各メソッドは新しい Builder を返し、元の Builder は変更しない
type Builder struct {
	stages []Stage
	err    error
}

// NewBuilder 空のビルダーを作成
func NewBuilder() Builder {
	return Builder{}
}

func (b Builder) with(s Stage) Builder {
	next := make([]Stage, len(b.stages), len(b.stages)+1)
	copy(next, b.stages)
	return Builder{stages: append(next, s), err: b.err}
}

func (b Builder) fail(err error) Builder {
	if b.err != nil {
		return b
	}
	return Builder{stages: b.stages, err: err}
}

// JobGroup 職種名で絞り込む ("" と "all" は絞り込みなし)
func (b Builder) JobGroup(name string) Builder {
	name = strings.TrimSpace(name)
	if name == "" || name == allJobGroups {
		return b
	}
	return b.with(JobGroupFilter{Name: name})
}

// TechStacks 指定スキルをすべて含むものに絞り込む
func (b Builder) TechStacks(skills []string) Builder {
	seen := make(map[string]struct{}, len(skills))
	var cleaned []string
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		cleaned = append(cleaned, s)
	}
	if len(cleaned) == 0 {
		return b
	}
	return b.with(TechStackFilter{Skills: cleaned})
}

// Keyword 検索対象ごとのキーワード絞り込み (空のキーワードは無視)
func (b Builder) Keyword(field SearchField, keyword string) Builder {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return b
	}

	switch field {
	case FieldTitle, FieldTag, FieldUser, FieldLikedByUser:
		return b.with(KeywordFilter{Field: field, Keyword: keyword})
	case FieldID:
		id, err := strconv.ParseUint(keyword, 10, 64)
		if err != nil || id == 0 {
			return b.fail(models.NewInvalidArgumentError("無効なポートフォリオIDです: %s", keyword))
		}
		return b.with(KeywordFilter{Field: field, Keyword: keyword, PortfolioID: uint(id)})
	default:
		return b.fail(models.NewInvalidArgumentError("不明な検索タイプです: %s", field))
	}
}

// ID ポートフォリオ ID の完全一致
func (b Builder) ID(id uint) Builder {
	return b.with(KeywordFilter{Field: FieldID, Keyword: strconv.FormatUint(uint64(id), 10), PortfolioID: id})
}

// Owner 所有者で絞り込む
func (b Builder) Owner(userID string) Builder {
	return b.with(OwnerFilter{UserID: userID})
}

// Enrich 付加情報を付与する
func (b Builder) Enrich() Builder {
	return b.with(Enrichment{})
}

// SortBy 並び順を指定
func (b Builder) SortBy(order SortOrder) Builder {
	return b.with(SortStage{Order: ParseSort(string(order))})
}

// Paginate ページを指定 (1 未満は 1 に丸める)
func (b Builder) Paginate(page, limit int) Builder {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		return b.fail(models.NewInvalidArgumentError("limitは%d以下で指定してください", MaxLimit))
	}
	// skip = (page-1)*limit が int に収まること
	if page > (math.MaxInt-1)/limit+1 {
		return b.fail(models.NewInvalidArgumentError("pageが大きすぎます: %d", page))
	}
	return b.with(WindowStage{Skip: (page - 1) * limit, Limit: limit})
}

// Build ステージを実行順に並べてパイプラインを作成
// 付加情報・並び替え・ウィンドウは最後に指定したものだけが残る
func (b Builder) Build() (Pipeline, error) {
	if b.err != nil {
		return Pipeline{}, b.err
	}

	singletons := map[StageKind]int{}
	for i, s := range b.stages {
		switch s.Kind() {
		case KindEnrich, KindSort, KindWindow:
			singletons[s.Kind()] = i
		}
	}

	stages := make([]Stage, 0, len(b.stages))
	for i, s := range b.stages {
		if last, ok := singletons[s.Kind()]; ok && last != i {
			continue
		}
		stages = append(stages, s)
	}
	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].Kind() < stages[j].Kind()
	})

	return Pipeline{stages: stages}, nil
}

// FromParams 検索パラメータから全ステージを組み立てる
func FromParams(params Params) (Pipeline, error) {
	field := params.SearchField
	if field == "" {
		field = FieldTitle
	}

	return NewBuilder().
		JobGroup(params.JobGroup).
		TechStacks(params.TechStacks).
		Keyword(field, params.Keyword).
		Enrich().
		SortBy(params.Sort).
		Paginate(params.Page, params.Limit).
		Build()
}

// ParseSort 並び順を解析 (不明な値は新着順)
func ParseSort(s string) SortOrder {
	switch SortOrder(s) {
	case SortViews:
		return SortViews
	case SortLikes:
		return SortLikes
	default:
		return SortLatest
	}
}

// ParseSearchField 検索タイプを解析
func ParseSearchField(s string) (SearchField, error) {
	switch s {
	case "":
		return FieldTitle, nil
	case "_id":
		return FieldID, nil
	}
	switch f := SearchField(s); f {
	case FieldTitle, FieldTag, FieldUser, FieldLikedByUser, FieldID:
		return f, nil
	default:
		return "", models.NewInvalidArgumentError("不明な検索タイプです: %s", s)
	}
}
