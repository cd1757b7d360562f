// Package pipeline はポートフォリオ検索のステージ列を組み立てる
//
// ステージはストアのクエリ言語から独立した型付きの記述子で、
// 組み立て後は変更されない。実行はリポジトリ側のアダプタが一度だけ行う。
package pipeline

// StageKind ステージの種類 (値の小さい順に実行される)
type StageKind int

const (
	KindJobGroup StageKind = iota + 1
	KindTechStack
	KindKeyword
	KindOwner
	KindEnrich
	KindSort
	KindWindow
)

// IsFilter 総件数の計算に含まれるフィルタステージかどうか
func (k StageKind) IsFilter() bool {
	return k < KindEnrich
}

// Stage パイプラインの 1 ステップ
type Stage interface {
	Kind() StageKind
}

// SearchField キーワード検索の対象
type SearchField string

const (
	FieldTitle       SearchField = "title"
	FieldTag         SearchField = "tag"
	FieldUser        SearchField = "user"
	FieldLikedByUser SearchField = "likedByUser"
	FieldID          SearchField = "id"
)

// SortOrder 並び順
type SortOrder string

const (
	SortLatest SortOrder = "latest"
	SortViews  SortOrder = "views"
	SortLikes  SortOrder = "likes"
)

// JobGroupFilter 職種名で絞り込む (名前は実行時に ID へ解決する)
type JobGroupFilter struct {
	Name string
}

// TechStackFilter 指定したスキルをすべて含むポートフォリオに絞り込む
type TechStackFilter struct {
	Skills []string
}

// KeywordFilter 検索対象ごとのキーワード絞り込み
// Field が FieldID の場合は PortfolioID に解析済みの値が入る
type KeywordFilter struct {
	Field       SearchField
	Keyword     string
	PortfolioID uint
}

// OwnerFilter 所有者の完全一致
type OwnerFilter struct {
	UserID string
}

// Enrichment いいね数・技術スタック情報・職種名・所有者情報を付与する
type Enrichment struct{}

// SortStage 並び替え
type SortStage struct {
	Order SortOrder
}

// WindowStage ページの切り出し
type WindowStage struct {
	Skip  int
	Limit int
}

func (JobGroupFilter) Kind() StageKind  { return KindJobGroup }
func (TechStackFilter) Kind() StageKind { return KindTechStack }
func (KeywordFilter) Kind() StageKind   { return KindKeyword }
func (OwnerFilter) Kind() StageKind     { return KindOwner }
func (Enrichment) Kind() StageKind      { return KindEnrich }
func (SortStage) Kind() StageKind       { return KindSort }
func (WindowStage) Kind() StageKind     { return KindWindow }

// Page ウィンドウが表すページ番号 (1 始まり)
func (w WindowStage) Page() int {
	if w.Limit <= 0 {
		return 1
	}
	return w.Skip/w.Limit + 1
}
