package pagination

// Metadata ページネーション情報
type Metadata struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

// Paginate 総件数・ページ・件数からページ情報を計算
// limit は 1 以上であること (呼び出し側でクランプ済み)
func Paginate(totalCount int64, page, limit int) Metadata {
	totalPages := 0
	if totalCount > 0 && limit > 0 {
		totalPages = int(totalCount / int64(limit))
		if totalCount%int64(limit) > 0 {
			totalPages++
		}
	}

	return Metadata{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}
