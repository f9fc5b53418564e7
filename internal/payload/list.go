package payload

// ListReqQuery carries the filter/sort/pagination query parameters of the
// project list endpoint. Offset and Limit are pointers so that an omitted
// parameter can be told apart from an explicit zero, which is rejected.
type ListReqQuery struct {
	ConstituencyCode string `form:"constituency_code"`
	Category         string `form:"category"`
	Status           string `form:"status"`
	Sort             string `form:"sort"`
	Offset           *int   `form:"offset"`
	Limit            *int   `form:"limit"`
}

// ListResp wraps a page of rows with the total matching row count.
type ListResp[T any] struct {
	Rows  []T   `json:"rows"`
	Count int64 `json:"count"`
}
