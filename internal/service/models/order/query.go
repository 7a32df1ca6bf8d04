package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids    []string `json:"ids,omitempty"`
	Status *Status  `json:"status,omitempty"`
	Limit  int      `json:"limit,omitempty"`
	Offset int      `json:"offset,omitempty"`
}

// PageMeta describes the pagination metadata of a list response.
type PageMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// Page is one page of orders plus its pagination metadata.
type Page struct {
	Data []Order  `json:"data"`
	Meta PageMeta `json:"meta"`
}
