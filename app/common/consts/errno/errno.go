package errno

const (
	InvalidParam = 40000 + iota
	CommandEmpty
	QueryEmpty
	CategoryNotFound
	TooManyRequests
)

const (
	InternalError = 50000 + iota
	CatalogUnavailable
)
