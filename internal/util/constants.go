package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeOctetStream = "application/octet-stream"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
