package domain

type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindSheets SourceKind = "sheets"
	SourceKindS3     SourceKind = "s3"
	SourceKindSQL    SourceKind = "sql"
)

// ConfigProfile is a named .databrickscfg section.
type ConfigProfile struct {
	Name string
	Host string
}
