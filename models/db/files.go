package dbmodels

type ArchiveFormat string

const (
	ArchiveFormatPDF  ArchiveFormat = "pdf"
	ArchiveFormatXLSX ArchiveFormat = "xlsx"
)

func (f ArchiveFormat) IsValid() bool {
	return f == ArchiveFormatPDF || f == ArchiveFormatXLSX
}

func (f ArchiveFormat) ContentType() string {
	switch f {
	case ArchiveFormatPDF:
		return "application/pdf"
	case ArchiveFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// InterviewArchive records an exported interview kit uploaded to object storage.
type InterviewArchive struct {
	BaseModel
	InterviewID string        `gorm:"type:varchar(36);not null;index" json:"interview_id"`
	UserID      string        `gorm:"type:varchar(255)" json:"user_id"`
	Format      ArchiveFormat `gorm:"type:varchar(10);not null" json:"format"`
	ObjectKey   string        `gorm:"type:varchar(512);not null" json:"object_key"`
	Bucket      string        `gorm:"type:varchar(255)" json:"bucket"`
	Size        int64         `json:"size"`
	ContentType string        `gorm:"type:varchar(255)" json:"content_type"`
}
