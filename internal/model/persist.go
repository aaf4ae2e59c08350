package model

// ProgressSnapshot is the durable copy of one learner's Snapshot,
// stored as a single JSON payload.
type ProgressSnapshot struct {
	BaseModel
	LearnerID string `gorm:"type:varchar(36);uniqueIndex" json:"learnerId"`
	Payload   string `gorm:"type:longtext" json:"payload"`
}

func (ProgressSnapshot) TableName() string {
	return "progress_snapshots"
}

// ContentArchive keeps every generated lesson so regeneration history
// survives restarts.
type ContentArchive struct {
	BaseModel
	LearnerID   string `gorm:"type:varchar(36);index" json:"learnerId"`
	Subject     string `gorm:"type:varchar(64);index" json:"subject"`
	Title       string `gorm:"type:varchar(255)" json:"title"`
	Order       int    `gorm:"column:topic_order" json:"order"`
	Content     string `gorm:"type:longtext" json:"content"`
	Regenerated bool   `json:"regenerated"`
}

func (ContentArchive) TableName() string {
	return "content_archives"
}
