package models

// Job is the central marketplace entity. Budget is the client's floor
// set at creation and never mutated by bidding; Price is the agreed
// amount, nil until a freelancer is assigned.
//
// Invariant: FreelancerID is nil iff Status is new or bidding.
type Job struct {
	BaseModel
	Title           string    `gorm:"not null" json:"title"`
	Content         string    `gorm:"not null" json:"content"`
	Budget          float64   `gorm:"not null" json:"budget"`
	Price           *float64  `json:"price"`
	Status          JobStatus `gorm:"not null;index" json:"status"`
	ClientID        string    `gorm:"not null;index" json:"client_id"`
	FreelancerID    *string   `gorm:"index" json:"freelancer_id"`
	RequirementFile *string   `json:"requirement_file"`

	// Relations
	Client     User  `gorm:"foreignKey:ClientID" json:"-"`
	Freelancer *User `gorm:"foreignKey:FreelancerID" json:"-"`
}

// Bid is a freelancer's price offer on an unassigned job. At most one
// bid per (job, bidder); a resubmission replaces the prior one. All
// bids for a job are discarded once the job is assigned.
type Bid struct {
	BaseModel
	JobID    string  `gorm:"not null;index;uniqueIndex:idx_bids_job_bidder" json:"job_id"`
	BidderID string  `gorm:"not null;uniqueIndex:idx_bids_job_bidder" json:"bidder_id"`
	Amount   float64 `gorm:"not null" json:"amount"`

	Bidder User `gorm:"foreignKey:BidderID" json:"-"`
}

// Deliverable is one uploaded output artifact. Multiple rows per job
// form the upload history; the current deliverable is the newest row.
// RejectReason is stamped onto every deliverable of a job when the
// client rejects the delivery.
type Deliverable struct {
	BaseModel
	JobID        string  `gorm:"not null;index" json:"job_id"`
	FilePath     string  `gorm:"not null" json:"file_path"`
	UploadedBy   string  `gorm:"not null" json:"uploaded_by"`
	RejectReason *string `json:"reject_reason"`

	Uploader User `gorm:"foreignKey:UploadedBy" json:"-"`
}
