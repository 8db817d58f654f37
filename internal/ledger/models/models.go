package models

import "time"

// Kind distinguishes the two certificate families the program issues.
type Kind string

const (
	KindSchool  Kind = "school"
	KindStudent Kind = "student"
)

// UnknownRegion buckets school certificates recorded without a region.
const UnknownRegion = "Unknown"

// FixedRegions is the program's primary supported regions. Reports always
// show all four, zero-filled, regardless of what was recorded.
var FixedRegions = []string{"England", "Wales", "Northern Ireland", "Scotland"}

// Record is one issued certificate. Only school-level and region-level data
// persist; teacher and student names must never reach the ledger.
type Record struct {
	SchoolName string    `json:"school_name"`
	Region     string    `json:"region,omitempty"`
	IssuedAt   time.Time `json:"date"`
}

// Totals is the running count block kept inside the persisted document.
type Totals struct {
	TotalSchoolCertificates  int `json:"total_school_certificates"`
	TotalStudentCertificates int `json:"total_student_certificates"`
}

// Document is the whole persisted ledger state. Stores load and replace it
// as a unit; there is no partial update path.
type Document struct {
	SchoolCertificates  map[string]Record `json:"school_certificates"`
	StudentCertificates map[string]Record `json:"student_certificates"`
	Stats               Totals            `json:"stats"`
}

// NewDocument returns an empty document with initialized maps.
func NewDocument() Document {
	return Document{
		SchoolCertificates:  make(map[string]Record),
		StudentCertificates: make(map[string]Record),
	}
}

// Clone returns a deep copy so callers can hand documents across goroutines
// without sharing map state.
func (d Document) Clone() Document {
	out := Document{
		SchoolCertificates:  make(map[string]Record, len(d.SchoolCertificates)),
		StudentCertificates: make(map[string]Record, len(d.StudentCertificates)),
		Stats:               d.Stats,
	}
	for id, rec := range d.SchoolCertificates {
		out.SchoolCertificates[id] = rec
	}
	for id, rec := range d.StudentCertificates {
		out.StudentCertificates[id] = rec
	}
	return out
}

// Statistics is the read-time aggregate view over the document.
//
// CountByRegion and PercentageByRegion are open-ended over whatever regions
// were recorded; FixedRegionBreakdown and FixedRegionPercentages are
// restricted to FixedRegions and always zero-filled. At zero total,
// PercentageByRegion is empty while FixedRegionPercentages still lists every
// fixed region at 0 — report rendering relies on that asymmetry.
type Statistics struct {
	TotalSchoolCertificates  int
	TotalStudentCertificates int
	CountByRegion            map[string]int
	PercentageByRegion       map[string]float64
	FixedRegionBreakdown     map[string]int
	FixedRegionPercentages   map[string]float64
}
